package update_break

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/schedule"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/schedule/models"
)

const (
	msgInvalidStaffID = "некорректный ID мастера"
	msgInvalidBreakID = "некорректный ID перерыва"
	msgInvalidBody    = "некорректное тело запроса"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgStaffNotFound  = "мастер не найден"
	msgBreakNotFound  = "перерыв не найден"
	msgForbidden      = "доступ запрещен"
	msgInvalidBreak   = "некорректные данные перерыва"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/staff/{staffId}/breaks/{breakId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /staff/{id}/breaks/{breakId} - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	breakID, err := strconv.ParseInt(vars["breakId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /staff/{id}/breaks/{breakId} - Invalid break ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBreakID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /staff/{id}/breaks/{breakId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var payload models.BreakPayload
	if err := handlers.DecodeJSON(r, &payload); err != nil {
		h.logger.Warn("PUT /staff/{id}/breaks/{breakId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.UpdateBreak(r.Context(), staffID, breakID, userID, &payload)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrStaffNotFound):
			h.logger.Warn("PUT /staff/{id}/breaks/{breakId} - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, schedule.ErrBreakNotFound):
			h.logger.Warn("PUT /staff/{id}/breaks/{breakId} - Break not found: staff_id=%d, break_id=%d",
				staffID, breakID)
			handlers.RespondNotFound(w, msgBreakNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PUT /staff/{id}/breaks/{breakId} - Access denied: staff_id=%d, user_id=%d",
				staffID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /staff/{id}/breaks/{breakId} - Invalid break data: staff_id=%d, error=%v",
				staffID, err)
			handlers.RespondBadRequest(w, msgInvalidBreak)

		default:
			h.logger.Error("PUT /staff/{id}/breaks/{breakId} - Failed to update break: break_id=%d, error=%v",
				breakID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /staff/{id}/breaks/{breakId} - Break updated: break_id=%d, staff_id=%d", breakID, staffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
