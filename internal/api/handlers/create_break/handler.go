package create_break

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
	msgInvalidBody    = "некорректное тело запроса"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgStaffNotFound  = "мастер не найден"
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

// Handle POST /api/v1/staff/{staffId}/breaks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /staff/{id}/breaks - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /staff/{id}/breaks - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var payload models.BreakPayload
	if err := handlers.DecodeJSON(r, &payload); err != nil {
		h.logger.Warn("POST /staff/{id}/breaks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.CreateBreak(r.Context(), staffID, userID, &payload)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrStaffNotFound):
			h.logger.Warn("POST /staff/{id}/breaks - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /staff/{id}/breaks - Access denied: staff_id=%d, user_id=%d", staffID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /staff/{id}/breaks - Invalid break data: staff_id=%d, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidBreak)

		default:
			h.logger.Error("POST /staff/{id}/breaks - Failed to create break: staff_id=%d, error=%v",
				staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff/{id}/breaks - Break created: break_id=%d, staff_id=%d", result.ID, staffID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
