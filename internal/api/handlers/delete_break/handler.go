package delete_break

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/schedule"
)

const (
	msgInvalidStaffID = "некорректный ID мастера"
	msgInvalidBreakID = "некорректный ID перерыва"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgStaffNotFound  = "мастер не найден"
	msgBreakNotFound  = "перерыв не найден"
	msgForbidden      = "доступ запрещен"
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

// Handle DELETE /api/v1/staff/{staffId}/breaks/{breakId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /staff/{id}/breaks/{breakId} - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	breakID, err := strconv.ParseInt(vars["breakId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /staff/{id}/breaks/{breakId} - Invalid break ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBreakID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /staff/{id}/breaks/{breakId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.DeleteBreak(r.Context(), staffID, breakID, userID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrStaffNotFound):
			h.logger.Warn("DELETE /staff/{id}/breaks/{breakId} - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, schedule.ErrBreakNotFound):
			h.logger.Warn("DELETE /staff/{id}/breaks/{breakId} - Break not found: staff_id=%d, break_id=%d",
				staffID, breakID)
			handlers.RespondNotFound(w, msgBreakNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /staff/{id}/breaks/{breakId} - Access denied: staff_id=%d, user_id=%d",
				staffID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /staff/{id}/breaks/{breakId} - Failed to delete break: break_id=%d, error=%v",
				breakID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /staff/{id}/breaks/{breakId} - Break deleted: break_id=%d, staff_id=%d", breakID, staffID)
	w.WriteHeader(http.StatusNoContent)
}
