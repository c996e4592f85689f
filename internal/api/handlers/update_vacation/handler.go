package update_vacation

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
	msgInvalidStaffID    = "некорректный ID мастера"
	msgInvalidVacationID = "некорректный ID отпуска"
	msgInvalidBody       = "некорректное тело запроса"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgStaffNotFound     = "мастер не найден"
	msgVacationNotFound  = "отпуск не найден"
	msgForbidden         = "доступ запрещен"
	msgInvalidVacation   = "некорректные данные отпуска"
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

// Handle PUT /api/v1/staff/{staffId}/vacations/{vacationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /staff/{id}/vacations/{vacationId} - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	vacationID, err := strconv.ParseInt(vars["vacationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /staff/{id}/vacations/{vacationId} - Invalid vacation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVacationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /staff/{id}/vacations/{vacationId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var payload models.VacationPayload
	if err := handlers.DecodeJSON(r, &payload); err != nil {
		h.logger.Warn("PUT /staff/{id}/vacations/{vacationId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.UpdateVacation(r.Context(), staffID, vacationID, userID, &payload)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrStaffNotFound):
			h.logger.Warn("PUT /staff/{id}/vacations/{vacationId} - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, schedule.ErrVacationNotFound):
			h.logger.Warn("PUT /staff/{id}/vacations/{vacationId} - Vacation not found: staff_id=%d, vacation_id=%d",
				staffID, vacationID)
			handlers.RespondNotFound(w, msgVacationNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PUT /staff/{id}/vacations/{vacationId} - Access denied: staff_id=%d, user_id=%d",
				staffID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /staff/{id}/vacations/{vacationId} - Invalid vacation data: staff_id=%d, error=%v",
				staffID, err)
			handlers.RespondBadRequest(w, msgInvalidVacation)

		default:
			h.logger.Error("PUT /staff/{id}/vacations/{vacationId} - Failed to update vacation: vacation_id=%d, error=%v",
				vacationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /staff/{id}/vacations/{vacationId} - Vacation updated: vacation_id=%d, staff_id=%d",
		vacationID, staffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
