package create_vacation

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
	msgInvalidStaffID  = "некорректный ID мастера"
	msgInvalidBody     = "некорректное тело запроса"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgStaffNotFound   = "мастер не найден"
	msgForbidden       = "доступ запрещен"
	msgInvalidVacation = "некорректные данные отпуска"
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

// Handle POST /api/v1/staff/{staffId}/vacations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /staff/{id}/vacations - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /staff/{id}/vacations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var payload models.VacationPayload
	if err := handlers.DecodeJSON(r, &payload); err != nil {
		h.logger.Warn("POST /staff/{id}/vacations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.CreateVacation(r.Context(), staffID, userID, &payload)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrStaffNotFound):
			h.logger.Warn("POST /staff/{id}/vacations - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /staff/{id}/vacations - Access denied: staff_id=%d, user_id=%d", staffID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /staff/{id}/vacations - Invalid vacation data: staff_id=%d, error=%v",
				staffID, err)
			handlers.RespondBadRequest(w, msgInvalidVacation)

		default:
			h.logger.Error("POST /staff/{id}/vacations - Failed to create vacation: staff_id=%d, error=%v",
				staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff/{id}/vacations - Vacation created: vacation_id=%d, staff_id=%d", result.ID, staffID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
