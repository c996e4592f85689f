package create_review

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/reviews"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidBody          = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgAppointmentNotFound  = "запись не найдена"
	msgNotCompleted         = "отзыв можно оставить только на завершённую запись"
	msgAlreadyReviewed      = "отзыв на эту запись уже оставлен"
	msgForbidden            = "доступ запрещен"
	msgInvalidReview        = "некорректные данные отзыва"
)

type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/reviews - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/{id}/reviews - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/reviews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.Create(r.Context(), appointmentID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/reviews - Appointment not found: appointment_id=%d",
				appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, reviews.ErrNotCompleted):
			h.logger.Warn("POST /appointments/{id}/reviews - Appointment not completed: appointment_id=%d",
				appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgNotCompleted)

		case errors.Is(err, reviews.ErrAlreadyReviewed):
			h.logger.Warn("POST /appointments/{id}/reviews - Already reviewed: appointment_id=%d",
				appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyReviewed)

		case errors.Is(err, reviews.ErrAccessDenied):
			h.logger.Warn("POST /appointments/{id}/reviews - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reviews.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/reviews - Invalid review data: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidReview)

		default:
			h.logger.Error("POST /appointments/{id}/reviews - Failed to create review: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/reviews - Review created: review_id=%d, appointment_id=%d",
		result.ID, appointmentID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
