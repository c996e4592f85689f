package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// CreateReviewRequest запрос на создание отзыва
type CreateReviewRequest struct {
	UserID  int64  `json:"userId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ReviewResponse ответ с данными отзыва
type ReviewResponse struct {
	ID            int64   `json:"id"`
	AppointmentID int64   `json:"appointmentId"`
	SalonID       int64   `json:"salonId"`
	StaffID       int64   `json:"staffId"`
	ClientUserID  int64   `json:"clientUserId"`
	Rating        int     `json:"rating"`
	Comment       string  `json:"comment"`
	Response      *string `json:"response,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainReview конвертирует domain модель в DTO
func FromDomainReview(r *domain.Review) *ReviewResponse {
	if r == nil {
		return nil
	}

	return &ReviewResponse{
		ID:            r.ID,
		AppointmentID: r.AppointmentID,
		SalonID:       r.SalonID,
		StaffID:       r.StaffID,
		ClientUserID:  r.ClientUserID,
		Rating:        r.Rating,
		Comment:       r.Comment,
		Response:      r.Response,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
