package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidReview возвращается при некорректном отзыве
var ErrInvalidReview = errors.New("domain: invalid review")

// Review отзыв клиента о завершённой записи
// Один отзыв на запись; создаётся только против completed записи
type Review struct {
	ID            int64
	AppointmentID int64
	SalonID       int64
	StaffID       int64
	ClientUserID  int64
	Rating        int
	Comment       string
	Response      *string // ответ салона

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет корректность отзыва
func (r *Review) Validate() error {
	if r.Rating < MinRating || r.Rating > MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidReview, MinRating, MaxRating)
	}
	if len(r.Comment) > MaxReviewCommentLength {
		return fmt.Errorf("%w: comment is too long", ErrInvalidReview)
	}
	return nil
}
