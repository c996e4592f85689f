package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
)

// uniqueViolation код ошибки postgres при нарушении уникального индекса
const uniqueViolation = "23505"

// Repository репозиторий для работы с отзывами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает отзыв. Уникальный индекс по appointment_id гарантирует
// один отзыв на запись - нарушение транслируется в ErrAlreadyReviewed
func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reviews").
		Columns(
			"appointment_id",
			"salon_id",
			"staff_id",
			"client_user_id",
			"rating",
			"comment",
		).
		Values(
			review.AppointmentID,
			review.SalonID,
			review.StaffID,
			review.ClientUserID,
			review.Rating,
			review.Comment,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&review.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	review.CreatedAt = createdAt.Time
	review.UpdatedAt = updatedAt.Time

	return review, nil
}

// GetByAppointment получает отзыв по ID записи
func (r *Repository) GetByAppointment(ctx context.Context, appointmentID int64) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"appointment_id",
		"salon_id",
		"staff_id",
		"client_user_id",
		"rating",
		"comment",
		"response",
		"created_at",
		"updated_at",
	).
		From("reviews").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointment - build select query: %v", ErrBuildQuery, err)
	}

	var review domain.Review
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&review.ID,
		&review.AppointmentID,
		&review.SalonID,
		&review.StaffID,
		&review.ClientUserID,
		&review.Rating,
		&review.Comment,
		&review.Response,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointment - scan review: %v", ErrScanRow, err)
	}

	review.CreatedAt = createdAt.Time
	review.UpdatedAt = updatedAt.Time

	return &review, nil
}
