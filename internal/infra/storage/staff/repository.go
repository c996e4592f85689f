package staff

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
)

// staffColumns колонки таблицы staff в порядке сканирования
var staffColumns = []string{
	"id",
	"salon_id",
	"user_id",
	"name",
	"role",
	"auto_confirm",
	"working_hours",
	"rating",
	"review_count",
	"specialties",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с мастерами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает мастера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetBySalonAndUser получает мастера по салону и пользователю
// Используется для проверки прав доступа (является ли пользователь мастером салона)
func (r *Repository) GetBySalonAndUser(ctx context.Context, salonID, userID int64) (*domain.Staff, error) {
	return r.getOne(ctx, squirrel.Eq{"salon_id": salonID, "user_id": userID}, "GetBySalonAndUser")
}

// UpdateRatingStats пересчитывает средний рейтинг мастера при добавлении отзыва
// Скользящее среднее считается прямо в SQL, чтобы не читать перед записью
func (r *Repository) UpdateRatingStats(ctx context.Context, staffID int64, rating int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("staff").
		Set("rating", squirrel.Expr("(rating * review_count + ?) / (review_count + 1)", rating)).
		Set("review_count", squirrel.Expr("review_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": staffID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateRatingStats - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateRatingStats - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateRatingStats - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStaffNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, op string) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(staffColumns...).
		From("staff").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var staff domain.Staff
	var workingHoursRaw []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&staff.ID,
		&staff.SalonID,
		&staff.UserID,
		&staff.Name,
		&staff.Role,
		&staff.AutoConfirm,
		&workingHoursRaw,
		&staff.Rating,
		&staff.ReviewCount,
		pq.Array(&staff.Specialties),
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan staff: %v", ErrScanRow, op, err)
	}

	// working_hours NULL - у мастера действует график салона
	if len(workingHoursRaw) > 0 {
		var schedule domain.WeekSchedule
		if err := json.Unmarshal(workingHoursRaw, &schedule); err != nil {
			return nil, fmt.Errorf("%w: %s - unmarshal working hours: %v", ErrScanRow, op, err)
		}
		staff.WorkingHours = &schedule
	}

	staff.CreatedAt = createdAt.Time
	staff.UpdatedAt = updatedAt.Time

	return &staff, nil
}
