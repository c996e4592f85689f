package breaks

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
)

// breakColumns колонки таблицы breaks в порядке сканирования
var breakColumns = []string{
	"id",
	"staff_id",
	"title",
	"break_type",
	"start_time",
	"end_time",
	"days",
	"date",
	"start_date",
	"end_date",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с перерывами мастеров
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория перерывов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый перерыв
func (r *Repository) Create(ctx context.Context, brk *domain.Break) (*domain.Break, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("breaks").
		Columns(
			"staff_id",
			"title",
			"break_type",
			"start_time",
			"end_time",
			"days",
			"date",
			"start_date",
			"end_date",
		).
		Values(
			brk.StaffID,
			brk.Title,
			brk.Type,
			brk.StartTime,
			brk.EndTime,
			pq.Array(brk.Days),
			brk.Date,
			brk.StartDate,
			brk.EndDate,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&brk.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	brk.CreatedAt = createdAt.Time
	brk.UpdatedAt = updatedAt.Time

	return brk, nil
}

// GetByID получает перерыв по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Break, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(breakColumns...).
		From("breaks").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	brk, err := scanBreak(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrBreakNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan break: %v", ErrScanRow, err)
	}

	return brk, nil
}

// ListByStaff получает все перерывы мастера
func (r *Repository) ListByStaff(ctx context.Context, staffID int64) ([]*domain.Break, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(breakColumns...).
		From("breaks").
		Where(squirrel.Eq{"staff_id": staffID}).
		OrderBy("start_time ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Break, 0)
	for rows.Next() {
		brk, err := scanBreak(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByStaff - scan row: %v", ErrScanRow, err)
		}
		result = append(result, brk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByStaff - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Update обновляет перерыв целиком
func (r *Repository) Update(ctx context.Context, brk *domain.Break) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("breaks").
		Set("title", brk.Title).
		Set("break_type", brk.Type).
		Set("start_time", brk.StartTime).
		Set("end_time", brk.EndTime).
		Set("days", pq.Array(brk.Days)).
		Set("date", brk.Date).
		Set("start_date", brk.StartDate).
		Set("end_date", brk.EndDate).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": brk.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBreakNotFound
	}

	return nil
}

// Delete удаляет перерыв
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("breaks").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBreakNotFound
	}

	return nil
}

// scanBreak сканирует одну строку в domain.Break
func scanBreak(scan func(dest ...interface{}) error) (*domain.Break, error) {
	var brk domain.Break
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&brk.ID,
		&brk.StaffID,
		&brk.Title,
		&brk.Type,
		&brk.StartTime,
		&brk.EndTime,
		pq.Array(&brk.Days),
		&brk.Date,
		&brk.StartDate,
		&brk.EndDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	brk.CreatedAt = createdAt.Time
	brk.UpdatedAt = updatedAt.Time

	return &brk, nil
}
