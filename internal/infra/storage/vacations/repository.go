package vacations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
)

// vacationColumns колонки таблицы vacations в порядке сканирования
var vacationColumns = []string{
	"id",
	"staff_id",
	"title",
	"vacation_type",
	"start_date",
	"end_date",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с отпусками мастеров
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория отпусков
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый отпуск
func (r *Repository) Create(ctx context.Context, vacation *domain.Vacation) (*domain.Vacation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("vacations").
		Columns(
			"staff_id",
			"title",
			"vacation_type",
			"start_date",
			"end_date",
			"notes",
		).
		Values(
			vacation.StaffID,
			vacation.Title,
			vacation.Type,
			vacation.StartDate,
			vacation.EndDate,
			vacation.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&vacation.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	vacation.CreatedAt = createdAt.Time
	vacation.UpdatedAt = updatedAt.Time

	return vacation, nil
}

// GetByID получает отпуск по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Vacation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(vacationColumns...).
		From("vacations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	vacation, err := scanVacation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrVacationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan vacation: %v", ErrScanRow, err)
	}

	return vacation, nil
}

// ListByStaff получает все отпуска мастера
func (r *Repository) ListByStaff(ctx context.Context, staffID int64) ([]*domain.Vacation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(vacationColumns...).
		From("vacations").
		Where(squirrel.Eq{"staff_id": staffID}).
		OrderBy("start_date ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Vacation, 0)
	for rows.Next() {
		vacation, err := scanVacation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByStaff - scan row: %v", ErrScanRow, err)
		}
		result = append(result, vacation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByStaff - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Update обновляет отпуск целиком
func (r *Repository) Update(ctx context.Context, vacation *domain.Vacation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("vacations").
		Set("title", vacation.Title).
		Set("vacation_type", vacation.Type).
		Set("start_date", vacation.StartDate).
		Set("end_date", vacation.EndDate).
		Set("notes", vacation.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": vacation.ID}).
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
		return ErrVacationNotFound
	}

	return nil
}

// Delete удаляет отпуск
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("vacations").
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
		return ErrVacationNotFound
	}

	return nil
}

// scanVacation сканирует одну строку в domain.Vacation
func scanVacation(scan func(dest ...interface{}) error) (*domain.Vacation, error) {
	var vacation domain.Vacation
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&vacation.ID,
		&vacation.StaffID,
		&vacation.Title,
		&vacation.Type,
		&vacation.StartDate,
		&vacation.EndDate,
		&vacation.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	vacation.CreatedAt = createdAt.Time
	vacation.UpdatedAt = updatedAt.Time

	return &vacation, nil
}
