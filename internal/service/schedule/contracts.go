package schedule

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// BreakRepository интерфейс репозитория перерывов
type BreakRepository interface {
	Create(ctx context.Context, brk *domain.Break) (*domain.Break, error)
	GetByID(ctx context.Context, id int64) (*domain.Break, error)
	ListByStaff(ctx context.Context, staffID int64) ([]*domain.Break, error)
	Update(ctx context.Context, brk *domain.Break) error
	Delete(ctx context.Context, id int64) error
}

// VacationRepository интерфейс репозитория отпусков
type VacationRepository interface {
	Create(ctx context.Context, vacation *domain.Vacation) (*domain.Vacation, error)
	GetByID(ctx context.Context, id int64) (*domain.Vacation, error)
	ListByStaff(ctx context.Context, staffID int64) ([]*domain.Vacation, error)
	Update(ctx context.Context, vacation *domain.Vacation) error
	Delete(ctx context.Context, id int64) error
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
}

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
