package get_staff_vacations

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListVacations(ctx context.Context, staffID int64) (*models.VacationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
