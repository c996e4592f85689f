package get_staff_breaks

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListBreaks(ctx context.Context, staffID int64) (*models.BreakListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
