package update_break

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpdateBreak(ctx context.Context, staffID, breakID, userID int64, payload *models.BreakPayload) (*models.BreakResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
