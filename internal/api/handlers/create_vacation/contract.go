package create_vacation

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateVacation(ctx context.Context, staffID, userID int64, payload *models.VacationPayload) (*models.VacationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
