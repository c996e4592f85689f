package delete_vacation

import "context"

type ScheduleService interface {
	DeleteVacation(ctx context.Context, staffID, vacationID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
