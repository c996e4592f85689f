package delete_break

import "context"

type ScheduleService interface {
	DeleteBreak(ctx context.Context, staffID, breakID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
