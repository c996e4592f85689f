package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MinRating                   = 1
	MaxRating                   = 5
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 часов
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxReviewCommentLength      = 2000
)

// ActiveStatuses статусы записей, занимающих слот
// Используются при проверке пересечений: отменённая запись слот освобождает
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}

// TerminalStatuses статусы, из которых нет переходов
var TerminalStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelled,
}
