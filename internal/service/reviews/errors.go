package reviews

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrNotCompleted возвращается, когда запись ещё не завершена
	ErrNotCompleted = errors.New("appointment is not completed")

	// ErrAlreadyReviewed возвращается при повторном отзыве на ту же запись
	ErrAlreadyReviewed = errors.New("appointment already reviewed")

	// ErrAccessDenied возвращается, когда отзыв оставляет не клиент записи
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
