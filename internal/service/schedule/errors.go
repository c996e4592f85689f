package schedule

import "errors"

var (
	// ErrBreakNotFound возвращается, когда перерыв не найден
	ErrBreakNotFound = errors.New("break not found")

	// ErrVacationNotFound возвращается, когда отпуск не найден
	ErrVacationNotFound = errors.New("vacation not found")

	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("staff not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
