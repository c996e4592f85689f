package vacations

import "errors"

var (
	// ErrVacationNotFound возвращается, когда отпуск не найден
	ErrVacationNotFound = errors.New("vacations.repository: vacation not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("vacations.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("vacations.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("vacations.repository: failed to scan row")
)
