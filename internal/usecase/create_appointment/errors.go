package create_appointment

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("create_appointment: salon not found")

	// ErrStaffNotFound возвращается, когда мастер не найден в салоне
	ErrStaffNotFound = errors.New("create_appointment: staff not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в салоне
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrServiceNotPerformed возвращается, когда мастер не выполняет услугу
	ErrServiceNotPerformed = errors.New("create_appointment: service is not performed by this staff member")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrOutsideWorkingHours возвращается, когда слот выходит за рабочие часы
	ErrOutsideWorkingHours = errors.New("create_appointment: slot is outside working hours")

	// ErrStaffUnavailable возвращается, когда слот перекрыт перерывом или отпуском мастера
	ErrStaffUnavailable = errors.New("create_appointment: staff is unavailable at this time")

	// ErrSlotTaken возвращается, когда слот пересекается с активной записью
	ErrSlotTaken = errors.New("create_appointment: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
