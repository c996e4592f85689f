package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Клиент: либо зарегистрированный пользователь, либо гость с именем и телефоном
	if req.ClientUserID == nil {
		if req.GuestName == nil || *req.GuestName == "" || req.GuestPhone == nil || *req.GuestPhone == "" {
			return fmt.Errorf("%w: either clientUserId or guestName with guestPhone is required", ErrInvalidInput)
		}
	} else if *req.ClientUserID <= 0 {
		return fmt.Errorf("%w: clientUserId must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateDate проверяет, что дата и время записи не в прошлом
func validateDate(date time.Time, startTime types.TimeString, now time.Time) error {
	if isDateInPast(date, now) {
		return ErrInvalidDate
	}

	// Для записи на сегодня время начала должно быть в будущем
	if isSameDay(date, now) {
		currentTime := types.NewTimeString(now)
		if startTime.IsBefore(currentTime) {
			return ErrInvalidDate
		}
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
