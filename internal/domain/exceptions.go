package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// ErrInvalidBreak возвращается при некорректной комбинации полей перерыва
var ErrInvalidBreak = errors.New("domain: invalid break")

// ErrInvalidVacation возвращается при некорректном отпуске
var ErrInvalidVacation = errors.New("domain: invalid vacation")

// BreakType тип перерыва мастера
type BreakType string

const (
	BreakDaily        BreakType = "daily"         // каждый день
	BreakWeekly       BreakType = "weekly"        // по указанным дням недели
	BreakSpecificDate BreakType = "specific_date" // только в конкретную дату
	BreakDateRange    BreakType = "date_range"    // каждый день внутри диапазона дат
)

// Break перерыв мастера - повторяющееся или разовое окно недоступности
// поверх рабочих часов. Какие поля обязательны, зависит от типа;
// Validate не пропускает чужие для типа поля, BlocksOn - единственный читатель
type Break struct {
	ID        int64
	StaffID   int64
	Title     string
	Type      BreakType
	StartTime types.TimeString
	EndTime   types.TimeString

	Days      []int64    // для weekly: дни недели (0 = воскресенье ... 6 = суббота)
	Date      *time.Time // для specific_date
	StartDate *time.Time // для date_range
	EndDate   *time.Time // для date_range

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет корректность перерыва и соответствие полей типу
func (b *Break) Validate() error {
	if b.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidBreak)
	}
	if err := b.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidBreak, err)
	}
	if err := b.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidBreak, err)
	}
	if !b.StartTime.IsBefore(b.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidBreak)
	}

	switch b.Type {
	case BreakDaily:
		if len(b.Days) > 0 || b.Date != nil || b.StartDate != nil || b.EndDate != nil {
			return fmt.Errorf("%w: daily break must not have days or dates", ErrInvalidBreak)
		}
	case BreakWeekly:
		if len(b.Days) == 0 {
			return fmt.Errorf("%w: weekly break requires days", ErrInvalidBreak)
		}
		for _, d := range b.Days {
			if d < 0 || d > 6 {
				return fmt.Errorf("%w: day must be in range 0-6, got %d", ErrInvalidBreak, d)
			}
		}
		if b.Date != nil || b.StartDate != nil || b.EndDate != nil {
			return fmt.Errorf("%w: weekly break must not have dates", ErrInvalidBreak)
		}
	case BreakSpecificDate:
		if b.Date == nil {
			return fmt.Errorf("%w: specific_date break requires date", ErrInvalidBreak)
		}
		if len(b.Days) > 0 || b.StartDate != nil || b.EndDate != nil {
			return fmt.Errorf("%w: specific_date break must only have date", ErrInvalidBreak)
		}
	case BreakDateRange:
		if b.StartDate == nil || b.EndDate == nil {
			return fmt.Errorf("%w: date_range break requires startDate and endDate", ErrInvalidBreak)
		}
		if b.EndDate.Before(*b.StartDate) {
			return fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidBreak)
		}
		if len(b.Days) > 0 || b.Date != nil {
			return fmt.Errorf("%w: date_range break must only have startDate and endDate", ErrInvalidBreak)
		}
	default:
		return fmt.Errorf("%w: unknown break type %q", ErrInvalidBreak, b.Type)
	}

	return nil
}

// BlocksOn возвращает true, если перерыв блокирует интервал r в дату date
// Касание границ пересечением не считается (интервалы полуоткрытые)
func (b *Break) BlocksOn(date time.Time, r TimeRange) bool {
	if !b.appliesTo(date) {
		return false
	}

	window := TimeRange{Start: b.StartTime, End: b.EndTime}
	return window.Overlaps(r)
}

// appliesTo проверяет, действует ли перерыв в указанную дату
func (b *Break) appliesTo(date time.Time) bool {
	switch b.Type {
	case BreakDaily:
		return true
	case BreakWeekly:
		weekday := int64(date.Weekday())
		for _, d := range b.Days {
			if d == weekday {
				return true
			}
		}
		return false
	case BreakSpecificDate:
		return b.Date != nil && sameDate(*b.Date, date)
	case BreakDateRange:
		return b.StartDate != nil && b.EndDate != nil &&
			!dateOnly(date).Before(dateOnly(*b.StartDate)) &&
			!dateOnly(date).After(dateOnly(*b.EndDate))
	default:
		return false
	}
}

// VacationType тип отпуска
type VacationType string

const (
	VacationRegular   VacationType = "vacation"
	VacationSickLeave VacationType = "sick_leave"
	VacationPersonal  VacationType = "personal"
	VacationOther     VacationType = "other"
)

// Vacation отпуск мастера - недоступность на целые дни внутри диапазона дат
type Vacation struct {
	ID        int64
	StaffID   int64
	Title     string
	Type      VacationType
	StartDate time.Time
	EndDate   time.Time
	Notes     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет корректность отпуска
func (v *Vacation) Validate() error {
	if v.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidVacation)
	}

	switch v.Type {
	case VacationRegular, VacationSickLeave, VacationPersonal, VacationOther:
	default:
		return fmt.Errorf("%w: unknown vacation type %q", ErrInvalidVacation, v.Type)
	}

	if v.StartDate.IsZero() || v.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidVacation)
	}
	if v.EndDate.Before(v.StartDate) {
		return fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidVacation)
	}

	return nil
}

// Covers возвращает true, если дата попадает в отпуск (границы включительно)
// Отпуск блокирует весь день независимо от времени
func (v *Vacation) Covers(date time.Time) bool {
	d := dateOnly(date)
	return !d.Before(dateOnly(v.StartDate)) && !d.After(dateOnly(v.EndDate))
}

// sameDate проверяет, что две даты относятся к одному и тому же дню
func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// dateOnly обнуляет время, оставляя только дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
