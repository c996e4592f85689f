package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// DaySchedule расписание на один день недели
type DaySchedule struct {
	IsOpen    bool    `json:"isOpen"`
	OpenTime  *string `json:"openTime,omitempty"`  // "09:00"
	CloseTime *string `json:"closeTime,omitempty"` // "18:00"
}

// Contains проверяет, что интервал целиком лежит внутри рабочих часов дня
// Возвращает false, если день выходной или время не задано
func (d DaySchedule) Contains(r TimeRange) (bool, error) {
	if !d.IsOpen || d.OpenTime == nil || d.CloseTime == nil {
		return false, nil
	}

	open, err := types.NewTimeStringFromString(*d.OpenTime)
	if err != nil {
		return false, err
	}
	closeTime, err := types.NewTimeStringFromString(*d.CloseTime)
	if err != nil {
		return false, err
	}

	// [r.Start, r.End) должен лежать внутри [open, close)
	if r.Start.IsBefore(open) || r.End.IsAfter(closeTime) {
		return false, nil
	}

	return true, nil
}

// Intersect возвращает пересечение двух дневных окон
// Если хотя бы одно окно закрыто или окна не пересекаются, день закрыт
func (d DaySchedule) Intersect(other DaySchedule) (DaySchedule, error) {
	closed := DaySchedule{IsOpen: false}

	if !d.IsOpen || d.OpenTime == nil || d.CloseTime == nil ||
		!other.IsOpen || other.OpenTime == nil || other.CloseTime == nil {
		return closed, nil
	}

	open, err := types.NewTimeStringFromString(*d.OpenTime)
	if err != nil {
		return closed, err
	}
	closeTime, err := types.NewTimeStringFromString(*d.CloseTime)
	if err != nil {
		return closed, err
	}
	otherOpen, err := types.NewTimeStringFromString(*other.OpenTime)
	if err != nil {
		return closed, err
	}
	otherClose, err := types.NewTimeStringFromString(*other.CloseTime)
	if err != nil {
		return closed, err
	}

	if otherOpen.IsAfter(open) {
		open = otherOpen
	}
	if otherClose.IsBefore(closeTime) {
		closeTime = otherClose
	}
	if !open.IsBefore(closeTime) {
		return closed, nil
	}

	openStr := string(open)
	closeStr := string(closeTime)
	return DaySchedule{IsOpen: true, OpenTime: &openStr, CloseTime: &closeStr}, nil
}

// WeekSchedule недельное расписание рабочих часов (салона или мастера)
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// ScheduleFor возвращает расписание на указанный день недели
func (w WeekSchedule) ScheduleFor(weekday time.Weekday) DaySchedule {
	switch weekday {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// Value реализует driver.Valuer для записи в JSONB колонку
func (w WeekSchedule) Value() (driver.Value, error) {
	return json.Marshal(w)
}

// Scan реализует sql.Scanner для чтения из JSONB колонки
func (w *WeekSchedule) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*w = WeekSchedule{}
		return nil
	case []byte:
		return json.Unmarshal(v, w)
	case string:
		return json.Unmarshal([]byte(v), w)
	default:
		return fmt.Errorf("domain: cannot scan %T into WeekSchedule", src)
	}
}
