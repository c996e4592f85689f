package domain

import "time"

// Staff represents a staff member (мастер) of a salon
type Staff struct {
	ID          int64
	SalonID     int64
	UserID      int64
	Name        string
	Role        string
	AutoConfirm bool

	// WorkingHours индивидуальный график; nil - действует график салона
	WorkingHours *WeekSchedule

	Rating      float64
	ReviewCount int
	Specialties []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveSchedule возвращает рабочее окно мастера на день недели.
// Индивидуальный график не подменяет график салона, а сужает его:
// слот должен попадать в оба расписания. Если индивидуальный график
// не задан, действует расписание салона
func (s *Staff) EffectiveSchedule(salon *Salon, weekday time.Weekday) (DaySchedule, error) {
	salonDay := salon.WorkingHours.ScheduleFor(weekday)
	if s.WorkingHours == nil {
		return salonDay, nil
	}
	return salonDay.Intersect(s.WorkingHours.ScheduleFor(weekday))
}
