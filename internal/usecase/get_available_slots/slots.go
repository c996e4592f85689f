package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// generateSlots генерирует свободные слоты на день
// Кандидаты идут от открытия до закрытия с шагом в длительность услуги,
// слот попадает в ответ, только если он не пересекается ни с перерывом,
// ни с активной записью, а для сегодняшней даты ещё и начинается в будущем
func generateSlots(
	schedule domain.DaySchedule,
	durationMinutes int,
	date time.Time,
	now time.Time,
	breaks []*domain.Break,
	appointments []*domain.Appointment,
) ([]Slot, error) {
	if !schedule.IsOpen || schedule.OpenTime == nil || schedule.CloseTime == nil {
		return []Slot{}, nil
	}

	openTime, err := types.NewTimeStringFromString(*schedule.OpenTime)
	if err != nil {
		return nil, err
	}
	closeTime, err := types.NewTimeStringFromString(*schedule.CloseTime)
	if err != nil {
		return nil, err
	}

	// Для сегодняшней даты слот должен начинаться не раньше текущего времени
	var minStart *types.TimeString
	if isSameDay(date, now) {
		current := types.NewTimeString(now)
		minStart = &current
	}

	slots := make([]Slot, 0)
	cursor := openTime

	for cursor.IsBefore(closeTime) {
		candidate, err := domain.NewTimeRange(cursor, durationMinutes)
		if err != nil {
			// Конец слота вышел бы за пределы суток
			break
		}
		if candidate.End.IsAfter(closeTime) {
			break
		}

		if isSlotFree(candidate, date, minStart, breaks, appointments) {
			slots = append(slots, Slot{
				StartTime:       candidate.Start,
				EndTime:         candidate.End,
				DurationMinutes: durationMinutes,
			})
		}

		cursor, err = cursor.AddMinutes(durationMinutes)
		if err != nil {
			break
		}
	}

	return slots, nil
}

// isSlotFree проверяет, что слот доступен для записи
func isSlotFree(
	candidate domain.TimeRange,
	date time.Time,
	minStart *types.TimeString,
	breaks []*domain.Break,
	appointments []*domain.Appointment,
) bool {
	if minStart != nil && candidate.Start.IsBefore(*minStart) {
		return false
	}

	for _, brk := range breaks {
		if brk.BlocksOn(date, candidate) {
			return false
		}
	}

	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		apptRange, err := appt.TimeRange()
		if err != nil {
			continue
		}
		if candidate.Overlaps(apptRange) {
			return false
		}
	}

	return true
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
