package domain

import "time"

// Service represents a service offered by a salon
// Длительность услуги напрямую определяет время окончания записи
type Service struct {
	ID              int64
	SalonID         int64
	Name            string
	DurationMinutes int
	Price           float64
	DiscountPrice   *float64
	Category        string
	StaffIDs        []int64 // мастера, выполняющие услугу

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectivePrice возвращает цену с учётом скидки
func (s *Service) EffectivePrice() float64 {
	if s.DiscountPrice != nil && *s.DiscountPrice > 0 && *s.DiscountPrice < s.Price {
		return *s.DiscountPrice
	}
	return s.Price
}

// IsPerformedBy проверяет, выполняет ли мастер эту услугу
func (s *Service) IsPerformedBy(staffID int64) bool {
	for _, id := range s.StaffIDs {
		if id == staffID {
			return true
		}
	}
	return false
}
