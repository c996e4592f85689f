package domain

import "time"

// SalonStatus статус модерации салона
type SalonStatus string

const (
	SalonPending   SalonStatus = "pending"
	SalonApproved  SalonStatus = "approved"
	SalonSuspended SalonStatus = "suspended"
)

// Salon represents a salon on the platform
// Статус салона влияет на видимость для клиентов, но не на валидацию слотов
type Salon struct {
	ID           int64
	OwnerUserID  int64
	Name         string
	Status       SalonStatus
	AutoConfirm  bool
	WorkingHours WeekSchedule

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsApproved returns true if the salon passed moderation
func (s *Salon) IsApproved() bool {
	return s.Status == SalonApproved
}
