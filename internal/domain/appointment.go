package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
)

// PaymentStatus represents the payment state of an appointment
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// CancelledBy кто отменил запись
const (
	CancelledByClient = "client"
	CancelledBySalon  = "salon"
)

// allowedTransitions таблица жизненного цикла записи
// pending → confirmed → in_progress → completed; любой нетерминальный → cancelled
// completed и cancelled терминальные - из них переходов нет
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// Appointment represents a client appointment with a staff member at a salon
type Appointment struct {
	ID        int64
	Code      string // публичный UUID для доступа гостя к записи
	SalonID   int64
	StaffID   int64
	ServiceID int64

	// Клиент: либо зарегистрированный пользователь, либо гость
	ClientUserID *int64
	GuestName    *string
	GuestPhone   *string

	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	TotalPrice    float64
	PaymentStatus PaymentStatus
	Notes         *string

	CancelledBy        *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its slot
// Только отмена освобождает слот
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsTerminal returns true if no transition leaves the current status
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed || a.Status == StatusInProgress
}

// CanTransitionTo проверяет допустимость перехода по таблице жизненного цикла
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range allowedTransitions[a.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// EndTime возвращает время окончания записи (start + duration)
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// TimeRange возвращает занимаемый записью интервал [start, end)
func (a *Appointment) TimeRange() (TimeRange, error) {
	return NewTimeRange(a.StartTime, a.DurationMinutes)
}

// StartsAt возвращает момент начала записи (дата + время)
func (a *Appointment) StartsAt() (time.Time, error) {
	minutes, err := a.StartTime.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	day := time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), 0, 0, 0, 0, a.Date.Location())
	return day.Add(time.Duration(minutes) * time.Minute), nil
}

// IsValidStatus проверяет, что строка - допустимый статус записи
func IsValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// AutoConfirmPolicy политика автоподтверждения новых записей
type AutoConfirmPolicy string

const (
	// PolicyAny запись подтверждается, если флаг включен у мастера ИЛИ у салона
	PolicyAny AutoConfirmPolicy = "any"
	// PolicyStaff решает только флаг мастера, салонный игнорируется
	PolicyStaff AutoConfirmPolicy = "staff"
	// PolicyAll запись подтверждается, только если флаги включены у обоих
	PolicyAll AutoConfirmPolicy = "all"
)

// InitialStatus возвращает начальный статус новой записи по политике автоподтверждения
func InitialStatus(staffAutoConfirm, salonAutoConfirm bool, policy AutoConfirmPolicy) AppointmentStatus {
	confirmed := false

	switch policy {
	case PolicyStaff:
		confirmed = staffAutoConfirm
	case PolicyAll:
		confirmed = staffAutoConfirm && salonAutoConfirm
	default:
		confirmed = staffAutoConfirm || salonAutoConfirm
	}

	if confirmed {
		return StatusConfirmed
	}
	return StatusPending
}

// SalonAppointmentsFilter фильтр для получения записей салона
type SalonAppointmentsFilter struct {
	SalonID          int64              // Обязательный параметр
	StaffID          *int64             // Фильтр по мастеру (опционально)
	StartDate        *time.Time         // Начало периода (опционально)
	EndDate          *time.Time         // Конец периода (опционально)
	Status           *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool               // Включать ли отменённые записи
}
