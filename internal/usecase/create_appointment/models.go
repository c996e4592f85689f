package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Request модель запроса на создание записи
// Клиент указывается либо через ClientUserID (зарегистрированный пользователь),
// либо через GuestName+GuestPhone (гость)
type Request struct {
	SalonID   int64            // ID салона
	StaffID   int64            // ID мастера
	ServiceID int64            // ID услуги

	ClientUserID *int64  // ID зарегистрированного клиента (опционально)
	GuestName    *string // Имя гостя (опционально)
	GuestPhone   *string // Телефон гостя (опционально)

	Date      time.Time        // Дата записи (без времени)
	StartTime types.TimeString // Время начала (например, "10:00")
	Notes     *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID        int64  // ID созданной записи
	Code      string // Публичный код для доступа к записи
	SalonID   int64  // ID салона
	StaffID   int64  // ID мастера
	ServiceID int64  // ID услуги

	ClientUserID *int64  // ID клиента
	GuestName    *string // Имя гостя
	GuestPhone   *string // Телефон гостя

	Date            time.Time        // Дата записи
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время окончания (start + длительность услуги)
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус записи (pending или confirmed)

	TotalPrice    float64 // Цена с учётом скидки на момент записи
	PaymentStatus string  // Статус оплаты
	Notes         *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
