package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	SalonID   int64     // ID салона
	StaffID   int64     // ID мастера
	ServiceID int64     // ID услуги
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date      time.Time // Дата, на которую запрашивались слоты
	SalonID   int64     // ID салона
	StaffID   int64     // ID мастера
	ServiceID int64     // ID услуги
	Slots     []Slot    // Список свободных слотов
}

// Slot модель свободного временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	EndTime         types.TimeString // Время окончания слота
	DurationMinutes int              // Длительность слота в минутах
}
