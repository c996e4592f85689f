package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	createAppointment "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
// Для гостевой записи передаются guestName и guestPhone,
// зарегистрированный клиент определяется по заголовку X-User-ID
type CreateAppointmentRequest struct {
	SalonID    int64   `json:"salonId"`
	StaffID    int64   `json:"staffId"`
	ServiceID  int64   `json:"serviceId"`
	GuestName  *string `json:"guestName,omitempty"`
	GuestPhone *string `json:"guestPhone,omitempty"`
	Date       string  `json:"date"`      // "2025-10-15"
	StartTime  string  `json:"startTime"` // "10:00"
	Notes      *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	Code            string  `json:"code"`
	SalonID         int64   `json:"salonId"`
	StaffID         int64   `json:"staffId"`
	ServiceID       int64   `json:"serviceId"`
	ClientUserID    *int64  `json:"clientUserId,omitempty"`
	GuestName       *string `json:"guestName,omitempty"`
	GuestPhone      *string `json:"guestPhone,omitempty"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	TotalPrice      float64 `json:"totalPrice"`
	PaymentStatus   string  `json:"paymentStatus"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientUserID *int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		SalonID:      r.SalonID,
		StaffID:      r.StaffID,
		ServiceID:    r.ServiceID,
		ClientUserID: clientUserID,
		GuestName:    r.GuestName,
		GuestPhone:   r.GuestPhone,
		Date:         date,
		StartTime:    startTime,
		Notes:        r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		Code:            resp.Code,
		SalonID:         resp.SalonID,
		StaffID:         resp.StaffID,
		ServiceID:       resp.ServiceID,
		ClientUserID:    resp.ClientUserID,
		GuestName:       resp.GuestName,
		GuestPhone:      resp.GuestPhone,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		TotalPrice:      resp.TotalPrice,
		PaymentStatus:   resp.PaymentStatus,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
