package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

var (
	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidTime возвращается при некорректном формате времени
	ErrInvalidTime = errors.New("invalid time format, expected HH:MM")
)

// Request модели

// BreakPayload данные перерыва в запросах создания и обновления
type BreakPayload struct {
	Title     string  `json:"title"`
	Type      string  `json:"type"`      // daily | weekly | specific_date | date_range
	StartTime string  `json:"startTime"` // "12:00"
	EndTime   string  `json:"endTime"`   // "13:00"
	Days      []int64 `json:"days,omitempty"`
	Date      *string `json:"date,omitempty"`      // "2025-10-15"
	StartDate *string `json:"startDate,omitempty"` // "2025-10-15"
	EndDate   *string `json:"endDate,omitempty"`   // "2025-10-20"
}

// ToDomain конвертирует payload в domain.Break
func (p *BreakPayload) ToDomain(staffID int64) (*domain.Break, error) {
	startTime, err := types.NewTimeStringFromString(p.StartTime)
	if err != nil {
		return nil, ErrInvalidTime
	}
	endTime, err := types.NewTimeStringFromString(p.EndTime)
	if err != nil {
		return nil, ErrInvalidTime
	}

	brk := &domain.Break{
		StaffID:   staffID,
		Title:     p.Title,
		Type:      domain.BreakType(p.Type),
		StartTime: startTime,
		EndTime:   endTime,
		Days:      p.Days,
	}

	if brk.Date, err = parseOptionalDate(p.Date); err != nil {
		return nil, err
	}
	if brk.StartDate, err = parseOptionalDate(p.StartDate); err != nil {
		return nil, err
	}
	if brk.EndDate, err = parseOptionalDate(p.EndDate); err != nil {
		return nil, err
	}

	return brk, nil
}

// VacationPayload данные отпуска в запросах создания и обновления
type VacationPayload struct {
	Title     string  `json:"title"`
	Type      string  `json:"type"`      // vacation | sick_leave | personal | other
	StartDate string  `json:"startDate"` // "2025-10-15"
	EndDate   string  `json:"endDate"`   // "2025-10-20"
	Notes     *string `json:"notes,omitempty"`
}

// ToDomain конвертирует payload в domain.Vacation
func (p *VacationPayload) ToDomain(staffID int64) (*domain.Vacation, error) {
	startDate, err := time.Parse(domain.DateFormat, p.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	endDate, err := time.Parse(domain.DateFormat, p.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	return &domain.Vacation{
		StaffID:   staffID,
		Title:     p.Title,
		Type:      domain.VacationType(p.Type),
		StartDate: startDate,
		EndDate:   endDate,
		Notes:     p.Notes,
	}, nil
}

// Response модели

// BreakResponse ответ с данными перерыва
type BreakResponse struct {
	ID        int64   `json:"id"`
	StaffID   int64   `json:"staffId"`
	Title     string  `json:"title"`
	Type      string  `json:"type"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Days      []int64 `json:"days,omitempty"`
	Date      *string `json:"date,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BreakListResponse ответ со списком перерывов
type BreakListResponse struct {
	Breaks []BreakResponse `json:"breaks"`
}

// VacationResponse ответ с данными отпуска
type VacationResponse struct {
	ID        int64   `json:"id"`
	StaffID   int64   `json:"staffId"`
	Title     string  `json:"title"`
	Type      string  `json:"type"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Notes     *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VacationListResponse ответ со списком отпусков
type VacationListResponse struct {
	Vacations []VacationResponse `json:"vacations"`
}

// Методы конвертации

// FromDomainBreak конвертирует domain модель в DTO
func FromDomainBreak(b *domain.Break) *BreakResponse {
	if b == nil {
		return nil
	}

	return &BreakResponse{
		ID:        b.ID,
		StaffID:   b.StaffID,
		Title:     b.Title,
		Type:      string(b.Type),
		StartTime: b.StartTime.String(),
		EndTime:   b.EndTime.String(),
		Days:      b.Days,
		Date:      formatOptionalDate(b.Date),
		StartDate: formatOptionalDate(b.StartDate),
		EndDate:   formatOptionalDate(b.EndDate),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// FromDomainBreakList конвертирует список domain моделей в DTO
func FromDomainBreakList(breaks []*domain.Break) *BreakListResponse {
	resp := &BreakListResponse{
		Breaks: make([]BreakResponse, 0, len(breaks)),
	}
	for _, b := range breaks {
		resp.Breaks = append(resp.Breaks, *FromDomainBreak(b))
	}
	return resp
}

// FromDomainVacation конвертирует domain модель в DTO
func FromDomainVacation(v *domain.Vacation) *VacationResponse {
	if v == nil {
		return nil
	}

	return &VacationResponse{
		ID:        v.ID,
		StaffID:   v.StaffID,
		Title:     v.Title,
		Type:      string(v.Type),
		StartDate: v.StartDate.Format(domain.DateFormat),
		EndDate:   v.EndDate.Format(domain.DateFormat),
		Notes:     v.Notes,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// FromDomainVacationList конвертирует список domain моделей в DTO
func FromDomainVacationList(vacations []*domain.Vacation) *VacationListResponse {
	resp := &VacationListResponse{
		Vacations: make([]VacationResponse, 0, len(vacations)),
	}
	for _, v := range vacations {
		resp.Vacations = append(resp.Vacations, *FromDomainVacation(v))
	}
	return resp
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(domain.DateFormat, *s)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateFormat)
	return &s
}
