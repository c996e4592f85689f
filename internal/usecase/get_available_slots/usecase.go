package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/salon"
	serviceRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/catalog"
	staffRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/staff"
)

// UseCase use case для получения свободных слотов мастера
type UseCase struct {
	appointmentRepo AppointmentRepository
	salonRepo       SalonRepository
	staffRepo       StaffRepository
	serviceRepo     ServiceRepository
	breakRepo       BreakRepository
	vacationRepo    VacationRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	salonRepo SalonRepository,
	staffRepo StaffRepository,
	serviceRepo ServiceRepository,
	breakRepo BreakRepository,
	vacationRepo VacationRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		salonRepo:       salonRepo,
		staffRepo:       staffRepo,
		serviceRepo:     serviceRepo,
		breakRepo:       breakRepo,
		vacationRepo:    vacationRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных слотов
// Слоты генерируются по рабочим часам мастера с шагом в длительность услуги,
// затем из них убираются перерывы, отпуска и пересечения с активными записями
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: salon=%d, staff=%d, service=%d, date=%s",
		req.SalonID, req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем салон
	salon, err := uc.salonRepo.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("GetAvailableSlots: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Получаем мастера и проверяем принадлежность салону
	staff, err := uc.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailableSlots: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if staff.SalonID != req.SalonID {
		uc.logger.Warn("GetAvailableSlots: staff id=%d does not belong to salon id=%d", req.StaffID, req.SalonID)
		return nil, ErrStaffNotFound
	}

	// 5. Получаем услугу и проверяем принадлежность салону
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.SalonID != req.SalonID {
		uc.logger.Warn("GetAvailableSlots: service id=%d does not belong to salon id=%d", req.ServiceID, req.SalonID)
		return nil, ErrServiceNotFound
	}

	// 6. Проверяем, что мастер выполняет услугу
	if !service.IsPerformedBy(req.StaffID) {
		uc.logger.Warn("GetAvailableSlots: service id=%d is not performed by staff id=%d", req.ServiceID, req.StaffID)
		return nil, ErrServiceNotPerformed
	}

	emptyResponse := &Response{
		Date:      req.Date,
		SalonID:   req.SalonID,
		StaffID:   req.StaffID,
		ServiceID: req.ServiceID,
		Slots:     []Slot{},
	}

	// 7. На прошедшие даты свободных слотов нет
	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return emptyResponse, nil
	}

	// 8. Рабочее окно: пересечение графика салона и графика мастера
	schedule, err := staff.EffectiveSchedule(salon, req.Date.Weekday())
	if err != nil {
		uc.logger.Error("GetAvailableSlots: malformed working hours for staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: malformed working hours: %v", ErrInternal, err)
	}
	if !schedule.IsOpen {
		uc.logger.Info("GetAvailableSlots: staff id=%d does not work on %s", req.StaffID, req.Date.Format(domain.DateFormat))
		return emptyResponse, nil
	}

	// 9. Отпуск блокирует весь день
	vacations, err := uc.vacationRepo.ListByStaff(ctx, req.StaffID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get vacations: %v", err)
		return nil, fmt.Errorf("%w: failed to get vacations: %v", ErrInternal, err)
	}
	for _, vacation := range vacations {
		if vacation.Covers(req.Date) {
			uc.logger.Info("GetAvailableSlots: staff id=%d is on vacation on %s",
				req.StaffID, req.Date.Format(domain.DateFormat))
			return emptyResponse, nil
		}
	}

	// 10. Перерывы мастера на дату
	breaks, err := uc.breakRepo.ListByStaff(ctx, req.StaffID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get breaks: %v", err)
		return nil, fmt.Errorf("%w: failed to get breaks: %v", ErrInternal, err)
	}

	// 11. Активные записи мастера на дату
	appointments, err := uc.appointmentRepo.GetActiveByStaffAndDate(ctx, req.StaffID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 12. Генерируем и фильтруем слоты
	slots, err := generateSlots(schedule, service.DurationMinutes, req.Date, now, breaks, appointments)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d free slots for staff=%d, date=%s",
		len(slots), req.StaffID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		SalonID:   req.SalonID,
		StaffID:   req.StaffID,
		ServiceID: req.ServiceID,
		Slots:     slots,
	}, nil
}
