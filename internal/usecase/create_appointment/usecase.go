package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/appointment"
	salonRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/salon"
	serviceRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/catalog"
	staffRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/staff"
)

// UseCase use case для создания записи клиента
type UseCase struct {
	appointmentRepo AppointmentRepository
	salonRepo       SalonRepository
	staffRepo       StaffRepository
	serviceRepo     ServiceRepository
	breakRepo       BreakRepository
	vacationRepo    VacationRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	policy          domain.AutoConfirmPolicy
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
	txManager TransactionManager,
	policy domain.AutoConfirmPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		salonRepo:       salonRepo,
		staffRepo:       staffRepo,
		serviceRepo:     serviceRepo,
		breakRepo:       breakRepo,
		vacationRepo:    vacationRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		policy:          policy,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Проверка слота и вставка выполняются в сериализуемой транзакции
// с блокировкой записей мастера на дату - это закрывает гонку между
// двумя конкурентными попытками занять один слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: salon=%d, staff=%d, service=%d, date=%s, time=%s",
		req.SalonID, req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем салон
	salon, err := uc.salonRepo.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("CreateAppointment: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Получаем мастера и проверяем принадлежность салону
	staff, err := uc.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateAppointment: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if staff.SalonID != req.SalonID {
		uc.logger.Warn("CreateAppointment: staff id=%d does not belong to salon id=%d", req.StaffID, req.SalonID)
		return nil, ErrStaffNotFound
	}

	// 5. Получаем услугу и проверяем принадлежность салону
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.SalonID != req.SalonID {
		uc.logger.Warn("CreateAppointment: service id=%d does not belong to salon id=%d", req.ServiceID, req.SalonID)
		return nil, ErrServiceNotFound
	}

	// 6. Проверяем, что мастер выполняет услугу
	if !service.IsPerformedBy(req.StaffID) {
		uc.logger.Warn("CreateAppointment: service id=%d is not performed by staff id=%d", req.ServiceID, req.StaffID)
		return nil, ErrServiceNotPerformed
	}

	// 7. Валидация даты и времени относительно текущего момента
	if err := validateDate(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	// 8. Вычисляем занимаемый интервал [start, start+duration)
	slot, err := domain.NewTimeRange(req.StartTime, service.DurationMinutes)
	if err != nil {
		// Конец слота вышел бы за пределы суток
		uc.logger.Warn("CreateAppointment: slot exceeds day boundary: %v", err)
		return nil, ErrOutsideWorkingHours
	}

	var result *domain.Appointment

	// 9. Выполняем проверку слота и вставку в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 9.1. Рабочие часы: пересечение графика салона и графика мастера
		schedule, err := staff.EffectiveSchedule(salon, req.Date.Weekday())
		if err != nil {
			uc.logger.Error("CreateAppointment: malformed working hours for staff id=%d: %v", req.StaffID, err)
			return fmt.Errorf("%w: malformed working hours: %v", ErrInternal, err)
		}
		inHours, err := schedule.Contains(slot)
		if err != nil {
			uc.logger.Error("CreateAppointment: malformed working hours for staff id=%d: %v", req.StaffID, err)
			return fmt.Errorf("%w: malformed working hours: %v", ErrInternal, err)
		}
		if !inHours {
			uc.logger.Warn("CreateAppointment: slot %s-%s is outside working hours on %s",
				slot.Start, slot.End, req.Date.Format(domain.DateFormat))
			return ErrOutsideWorkingHours
		}

		// 9.2. Отпуска блокируют весь день
		vacations, err := uc.vacationRepo.ListByStaff(txCtx, req.StaffID)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get vacations: %v", err)
			return fmt.Errorf("%w: failed to get vacations: %v", ErrInternal, err)
		}
		for _, vacation := range vacations {
			if vacation.Covers(req.Date) {
				uc.logger.Warn("CreateAppointment: staff id=%d is on vacation on %s",
					req.StaffID, req.Date.Format(domain.DateFormat))
				return ErrStaffUnavailable
			}
		}

		// 9.3. Перерывы блокируют пересекающиеся интервалы
		breaks, err := uc.breakRepo.ListByStaff(txCtx, req.StaffID)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get breaks: %v", err)
			return fmt.Errorf("%w: failed to get breaks: %v", ErrInternal, err)
		}
		for _, brk := range breaks {
			if brk.BlocksOn(req.Date, slot) {
				uc.logger.Warn("CreateAppointment: slot %s-%s is blocked by break id=%d",
					slot.Start, slot.End, brk.ID)
				return ErrStaffUnavailable
			}
		}

		// 9.4. Активные записи мастера на дату с блокировкой (FOR UPDATE)
		existing, err := uc.appointmentRepo.GetActiveByStaffAndDate(txCtx, req.StaffID, req.Date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}
		for _, appt := range existing {
			apptRange, err := appt.TimeRange()
			if err != nil {
				continue
			}
			if slot.Overlaps(apptRange) {
				uc.logger.Warn("CreateAppointment: slot %s-%s overlaps appointment id=%d",
					slot.Start, slot.End, appt.ID)
				return ErrSlotTaken
			}
		}

		// 9.5. Начальный статус по политике автоподтверждения
		status := domain.InitialStatus(staff.AutoConfirm, salon.AutoConfirm, uc.policy)

		appointment := &domain.Appointment{
			Code:            uuid.NewString(),
			SalonID:         req.SalonID,
			StaffID:         req.StaffID,
			ServiceID:       req.ServiceID,
			ClientUserID:    req.ClientUserID,
			GuestName:       req.GuestName,
			GuestPhone:      req.GuestPhone,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          status,
			TotalPrice:      service.EffectivePrice(),
			PaymentStatus:   domain.PaymentUnpaid,
			Notes:           req.Notes,
		}

		// 9.6. Сохраняем запись; EXCLUDE-констрейнт в БД - последний рубеж от гонки
		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateAppointment: slot conflict detected by database constraint")
				return ErrSlotTaken
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d, status=%s", result.ID, result.Status)

	endTime, err := result.EndTime()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
	}

	return &Response{
		ID:              result.ID,
		Code:            result.Code,
		SalonID:         result.SalonID,
		StaffID:         result.StaffID,
		ServiceID:       result.ServiceID,
		ClientUserID:    result.ClientUserID,
		GuestName:       result.GuestName,
		GuestPhone:      result.GuestPhone,
		Date:            result.Date,
		StartTime:       result.StartTime,
		EndTime:         endTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		TotalPrice:      result.TotalPrice,
		PaymentStatus:   string(result.PaymentStatus),
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
