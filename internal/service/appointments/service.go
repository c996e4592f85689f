package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/appointment"
	salonRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/salon"
	staffRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/appointments/models"
)

// Service сервис для работы с записями клиентов
type Service struct {
	appointmentRepo AppointmentRepository
	salonRepo       SalonRepository
	staffRepo       StaffRepository
	logger          Logger
	now             clock
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	salonRepo SalonRepository,
	staffRepo StaffRepository,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		salonRepo:       salonRepo,
		staffRepo:       staffRepo,
		logger:          logger,
		now:             time.Now,
	}
}

// GetByID получает запись по ID
// Доступно клиенту записи, назначенному мастеру и владельцу салона
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appointment, err := s.getAppointment(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if err := s.checkReadAccess(ctx, appointment, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appointment), nil
}

// GetByCode получает запись по публичному коду
// Код выдаётся при создании записи и служит ключом доступа для гостей,
// поэтому дополнительных проверок прав здесь нет
func (s *Service) GetByCode(ctx context.Context, code string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByCode: fetching appointment code=%s", code)

	appointment, err := s.appointmentRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByCode: appointment code=%s not found", code)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByCode: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: GetByCode - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByCode: successfully fetched appointment id=%d", appointment.ID)
	return models.FromDomainAppointment(appointment), nil
}

// GetUserAppointments получает историю записей клиента
// Опционально фильтрует по статусу
func (s *Service) GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUserAppointments: fetching appointments for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserAppointments: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.GetByClient(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserAppointments: successfully fetched %d appointments for user=%d", len(appointments), req.UserID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetSalonAppointments получает записи салона с гибкой фильтрацией
// Поддерживает фильтрацию по мастеру, периоду, статусу и включение отменённых
// Доступно владельцу салона и его мастерам
func (s *Service) GetSalonAppointments(ctx context.Context, req *models.GetSalonAppointmentsRequest) (*models.AppointmentListResponse, error) {
	logMsg := fmt.Sprintf("GetSalonAppointments: fetching appointments for salon=%d, user=%d", req.SalonID, req.UserID)
	if req.StaffID != nil {
		logMsg += fmt.Sprintf(", staff=%d", *req.StaffID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	if err := s.checkSalonAccess(ctx, req.SalonID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSalonAppointments: invalid filter for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetBySalonWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetSalonAppointments: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: GetSalonAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSalonAppointments: successfully fetched %d appointments for salon=%d", len(appointments), req.SalonID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись
// Клиент может отменить свою запись только до её начала (cancelled_by = client)
// Мастер записи и владелец салона могут отменить в любой момент до завершения
// (cancelled_by = salon). Отмена - единственный переход, освобождающий слот
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", appointmentID, req.UserID)

	appointment, err := s.getAppointment(ctx, appointmentID, "Cancel")
	if err != nil {
		return err
	}

	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appointment.Status)
		return ErrCannotCancel
	}

	var cancelledBy string

	if appointment.ClientUserID != nil && *appointment.ClientUserID == req.UserID {
		// Клиент отменяет свою запись - только до начала
		startsAt, err := appointment.StartsAt()
		if err != nil {
			s.logger.Error("Cancel: invalid start time for appointment id=%d: %v", appointmentID, err)
			return fmt.Errorf("%w: Cancel - invalid start time: %v", ErrInternal, err)
		}
		if !s.now().Before(startsAt) {
			s.logger.Warn("Cancel: appointment id=%d already started, client cancellation rejected", appointmentID)
			return ErrCannotCancel
		}
		cancelledBy = domain.CancelledByClient
	} else {
		if err := s.checkSalonSideAccess(ctx, appointment, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel appointment id=%d", req.UserID, appointmentID)
			return ErrAccessDenied
		}
		cancelledBy = domain.CancelledBySalon
	}

	if err := s.appointmentRepo.Cancel(ctx, appointmentID, cancelledBy, req.CancellationReason); err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			s.logger.Warn("Cancel: appointment id=%d not found during cancellation", appointmentID)
			return ErrAppointmentNotFound
		case errors.Is(err, appointmentRepo.ErrStatusConflict):
			s.logger.Warn("Cancel: appointment id=%d status changed concurrently", appointmentID)
			return ErrStatusConflict
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d by %s", appointmentID, cancelledBy)
	return nil
}

// UpdateStatus переводит запись по жизненному циклу
// pending → confirmed: назначенный мастер или владелец салона
// confirmed → in_progress и in_progress → completed: только назначенный мастер
// Отмена идёт через Cancel, здесь статус cancelled не принимается
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%d",
		appointmentID, req.Status, req.UserID)

	appointment, err := s.getAppointment(ctx, appointmentID, "UpdateStatus")
	if err != nil {
		return err
	}

	newStatus, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if newStatus == domain.StatusCancelled {
		s.logger.Warn("UpdateStatus: cancellation of appointment id=%d must go through Cancel", appointmentID)
		return fmt.Errorf("%w: use cancel endpoint to cancel appointment", ErrInvalidInput)
	}

	if !appointment.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for appointment id=%d",
			appointment.Status, newStatus, appointmentID)
		return ErrInvalidTransition
	}

	switch newStatus {
	case domain.StatusConfirmed:
		if err := s.checkSalonSideAccess(ctx, appointment, req.UserID); err != nil {
			s.logger.Warn("UpdateStatus: user=%d cannot confirm appointment id=%d", req.UserID, appointmentID)
			return ErrAccessDenied
		}
	default:
		// in_progress и completed подтверждает только мастер, ведущий запись
		assigned, err := s.isAssignedStaff(ctx, appointment, req.UserID)
		if err != nil {
			return err
		}
		if !assigned {
			s.logger.Warn("UpdateStatus: user=%d is not the assigned staff of appointment id=%d", req.UserID, appointmentID)
			return ErrAccessDenied
		}
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, appointment.Status, newStatus); err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			s.logger.Warn("UpdateStatus: appointment id=%d not found during update", appointmentID)
			return ErrAppointmentNotFound
		case errors.Is(err, appointmentRepo.ErrStatusConflict):
			s.logger.Warn("UpdateStatus: appointment id=%d status changed concurrently", appointmentID)
			return ErrStatusConflict
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", appointmentID, newStatus)
	return nil
}

// Вспомогательные методы

// getAppointment загружает запись с маппингом ошибок репозитория
func (s *Service) getAppointment(ctx context.Context, id int64, op string) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appointment, nil
}

// checkReadAccess проверяет право пользователя видеть запись
// Доступ есть у клиента записи, назначенного мастера и владельца салона
func (s *Service) checkReadAccess(ctx context.Context, appointment *domain.Appointment, userID int64) error {
	if appointment.ClientUserID != nil && *appointment.ClientUserID == userID {
		return nil
	}

	if err := s.checkSalonSideAccess(ctx, appointment, userID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkSalonSideAccess проверяет, что пользователь - назначенный мастер записи
// или владелец салона
func (s *Service) checkSalonSideAccess(ctx context.Context, appointment *domain.Appointment, userID int64) error {
	assigned, err := s.isAssignedStaff(ctx, appointment, userID)
	if err != nil {
		return err
	}
	if assigned {
		return nil
	}

	owner, err := s.isSalonOwner(ctx, appointment.SalonID, userID)
	if err != nil {
		return err
	}
	if owner {
		return nil
	}

	return ErrAccessDenied
}

// checkSalonAccess проверяет, что пользователь - владелец салона или его мастер
func (s *Service) checkSalonAccess(ctx context.Context, salonID int64, userID int64) error {
	owner, err := s.isSalonOwner(ctx, salonID, userID)
	if err != nil {
		return err
	}
	if owner {
		return nil
	}

	_, err = s.staffRepo.GetBySalonAndUser(ctx, salonID, userID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("checkSalonAccess: user=%d has no access to salon=%d", userID, salonID)
			return ErrAccessDenied
		}
		s.logger.Error("checkSalonAccess: repository error for salon=%d: %v", salonID, err)
		return fmt.Errorf("%w: checkSalonAccess - repository error: %v", ErrInternal, err)
	}

	return nil
}

// isAssignedStaff проверяет, что пользователь - мастер, на которого оформлена запись
func (s *Service) isAssignedStaff(ctx context.Context, appointment *domain.Appointment, userID int64) (bool, error) {
	staff, err := s.staffRepo.GetByID(ctx, appointment.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("isAssignedStaff: staff id=%d not found", appointment.StaffID)
			return false, ErrStaffNotFound
		}
		s.logger.Error("isAssignedStaff: repository error for staff id=%d: %v", appointment.StaffID, err)
		return false, fmt.Errorf("%w: isAssignedStaff - repository error: %v", ErrInternal, err)
	}

	return staff.UserID == userID, nil
}

// isSalonOwner проверяет, что пользователь - владелец салона
func (s *Service) isSalonOwner(ctx context.Context, salonID int64, userID int64) (bool, error) {
	salon, err := s.salonRepo.GetByID(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("isSalonOwner: salon id=%d not found", salonID)
			return false, ErrSalonNotFound
		}
		s.logger.Error("isSalonOwner: repository error for salon id=%d: %v", salonID, err)
		return false, fmt.Errorf("%w: isSalonOwner - repository error: %v", ErrInternal, err)
	}

	return salon.OwnerUserID == userID, nil
}
