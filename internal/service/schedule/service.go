package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	breakRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/breaks"
	salonRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/salon"
	staffRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/staff"
	vacationRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/vacations"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/schedule/models"
)

// Service сервис управления расписанием недоступности мастеров
// Перерывы и отпуска накладываются поверх рабочих часов и учитываются
// при валидации слотов и расчёте свободного времени
type Service struct {
	breakRepo    BreakRepository
	vacationRepo VacationRepository
	staffRepo    StaffRepository
	salonRepo    SalonRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	breakRepo BreakRepository,
	vacationRepo VacationRepository,
	staffRepo StaffRepository,
	salonRepo SalonRepository,
	logger Logger,
) *Service {
	return &Service{
		breakRepo:    breakRepo,
		vacationRepo: vacationRepo,
		staffRepo:    staffRepo,
		salonRepo:    salonRepo,
		logger:       logger,
	}
}

// Перерывы

// CreateBreak создает перерыв мастера
// Доступно самому мастеру и владельцу салона
func (s *Service) CreateBreak(ctx context.Context, staffID, userID int64, payload *models.BreakPayload) (*models.BreakResponse, error) {
	s.logger.Info("CreateBreak: creating break for staff=%d by user=%d", staffID, userID)

	if err := s.checkStaffAccess(ctx, staffID, userID); err != nil {
		return nil, err
	}

	brk, err := payload.ToDomain(staffID)
	if err != nil {
		s.logger.Warn("CreateBreak: invalid payload for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := brk.Validate(); err != nil {
		s.logger.Warn("CreateBreak: validation failed for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.breakRepo.Create(ctx, brk)
	if err != nil {
		s.logger.Error("CreateBreak: repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: CreateBreak - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBreak: successfully created break id=%d for staff=%d", created.ID, staffID)
	return models.FromDomainBreak(created), nil
}

// ListBreaks получает все перерывы мастера
func (s *Service) ListBreaks(ctx context.Context, staffID int64) (*models.BreakListResponse, error) {
	s.logger.Info("ListBreaks: fetching breaks for staff=%d", staffID)

	if _, err := s.getStaff(ctx, staffID, "ListBreaks"); err != nil {
		return nil, err
	}

	breaks, err := s.breakRepo.ListByStaff(ctx, staffID)
	if err != nil {
		s.logger.Error("ListBreaks: repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: ListBreaks - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBreaks: successfully fetched %d breaks for staff=%d", len(breaks), staffID)
	return models.FromDomainBreakList(breaks), nil
}

// UpdateBreak обновляет перерыв мастера
// Доступно самому мастеру и владельцу салона
func (s *Service) UpdateBreak(ctx context.Context, staffID, breakID, userID int64, payload *models.BreakPayload) (*models.BreakResponse, error) {
	s.logger.Info("UpdateBreak: updating break id=%d for staff=%d by user=%d", breakID, staffID, userID)

	if err := s.checkStaffAccess(ctx, staffID, userID); err != nil {
		return nil, err
	}

	existing, err := s.getBreak(ctx, staffID, breakID, "UpdateBreak")
	if err != nil {
		return nil, err
	}

	brk, err := payload.ToDomain(staffID)
	if err != nil {
		s.logger.Warn("UpdateBreak: invalid payload for break id=%d: %v", breakID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	brk.ID = existing.ID
	brk.CreatedAt = existing.CreatedAt

	if err := brk.Validate(); err != nil {
		s.logger.Warn("UpdateBreak: validation failed for break id=%d: %v", breakID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.breakRepo.Update(ctx, brk); err != nil {
		if errors.Is(err, breakRepo.ErrBreakNotFound) {
			s.logger.Warn("UpdateBreak: break id=%d not found during update", breakID)
			return nil, ErrBreakNotFound
		}
		s.logger.Error("UpdateBreak: repository error for break id=%d: %v", breakID, err)
		return nil, fmt.Errorf("%w: UpdateBreak - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateBreak: successfully updated break id=%d", breakID)
	return models.FromDomainBreak(brk), nil
}

// DeleteBreak удаляет перерыв мастера
// Доступно самому мастеру и владельцу салона
func (s *Service) DeleteBreak(ctx context.Context, staffID, breakID, userID int64) error {
	s.logger.Info("DeleteBreak: deleting break id=%d for staff=%d by user=%d", breakID, staffID, userID)

	if err := s.checkStaffAccess(ctx, staffID, userID); err != nil {
		return err
	}

	if _, err := s.getBreak(ctx, staffID, breakID, "DeleteBreak"); err != nil {
		return err
	}

	if err := s.breakRepo.Delete(ctx, breakID); err != nil {
		if errors.Is(err, breakRepo.ErrBreakNotFound) {
			s.logger.Warn("DeleteBreak: break id=%d not found during delete", breakID)
			return ErrBreakNotFound
		}
		s.logger.Error("DeleteBreak: repository error for break id=%d: %v", breakID, err)
		return fmt.Errorf("%w: DeleteBreak - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBreak: successfully deleted break id=%d", breakID)
	return nil
}

// Отпуска

// CreateVacation создает отпуск мастера
// Доступно самому мастеру и владельцу салона
func (s *Service) CreateVacation(ctx context.Context, staffID, userID int64, payload *models.VacationPayload) (*models.VacationResponse, error) {
	s.logger.Info("CreateVacation: creating vacation for staff=%d by user=%d", staffID, userID)

	if err := s.checkStaffAccess(ctx, staffID, userID); err != nil {
		return nil, err
	}

	vacation, err := payload.ToDomain(staffID)
	if err != nil {
		s.logger.Warn("CreateVacation: invalid payload for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := vacation.Validate(); err != nil {
		s.logger.Warn("CreateVacation: validation failed for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.vacationRepo.Create(ctx, vacation)
	if err != nil {
		s.logger.Error("CreateVacation: repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: CreateVacation - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateVacation: successfully created vacation id=%d for staff=%d", created.ID, staffID)
	return models.FromDomainVacation(created), nil
}

// ListVacations получает все отпуска мастера
func (s *Service) ListVacations(ctx context.Context, staffID int64) (*models.VacationListResponse, error) {
	s.logger.Info("ListVacations: fetching vacations for staff=%d", staffID)

	if _, err := s.getStaff(ctx, staffID, "ListVacations"); err != nil {
		return nil, err
	}

	vacations, err := s.vacationRepo.ListByStaff(ctx, staffID)
	if err != nil {
		s.logger.Error("ListVacations: repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: ListVacations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListVacations: successfully fetched %d vacations for staff=%d", len(vacations), staffID)
	return models.FromDomainVacationList(vacations), nil
}

// UpdateVacation обновляет отпуск мастера
// Доступно самому мастеру и владельцу салона
func (s *Service) UpdateVacation(ctx context.Context, staffID, vacationID, userID int64, payload *models.VacationPayload) (*models.VacationResponse, error) {
	s.logger.Info("UpdateVacation: updating vacation id=%d for staff=%d by user=%d", vacationID, staffID, userID)

	if err := s.checkStaffAccess(ctx, staffID, userID); err != nil {
		return nil, err
	}

	existing, err := s.getVacation(ctx, staffID, vacationID, "UpdateVacation")
	if err != nil {
		return nil, err
	}

	vacation, err := payload.ToDomain(staffID)
	if err != nil {
		s.logger.Warn("UpdateVacation: invalid payload for vacation id=%d: %v", vacationID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	vacation.ID = existing.ID
	vacation.CreatedAt = existing.CreatedAt

	if err := vacation.Validate(); err != nil {
		s.logger.Warn("UpdateVacation: validation failed for vacation id=%d: %v", vacationID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.vacationRepo.Update(ctx, vacation); err != nil {
		if errors.Is(err, vacationRepo.ErrVacationNotFound) {
			s.logger.Warn("UpdateVacation: vacation id=%d not found during update", vacationID)
			return nil, ErrVacationNotFound
		}
		s.logger.Error("UpdateVacation: repository error for vacation id=%d: %v", vacationID, err)
		return nil, fmt.Errorf("%w: UpdateVacation - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateVacation: successfully updated vacation id=%d", vacationID)
	return models.FromDomainVacation(vacation), nil
}

// DeleteVacation удаляет отпуск мастера
// Доступно самому мастеру и владельцу салона
func (s *Service) DeleteVacation(ctx context.Context, staffID, vacationID, userID int64) error {
	s.logger.Info("DeleteVacation: deleting vacation id=%d for staff=%d by user=%d", vacationID, staffID, userID)

	if err := s.checkStaffAccess(ctx, staffID, userID); err != nil {
		return err
	}

	if _, err := s.getVacation(ctx, staffID, vacationID, "DeleteVacation"); err != nil {
		return err
	}

	if err := s.vacationRepo.Delete(ctx, vacationID); err != nil {
		if errors.Is(err, vacationRepo.ErrVacationNotFound) {
			s.logger.Warn("DeleteVacation: vacation id=%d not found during delete", vacationID)
			return ErrVacationNotFound
		}
		s.logger.Error("DeleteVacation: repository error for vacation id=%d: %v", vacationID, err)
		return fmt.Errorf("%w: DeleteVacation - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteVacation: successfully deleted vacation id=%d", vacationID)
	return nil
}

// Вспомогательные методы

// getStaff загружает мастера с маппингом ошибок репозитория
func (s *Service) getStaff(ctx context.Context, staffID int64, op string) (*domain.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("%s: staff id=%d not found", op, staffID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("%s: repository error for staff id=%d: %v", op, staffID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return staff, nil
}

// getBreak загружает перерыв и проверяет его принадлежность мастеру
func (s *Service) getBreak(ctx context.Context, staffID, breakID int64, op string) (*domain.Break, error) {
	brk, err := s.breakRepo.GetByID(ctx, breakID)
	if err != nil {
		if errors.Is(err, breakRepo.ErrBreakNotFound) {
			s.logger.Warn("%s: break id=%d not found", op, breakID)
			return nil, ErrBreakNotFound
		}
		s.logger.Error("%s: repository error for break id=%d: %v", op, breakID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if brk.StaffID != staffID {
		s.logger.Warn("%s: break id=%d does not belong to staff=%d", op, breakID, staffID)
		return nil, ErrBreakNotFound
	}

	return brk, nil
}

// getVacation загружает отпуск и проверяет его принадлежность мастеру
func (s *Service) getVacation(ctx context.Context, staffID, vacationID int64, op string) (*domain.Vacation, error) {
	vacation, err := s.vacationRepo.GetByID(ctx, vacationID)
	if err != nil {
		if errors.Is(err, vacationRepo.ErrVacationNotFound) {
			s.logger.Warn("%s: vacation id=%d not found", op, vacationID)
			return nil, ErrVacationNotFound
		}
		s.logger.Error("%s: repository error for vacation id=%d: %v", op, vacationID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if vacation.StaffID != staffID {
		s.logger.Warn("%s: vacation id=%d does not belong to staff=%d", op, vacationID, staffID)
		return nil, ErrVacationNotFound
	}

	return vacation, nil
}

// checkStaffAccess проверяет право управлять расписанием мастера
// Доступ есть у самого мастера и у владельца салона
func (s *Service) checkStaffAccess(ctx context.Context, staffID, userID int64) error {
	staff, err := s.getStaff(ctx, staffID, "checkStaffAccess")
	if err != nil {
		return err
	}

	if staff.UserID == userID {
		return nil
	}

	salon, err := s.salonRepo.GetByID(ctx, staff.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("checkStaffAccess: salon id=%d not found", staff.SalonID)
			return ErrAccessDenied
		}
		s.logger.Error("checkStaffAccess: repository error for salon id=%d: %v", staff.SalonID, err)
		return fmt.Errorf("%w: checkStaffAccess - repository error: %v", ErrInternal, err)
	}

	if salon.OwnerUserID == userID {
		return nil
	}

	s.logger.Warn("checkStaffAccess: user=%d has no access to staff=%d schedule", userID, staffID)
	return ErrAccessDenied
}
