package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/appointment"
	reviewRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/review"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/reviews/models"
)

// Service сервис для работы с отзывами
type Service struct {
	reviewRepo      ReviewRepository
	appointmentRepo AppointmentRepository
	staffRepo       StaffRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(
	reviewRepo ReviewRepository,
	appointmentRepo AppointmentRepository,
	staffRepo StaffRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reviewRepo:      reviewRepo,
		appointmentRepo: appointmentRepo,
		staffRepo:       staffRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Create создает отзыв на завершённую запись
// Отзыв оставляет только клиент записи, один раз. Вставка отзыва
// и пересчёт рейтинга мастера выполняются в одной транзакции
func (s *Service) Create(ctx context.Context, appointmentID int64, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("Create: creating review for appointment id=%d by user=%d", appointmentID, req.UserID)

	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Create: appointment id=%d not found", appointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Create: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	if appointment.ClientUserID == nil || *appointment.ClientUserID != req.UserID {
		s.logger.Warn("Create: user=%d is not the client of appointment id=%d", req.UserID, appointmentID)
		return nil, ErrAccessDenied
	}

	if appointment.Status != domain.StatusCompleted {
		s.logger.Warn("Create: appointment id=%d is not completed, status=%s", appointmentID, appointment.Status)
		return nil, ErrNotCompleted
	}

	review := &domain.Review{
		AppointmentID: appointmentID,
		SalonID:       appointment.SalonID,
		StaffID:       appointment.StaffID,
		ClientUserID:  req.UserID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	}

	if err := review.Validate(); err != nil {
		s.logger.Warn("Create: validation failed for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var created *domain.Review
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		created, err = s.reviewRepo.Create(ctx, review)
		if err != nil {
			return err
		}

		return s.staffRepo.UpdateRatingStats(ctx, appointment.StaffID, req.Rating)
	})

	if err != nil {
		if errors.Is(err, reviewRepo.ErrAlreadyReviewed) {
			s.logger.Warn("Create: appointment id=%d already reviewed", appointmentID)
			return nil, ErrAlreadyReviewed
		}
		s.logger.Error("Create: transaction failed for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: Create - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created review id=%d for appointment id=%d", created.ID, appointmentID)
	return models.FromDomainReview(created), nil
}
