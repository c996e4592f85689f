package reviews

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/appointment"
	reviewRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/review"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/reviews/models"
)

type fakeReviewRepo struct {
	createErr error
	created   *domain.Review
}

func (f *fakeReviewRepo) Create(_ context.Context, r *domain.Review) (*domain.Review, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *r
	created.ID = 1
	f.created = &created
	return &created, nil
}

func (f *fakeReviewRepo) GetByAppointment(_ context.Context, _ int64) (*domain.Review, error) {
	return f.created, nil
}

type fakeAppointmentRepo struct {
	appointment *domain.Appointment
	err         error
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	return f.appointment, f.err
}

type fakeStaffRepo struct {
	ratedStaffID int64
	rating       int
	err          error
}

func (f *fakeStaffRepo) UpdateRatingStats(_ context.Context, staffID int64, rating int) error {
	if f.err != nil {
		return f.err
	}
	f.ratedStaffID = staffID
	f.rating = rating
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func completedAppointment() *domain.Appointment {
	client := int64(42)
	return &domain.Appointment{
		ID:           7,
		SalonID:      1,
		StaffID:      10,
		ClientUserID: &client,
		Status:       domain.StatusCompleted,
	}
}

func newFixture(appt *domain.Appointment) (*Service, *fakeReviewRepo, *fakeStaffRepo) {
	reviews := &fakeReviewRepo{}
	staff := &fakeStaffRepo{}
	svc := NewService(
		reviews,
		&fakeAppointmentRepo{appointment: appt},
		staff,
		&fakeTxManager{},
		noopLogger{},
	)
	return svc, reviews, staff
}

func TestCreate_Success(t *testing.T) {
	svc, _, staff := newFixture(completedAppointment())

	resp, err := svc.Create(context.Background(), 7, &models.CreateReviewRequest{
		UserID: 42,
		Rating: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.AppointmentID)
	assert.Equal(t, int64(10), resp.StaffID)
	assert.Equal(t, 5, resp.Rating)

	// Рейтинг мастера пересчитывается в той же транзакции
	assert.Equal(t, int64(10), staff.ratedStaffID)
	assert.Equal(t, 5, staff.rating)
}

func TestCreate_OnlyClientCanReview(t *testing.T) {
	t.Run("staff user denied", func(t *testing.T) {
		svc, _, _ := newFixture(completedAppointment())
		_, err := svc.Create(context.Background(), 7, &models.CreateReviewRequest{UserID: 600, Rating: 5})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("guest appointment has no reviewer", func(t *testing.T) {
		appt := completedAppointment()
		appt.ClientUserID = nil
		svc, _, _ := newFixture(appt)
		_, err := svc.Create(context.Background(), 7, &models.CreateReviewRequest{UserID: 42, Rating: 5})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestCreate_RequiresCompletedStatus(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{
		domain.StatusPending, domain.StatusConfirmed, domain.StatusInProgress, domain.StatusCancelled,
	} {
		appt := completedAppointment()
		appt.Status = status
		svc, _, _ := newFixture(appt)

		_, err := svc.Create(context.Background(), 7, &models.CreateReviewRequest{UserID: 42, Rating: 5})
		assert.ErrorIs(t, err, ErrNotCompleted, "status %s", status)
	}
}

func TestCreate_InvalidRating(t *testing.T) {
	for _, rating := range []int{0, 6, -1} {
		svc, _, _ := newFixture(completedAppointment())
		_, err := svc.Create(context.Background(), 7, &models.CreateReviewRequest{UserID: 42, Rating: rating})
		assert.ErrorIs(t, err, ErrInvalidInput, "rating %d", rating)
	}
}

func TestCreate_DuplicateReview(t *testing.T) {
	svc, reviews, _ := newFixture(completedAppointment())
	reviews.createErr = reviewRepo.ErrAlreadyReviewed

	_, err := svc.Create(context.Background(), 7, &models.CreateReviewRequest{UserID: 42, Rating: 5})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestCreate_AppointmentNotFound(t *testing.T) {
	svc := NewService(
		&fakeReviewRepo{},
		&fakeAppointmentRepo{err: appointmentRepo.ErrAppointmentNotFound},
		&fakeStaffRepo{},
		&fakeTxManager{},
		noopLogger{},
	)

	_, err := svc.Create(context.Background(), 7, &models.CreateReviewRequest{UserID: 42, Rating: 5})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
