package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	breakRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/breaks"
	staffRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/staff"
	vacationRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/vacations"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/schedule/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
)

const (
	staffUser = int64(600)
	ownerUser = int64(500)
	stranger  = int64(999)
)

type fakeBreakRepo struct {
	breaks  map[int64]*domain.Break
	created *domain.Break
	updated *domain.Break
	deleted int64
}

func newFakeBreakRepo() *fakeBreakRepo {
	return &fakeBreakRepo{breaks: make(map[int64]*domain.Break)}
}

func (f *fakeBreakRepo) Create(_ context.Context, brk *domain.Break) (*domain.Break, error) {
	created := *brk
	created.ID = 1
	created.CreatedAt = time.Now()
	f.created = &created
	f.breaks[created.ID] = &created
	return &created, nil
}

func (f *fakeBreakRepo) GetByID(_ context.Context, id int64) (*domain.Break, error) {
	brk, ok := f.breaks[id]
	if !ok {
		return nil, breakRepo.ErrBreakNotFound
	}
	return brk, nil
}

func (f *fakeBreakRepo) ListByStaff(_ context.Context, staffID int64) ([]*domain.Break, error) {
	var result []*domain.Break
	for _, brk := range f.breaks {
		if brk.StaffID == staffID {
			result = append(result, brk)
		}
	}
	return result, nil
}

func (f *fakeBreakRepo) Update(_ context.Context, brk *domain.Break) error {
	if _, ok := f.breaks[brk.ID]; !ok {
		return breakRepo.ErrBreakNotFound
	}
	f.updated = brk
	f.breaks[brk.ID] = brk
	return nil
}

func (f *fakeBreakRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.breaks[id]; !ok {
		return breakRepo.ErrBreakNotFound
	}
	f.deleted = id
	delete(f.breaks, id)
	return nil
}

type fakeVacationRepo struct {
	vacations map[int64]*domain.Vacation
}

func newFakeVacationRepo() *fakeVacationRepo {
	return &fakeVacationRepo{vacations: make(map[int64]*domain.Vacation)}
}

func (f *fakeVacationRepo) Create(_ context.Context, v *domain.Vacation) (*domain.Vacation, error) {
	created := *v
	created.ID = 1
	f.vacations[created.ID] = &created
	return &created, nil
}

func (f *fakeVacationRepo) GetByID(_ context.Context, id int64) (*domain.Vacation, error) {
	vacation, ok := f.vacations[id]
	if !ok {
		return nil, vacationRepo.ErrVacationNotFound
	}
	return vacation, nil
}

func (f *fakeVacationRepo) ListByStaff(_ context.Context, staffID int64) ([]*domain.Vacation, error) {
	var result []*domain.Vacation
	for _, v := range f.vacations {
		if v.StaffID == staffID {
			result = append(result, v)
		}
	}
	return result, nil
}

func (f *fakeVacationRepo) Update(_ context.Context, v *domain.Vacation) error {
	f.vacations[v.ID] = v
	return nil
}

func (f *fakeVacationRepo) Delete(_ context.Context, id int64) error {
	delete(f.vacations, id)
	return nil
}

type fakeStaffRepo struct {
	staff *domain.Staff
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id int64) (*domain.Staff, error) {
	if f.staff == nil || f.staff.ID != id {
		return nil, staffRepo.ErrStaffNotFound
	}
	return f.staff, nil
}

type fakeSalonRepo struct {
	salon *domain.Salon
}

func (f *fakeSalonRepo) GetByID(_ context.Context, _ int64) (*domain.Salon, error) {
	return f.salon, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newService() (*Service, *fakeBreakRepo, *fakeVacationRepo) {
	breaks := newFakeBreakRepo()
	vacations := newFakeVacationRepo()
	svc := NewService(
		breaks,
		vacations,
		&fakeStaffRepo{staff: &domain.Staff{ID: 10, SalonID: 1, UserID: staffUser}},
		&fakeSalonRepo{salon: &domain.Salon{ID: 1, OwnerUserID: ownerUser}},
		noopLogger{},
	)
	return svc, breaks, vacations
}

func dailyBreakPayload() *models.BreakPayload {
	return &models.BreakPayload{
		Title:     "Обед",
		Type:      "daily",
		StartTime: "12:00",
		EndTime:   "13:00",
	}
}

func TestCreateBreak_Access(t *testing.T) {
	t.Run("staff member creates own break", func(t *testing.T) {
		svc, breaks, _ := newService()
		resp, err := svc.CreateBreak(context.Background(), 10, staffUser, dailyBreakPayload())
		require.NoError(t, err)
		assert.Equal(t, int64(10), resp.StaffID)
		assert.Equal(t, "daily", resp.Type)
		require.NotNil(t, breaks.created)
	})

	t.Run("salon owner creates break", func(t *testing.T) {
		svc, _, _ := newService()
		_, err := svc.CreateBreak(context.Background(), 10, ownerUser, dailyBreakPayload())
		assert.NoError(t, err)
	})

	t.Run("stranger denied", func(t *testing.T) {
		svc, _, _ := newService()
		_, err := svc.CreateBreak(context.Background(), 10, stranger, dailyBreakPayload())
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown staff", func(t *testing.T) {
		svc, _, _ := newService()
		_, err := svc.CreateBreak(context.Background(), 99, staffUser, dailyBreakPayload())
		assert.ErrorIs(t, err, ErrStaffNotFound)
	})
}

func TestCreateBreak_Validation(t *testing.T) {
	svc, _, _ := newService()

	t.Run("weekly requires days", func(t *testing.T) {
		payload := &models.BreakPayload{Title: "Планёрка", Type: "weekly", StartTime: "09:00", EndTime: "09:30"}
		_, err := svc.CreateBreak(context.Background(), 10, staffUser, payload)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("malformed time", func(t *testing.T) {
		payload := &models.BreakPayload{Title: "Обед", Type: "daily", StartTime: "noon", EndTime: "13:00"}
		_, err := svc.CreateBreak(context.Background(), 10, staffUser, payload)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("specific date break", func(t *testing.T) {
		payload := &models.BreakPayload{
			Title:     "Учёба",
			Type:      "specific_date",
			StartTime: "10:00",
			EndTime:   "12:00",
			Date:      ptr.Ptr("2025-10-15"),
		}
		resp, err := svc.CreateBreak(context.Background(), 10, staffUser, payload)
		require.NoError(t, err)
		require.NotNil(t, resp.Date)
		assert.Equal(t, "2025-10-15", *resp.Date)
	})
}

func TestUpdateBreak_OwnershipCheck(t *testing.T) {
	svc, breaks, _ := newService()

	// Перерыв другого мастера недоступен через staffID=10
	breaks.breaks[5] = &domain.Break{ID: 5, StaffID: 77, Type: domain.BreakDaily, StartTime: "12:00", EndTime: "13:00"}

	_, err := svc.UpdateBreak(context.Background(), 10, 5, staffUser, dailyBreakPayload())
	assert.ErrorIs(t, err, ErrBreakNotFound)
}

func TestUpdateBreak_PreservesIdentity(t *testing.T) {
	svc, breaks, _ := newService()
	created, err := svc.CreateBreak(context.Background(), 10, staffUser, dailyBreakPayload())
	require.NoError(t, err)

	updatedPayload := dailyBreakPayload()
	updatedPayload.StartTime = "13:00"
	updatedPayload.EndTime = "14:00"

	resp, err := svc.UpdateBreak(context.Background(), 10, created.ID, staffUser, updatedPayload)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)
	assert.Equal(t, "13:00", resp.StartTime)
	require.NotNil(t, breaks.updated)
}

func TestDeleteBreak(t *testing.T) {
	svc, breaks, _ := newService()
	created, err := svc.CreateBreak(context.Background(), 10, staffUser, dailyBreakPayload())
	require.NoError(t, err)

	t.Run("stranger denied", func(t *testing.T) {
		err := svc.DeleteBreak(context.Background(), 10, created.ID, stranger)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("owner deletes", func(t *testing.T) {
		err := svc.DeleteBreak(context.Background(), 10, created.ID, ownerUser)
		require.NoError(t, err)
		assert.Equal(t, created.ID, breaks.deleted)
	})

	t.Run("already deleted", func(t *testing.T) {
		err := svc.DeleteBreak(context.Background(), 10, created.ID, staffUser)
		assert.ErrorIs(t, err, ErrBreakNotFound)
	})
}

func TestCreateVacation(t *testing.T) {
	payload := &models.VacationPayload{
		Title:     "Отпуск",
		Type:      "vacation",
		StartDate: "2025-11-01",
		EndDate:   "2025-11-14",
		Notes:     ptr.Ptr("ежегодный"),
	}

	t.Run("staff member creates", func(t *testing.T) {
		svc, _, _ := newService()
		resp, err := svc.CreateVacation(context.Background(), 10, staffUser, payload)
		require.NoError(t, err)
		assert.Equal(t, "2025-11-01", resp.StartDate)
		assert.Equal(t, "2025-11-14", resp.EndDate)
	})

	t.Run("reversed dates rejected", func(t *testing.T) {
		svc, _, _ := newService()
		bad := *payload
		bad.StartDate, bad.EndDate = bad.EndDate, bad.StartDate
		_, err := svc.CreateVacation(context.Background(), 10, staffUser, &bad)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("malformed date rejected", func(t *testing.T) {
		svc, _, _ := newService()
		bad := *payload
		bad.StartDate = "01.11.2025"
		_, err := svc.CreateVacation(context.Background(), 10, staffUser, &bad)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("stranger denied", func(t *testing.T) {
		svc, _, _ := newService()
		_, err := svc.CreateVacation(context.Background(), 10, stranger, payload)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestListVacations(t *testing.T) {
	svc, _, vacations := newService()
	vacations.vacations[1] = &domain.Vacation{ID: 1, StaffID: 10, Type: domain.VacationRegular,
		StartDate: time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 11, 14, 0, 0, 0, 0, time.UTC)}
	vacations.vacations[2] = &domain.Vacation{ID: 2, StaffID: 77, Type: domain.VacationRegular,
		StartDate: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC)}

	resp, err := svc.ListVacations(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, resp.Vacations, 1)
	assert.Equal(t, int64(1), resp.Vacations[0].ID)
}
