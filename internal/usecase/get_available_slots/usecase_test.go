package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetActiveByStaffAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Appointment, error) {
	var active []*domain.Appointment
	for _, a := range f.appointments {
		if a.IsActive() {
			active = append(active, a)
		}
	}
	return active, nil
}

type fakeSalonRepo struct {
	salon *domain.Salon
	err   error
}

func (f *fakeSalonRepo) GetByID(_ context.Context, _ int64) (*domain.Salon, error) {
	return f.salon, f.err
}

type fakeStaffRepo struct {
	staff *domain.Staff
	err   error
}

func (f *fakeStaffRepo) GetByID(_ context.Context, _ int64) (*domain.Staff, error) {
	return f.staff, f.err
}

type fakeServiceRepo struct {
	service *domain.Service
	err     error
}

func (f *fakeServiceRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	return f.service, f.err
}

type fakeBreakRepo struct {
	breaks []*domain.Break
}

func (f *fakeBreakRepo) ListByStaff(_ context.Context, _ int64) ([]*domain.Break, error) {
	return f.breaks, nil
}

type fakeVacationRepo struct {
	vacations []*domain.Vacation
}

func (f *fakeVacationRepo) ListByStaff(_ context.Context, _ int64) ([]*domain.Vacation, error) {
	return f.vacations, nil
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var (
	// 13 октября 2025 - понедельник
	monday  = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	testNow = time.Date(2025, 10, 12, 12, 0, 0, 0, time.UTC)
)

type fixture struct {
	appointments *fakeAppointmentRepo
	salons       *fakeSalonRepo
	staff        *fakeStaffRepo
	services     *fakeServiceRepo
	breaks       *fakeBreakRepo
	vacations    *fakeVacationRepo
}

func newFixture() *fixture {
	open := "09:00"
	closeTime := "12:00"
	workday := domain.DaySchedule{IsOpen: true, OpenTime: &open, CloseTime: &closeTime}

	return &fixture{
		appointments: &fakeAppointmentRepo{},
		salons: &fakeSalonRepo{salon: &domain.Salon{
			ID:           1,
			WorkingHours: domain.WeekSchedule{Monday: workday},
		}},
		staff: &fakeStaffRepo{staff: &domain.Staff{
			ID:      10,
			SalonID: 1,
		}},
		services: &fakeServiceRepo{service: &domain.Service{
			ID:              20,
			SalonID:         1,
			DurationMinutes: 60,
			StaffIDs:        []int64{10},
		}},
		breaks:    &fakeBreakRepo{},
		vacations: &fakeVacationRepo{},
	}
}

func (f *fixture) useCase(now time.Time) *UseCase {
	uc := NewUseCase(
		f.appointments,
		f.salons,
		f.staff,
		f.services,
		f.breaks,
		f.vacations,
		noopLogger{},
	)
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

func request() *Request {
	return &Request{SalonID: 1, StaffID: 10, ServiceID: 20, Date: monday}
}

func slotStarts(slots []Slot) []types.TimeString {
	starts := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.StartTime)
	}
	return starts
}

func TestExecute_FullDayOpen(t *testing.T) {
	f := newFixture()
	uc := f.useCase(testNow)

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	// 09:00-12:00 с шагом 60 минут
	assert.Equal(t, []types.TimeString{"09:00", "10:00", "11:00"}, slotStarts(resp.Slots))
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].EndTime)
	assert.Equal(t, 60, resp.Slots[0].DurationMinutes)
}

func TestExecute_BreakRemovesSlot(t *testing.T) {
	f := newFixture()
	f.breaks.breaks = []*domain.Break{
		{Type: domain.BreakDaily, StartTime: "10:30", EndTime: "11:00"},
	}
	uc := f.useCase(testNow)

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	// Перерыв пересекает слоты 10:00 и касается начала 11:00 не пересекая его
	assert.Equal(t, []types.TimeString{"09:00", "11:00"}, slotStarts(resp.Slots))
}

func TestExecute_ActiveAppointmentRemovesSlot(t *testing.T) {
	f := newFixture()
	f.appointments.appointments = []*domain.Appointment{
		{ID: 1, Date: monday, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusPending},
	}
	uc := f.useCase(testNow)

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "11:00"}, slotStarts(resp.Slots))
}

func TestExecute_CancelledAppointmentKeepsSlot(t *testing.T) {
	f := newFixture()
	f.appointments.appointments = []*domain.Appointment{
		{ID: 1, Date: monday, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusCancelled},
	}
	uc := f.useCase(testNow)

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "10:00", "11:00"}, slotStarts(resp.Slots))
}

func TestExecute_VacationReturnsNoSlots(t *testing.T) {
	f := newFixture()
	f.vacations.vacations = []*domain.Vacation{
		{Type: domain.VacationRegular, StartDate: monday, EndDate: monday},
	}
	uc := f.useCase(testNow)

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastDateReturnsNoSlots(t *testing.T) {
	f := newFixture()
	uc := f.useCase(time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_TodayFiltersPastSlots(t *testing.T) {
	f := newFixture()
	// Сегодня понедельник, 09:30 - слот 09:00 уже недоступен
	uc := f.useCase(time.Date(2025, 10, 13, 9, 30, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:00", "11:00"}, slotStarts(resp.Slots))
}

func TestExecute_ClosedDayReturnsNoSlots(t *testing.T) {
	f := newFixture()
	uc := f.useCase(testNow)

	req := request()
	req.Date = monday.AddDate(0, 0, 1) // вторник не задан в расписании

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_StaffScheduleNarrowsSalonHours(t *testing.T) {
	f := newFixture()
	open := "10:00"
	closeTime := "12:00"
	f.staff.staff.WorkingHours = &domain.WeekSchedule{
		Monday: domain.DaySchedule{IsOpen: true, OpenTime: &open, CloseTime: &closeTime},
	}
	uc := f.useCase(testNow)

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:00", "11:00"}, slotStarts(resp.Slots))
}

func TestExecute_WiderStaffScheduleBoundedBySalonHours(t *testing.T) {
	f := newFixture()
	open := "08:00"
	closeTime := "13:00"
	f.staff.staff.WorkingHours = &domain.WeekSchedule{
		Monday: domain.DaySchedule{IsOpen: true, OpenTime: &open, CloseTime: &closeTime},
	}
	uc := f.useCase(testNow)

	// Салон работает 09:00-12:00 - слоты не выходят за его пределы
	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "10:00", "11:00"}, slotStarts(resp.Slots))
}

func TestExecute_ServiceChecks(t *testing.T) {
	t.Run("staff does not perform service", func(t *testing.T) {
		f := newFixture()
		f.services.service.StaffIDs = []int64{99}
		uc := f.useCase(testNow)

		_, err := uc.Execute(context.Background(), request())
		assert.ErrorIs(t, err, ErrServiceNotPerformed)
	})

	t.Run("staff from another salon", func(t *testing.T) {
		f := newFixture()
		f.staff.staff.SalonID = 2
		uc := f.useCase(testNow)

		_, err := uc.Execute(context.Background(), request())
		assert.ErrorIs(t, err, ErrStaffNotFound)
	})

	t.Run("invalid request", func(t *testing.T) {
		f := newFixture()
		uc := f.useCase(testNow)

		_, err := uc.Execute(context.Background(), &Request{SalonID: 0, StaffID: 10, ServiceID: 20, Date: monday})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
