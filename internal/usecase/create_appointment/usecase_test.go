package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Фейки репозиториев

type fakeAppointmentRepo struct {
	active    []*domain.Appointment
	createErr error
	created   *domain.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *a
	created.ID = 100
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeAppointmentRepo) GetActiveByStaffAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Appointment, error) {
	// Отменённые записи слот не занимают
	var active []*domain.Appointment
	for _, a := range f.active {
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

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

// Общая фикстура: салон работает в понедельник 09:00-18:00,
// мастер без индивидуального графика выполняет услугу на 45 минут

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
	closeTime := "18:00"
	workday := domain.DaySchedule{IsOpen: true, OpenTime: &open, CloseTime: &closeTime}

	return &fixture{
		appointments: &fakeAppointmentRepo{},
		salons: &fakeSalonRepo{salon: &domain.Salon{
			ID:           1,
			OwnerUserID:  500,
			WorkingHours: domain.WeekSchedule{Monday: workday},
		}},
		staff: &fakeStaffRepo{staff: &domain.Staff{
			ID:      10,
			SalonID: 1,
			UserID:  600,
		}},
		services: &fakeServiceRepo{service: &domain.Service{
			ID:              20,
			SalonID:         1,
			DurationMinutes: 45,
			Price:           1500,
			StaffIDs:        []int64{10},
		}},
		breaks:    &fakeBreakRepo{},
		vacations: &fakeVacationRepo{},
	}
}

func (f *fixture) useCase(policy domain.AutoConfirmPolicy) *UseCase {
	uc := NewUseCase(
		f.appointments,
		f.salons,
		f.staff,
		f.services,
		f.breaks,
		f.vacations,
		&fakeTxManager{},
		policy,
		noopLogger{},
	)
	uc.timeProvider = &fakeTimeProvider{now: testNow}
	return uc
}

func clientRequest(start types.TimeString) *Request {
	clientID := int64(42)
	return &Request{
		SalonID:      1,
		StaffID:      10,
		ServiceID:    20,
		ClientUserID: &clientID,
		Date:         monday,
		StartTime:    start,
	}
}

func TestExecute_CreatesAppointmentInsideWorkingHours(t *testing.T) {
	f := newFixture()
	uc := f.useCase(domain.PolicyAny)

	resp, err := uc.Execute(context.Background(), clientRequest("10:00"))
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("10:45"), resp.EndTime)
	assert.Equal(t, 45, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, float64(1500), resp.TotalPrice)
	assert.NotEmpty(t, resp.Code)
}

func TestExecute_AppliesDiscountPrice(t *testing.T) {
	f := newFixture()
	discount := float64(1200)
	f.services.service.DiscountPrice = &discount
	uc := f.useCase(domain.PolicyAny)

	resp, err := uc.Execute(context.Background(), clientRequest("10:00"))
	require.NoError(t, err)
	assert.Equal(t, discount, resp.TotalPrice)
}

func TestExecute_AutoConfirm(t *testing.T) {
	tests := []struct {
		name   string
		staff  bool
		salon  bool
		policy domain.AutoConfirmPolicy
		want   domain.AppointmentStatus
	}{
		{name: "any policy confirms by salon flag", staff: false, salon: true, policy: domain.PolicyAny, want: domain.StatusConfirmed},
		{name: "staff policy ignores salon flag", staff: false, salon: true, policy: domain.PolicyStaff, want: domain.StatusPending},
		{name: "all policy requires both", staff: true, salon: false, policy: domain.PolicyAll, want: domain.StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.staff.staff.AutoConfirm = tt.staff
			f.salons.salon.AutoConfirm = tt.salon
			uc := f.useCase(tt.policy)

			resp, err := uc.Execute(context.Background(), clientRequest("10:00"))
			require.NoError(t, err)
			assert.Equal(t, string(tt.want), resp.Status)
		})
	}
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	f := newFixture()
	uc := f.useCase(domain.PolicyAny)

	t.Run("before opening", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), clientRequest("08:30"))
		assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	})

	t.Run("slot tail after closing", func(t *testing.T) {
		// 17:30 + 45 минут = 18:15, конец за пределами рабочих часов
		_, err := uc.Execute(context.Background(), clientRequest("17:30"))
		assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	})

	t.Run("closed day", func(t *testing.T) {
		req := clientRequest("10:00")
		req.Date = monday.AddDate(0, 0, 1) // вторник не задан в расписании
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	})
}

func TestExecute_StaffScheduleNarrowsSalonHours(t *testing.T) {
	f := newFixture()
	open := "12:00"
	closeTime := "16:00"
	f.staff.staff.WorkingHours = &domain.WeekSchedule{
		Monday: domain.DaySchedule{IsOpen: true, OpenTime: &open, CloseTime: &closeTime},
	}
	uc := f.useCase(domain.PolicyAny)

	// 10:00 входит в часы салона, но не мастера
	_, err := uc.Execute(context.Background(), clientRequest("10:00"))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	_, err = uc.Execute(context.Background(), clientRequest("13:00"))
	assert.NoError(t, err)
}

func TestExecute_WiderStaffScheduleDoesNotExtendSalonHours(t *testing.T) {
	f := newFixture()
	open := "08:00"
	closeTime := "20:00"
	f.staff.staff.WorkingHours = &domain.WeekSchedule{
		Monday: domain.DaySchedule{IsOpen: true, OpenTime: &open, CloseTime: &closeTime},
	}
	uc := f.useCase(domain.PolicyAny)

	// Личный график мастера шире, но салон открывается только в 09:00
	_, err := uc.Execute(context.Background(), clientRequest("08:15"))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	// 18:30 после закрытия салона, хотя мастер работает до 20:00
	_, err = uc.Execute(context.Background(), clientRequest("18:30"))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	_, err = uc.Execute(context.Background(), clientRequest("09:00"))
	assert.NoError(t, err)
}

func TestExecute_DailyBreakBlocksSlot(t *testing.T) {
	f := newFixture()
	f.breaks.breaks = []*domain.Break{
		{ID: 1, StaffID: 10, Type: domain.BreakDaily, StartTime: "12:00", EndTime: "13:00"},
	}
	uc := f.useCase(domain.PolicyAny)

	// 12:30 пересекается с перерывом
	_, err := uc.Execute(context.Background(), clientRequest("12:30"))
	assert.ErrorIs(t, err, ErrStaffUnavailable)

	// 13:00 начинается ровно в конце перерыва - свободно
	_, err = uc.Execute(context.Background(), clientRequest("13:00"))
	assert.NoError(t, err)
}

func TestExecute_VacationBlocksWholeDay(t *testing.T) {
	f := newFixture()
	f.vacations.vacations = []*domain.Vacation{
		{ID: 1, StaffID: 10, Type: domain.VacationRegular, StartDate: monday, EndDate: monday.AddDate(0, 0, 4)},
	}
	uc := f.useCase(domain.PolicyAny)

	_, err := uc.Execute(context.Background(), clientRequest("10:00"))
	assert.ErrorIs(t, err, ErrStaffUnavailable)
}

func TestExecute_OverlappingAppointment(t *testing.T) {
	f := newFixture()
	f.appointments.active = []*domain.Appointment{
		{ID: 1, StaffID: 10, Date: monday, StartTime: "10:00", DurationMinutes: 45, Status: domain.StatusConfirmed},
	}
	uc := f.useCase(domain.PolicyAny)

	t.Run("overlap rejected", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), clientRequest("10:30"))
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("adjacent slot is free", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), clientRequest("10:45"))
		assert.NoError(t, err)
	})
}

func TestExecute_CancelledAppointmentFreesSlot(t *testing.T) {
	f := newFixture()
	f.appointments.active = []*domain.Appointment{
		{ID: 1, StaffID: 10, Date: monday, StartTime: "10:00", DurationMinutes: 45, Status: domain.StatusCancelled},
	}
	uc := f.useCase(domain.PolicyAny)

	_, err := uc.Execute(context.Background(), clientRequest("10:00"))
	assert.NoError(t, err)
}

func TestExecute_DatabaseConstraintConflict(t *testing.T) {
	f := newFixture()
	f.appointments.createErr = appointmentRepo.ErrSlotTaken
	uc := f.useCase(domain.PolicyAny)

	_, err := uc.Execute(context.Background(), clientRequest("10:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_DateValidation(t *testing.T) {
	f := newFixture()
	uc := f.useCase(domain.PolicyAny)

	t.Run("past date", func(t *testing.T) {
		req := clientRequest("10:00")
		req.Date = testNow.AddDate(0, 0, -7)
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("today with past start time", func(t *testing.T) {
		uc.timeProvider = &fakeTimeProvider{now: time.Date(2025, 10, 13, 11, 0, 0, 0, time.UTC)}
		req := clientRequest("10:00")
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestExecute_GuestBooking(t *testing.T) {
	f := newFixture()
	uc := f.useCase(domain.PolicyAny)

	name := "Анна"
	phone := "+79001234567"

	t.Run("guest with name and phone", func(t *testing.T) {
		req := &Request{
			SalonID:    1,
			StaffID:    10,
			ServiceID:  20,
			GuestName:  &name,
			GuestPhone: &phone,
			Date:       monday,
			StartTime:  "10:00",
		}
		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Nil(t, resp.ClientUserID)
		require.NotNil(t, resp.GuestName)
		assert.Equal(t, name, *resp.GuestName)
	})

	t.Run("neither client nor guest", func(t *testing.T) {
		req := &Request{
			SalonID:   1,
			StaffID:   10,
			ServiceID: 20,
			Date:      monday,
			StartTime: "10:00",
		}
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("guest without phone", func(t *testing.T) {
		req := &Request{
			SalonID:   1,
			StaffID:   10,
			ServiceID: 20,
			GuestName: &name,
			Date:      monday,
			StartTime: "10:00",
		}
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecute_ReferenceChecks(t *testing.T) {
	t.Run("staff from another salon", func(t *testing.T) {
		f := newFixture()
		f.staff.staff.SalonID = 2
		uc := f.useCase(domain.PolicyAny)

		_, err := uc.Execute(context.Background(), clientRequest("10:00"))
		assert.ErrorIs(t, err, ErrStaffNotFound)
	})

	t.Run("service from another salon", func(t *testing.T) {
		f := newFixture()
		f.services.service.SalonID = 2
		uc := f.useCase(domain.PolicyAny)

		_, err := uc.Execute(context.Background(), clientRequest("10:00"))
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("staff does not perform service", func(t *testing.T) {
		f := newFixture()
		f.services.service.StaffIDs = []int64{99}
		uc := f.useCase(domain.PolicyAny)

		_, err := uc.Execute(context.Background(), clientRequest("10:00"))
		assert.ErrorIs(t, err, ErrServiceNotPerformed)
	})
}
