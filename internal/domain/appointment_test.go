package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

func TestAppointment_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusInProgress, false},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, false},
		{StatusConfirmed, StatusPending, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+" to "+string(tt.to), func(t *testing.T) {
			a := Appointment{Status: tt.from}
			assert.Equal(t, tt.want, a.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointment_IsActive(t *testing.T) {
	for _, status := range []AppointmentStatus{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted} {
		a := Appointment{Status: status}
		assert.True(t, a.IsActive(), "status %s must occupy its slot", status)
	}

	cancelled := Appointment{Status: StatusCancelled}
	assert.False(t, cancelled.IsActive())
}

func TestAppointment_CanBeCancelled(t *testing.T) {
	for _, status := range []AppointmentStatus{StatusPending, StatusConfirmed, StatusInProgress} {
		a := Appointment{Status: status}
		assert.True(t, a.CanBeCancelled(), "status %s", status)
	}
	for _, status := range []AppointmentStatus{StatusCompleted, StatusCancelled} {
		a := Appointment{Status: status}
		assert.False(t, a.CanBeCancelled(), "status %s", status)
	}
}

func TestAppointment_EndTimeAndRange(t *testing.T) {
	a := Appointment{StartTime: "10:00", DurationMinutes: 45}

	end, err := a.EndTime()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:45"), end)

	r, err := a.TimeRange()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), r.Start)
	assert.Equal(t, types.TimeString("10:45"), r.End)
}

func TestAppointment_StartsAt(t *testing.T) {
	a := Appointment{
		Date:            time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       "14:30",
		DurationMinutes: 30,
	}

	startsAt, err := a.StartsAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 15, 14, 30, 0, 0, time.UTC), startsAt)
}

func TestInitialStatus(t *testing.T) {
	tests := []struct {
		name   string
		staff  bool
		salon  bool
		policy AutoConfirmPolicy
		want   AppointmentStatus
	}{
		{name: "any: staff flag enough", staff: true, salon: false, policy: PolicyAny, want: StatusConfirmed},
		{name: "any: salon flag enough", staff: false, salon: true, policy: PolicyAny, want: StatusConfirmed},
		{name: "any: neither", staff: false, salon: false, policy: PolicyAny, want: StatusPending},
		{name: "staff: salon flag ignored", staff: false, salon: true, policy: PolicyStaff, want: StatusPending},
		{name: "staff: staff flag decides", staff: true, salon: false, policy: PolicyStaff, want: StatusConfirmed},
		{name: "all: both required", staff: true, salon: false, policy: PolicyAll, want: StatusPending},
		{name: "all: both set", staff: true, salon: true, policy: PolicyAll, want: StatusConfirmed},
		{name: "unknown policy falls back to any", staff: true, salon: false, policy: "", want: StatusConfirmed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InitialStatus(tt.staff, tt.salon, tt.policy))
		})
	}
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(StatusPending))
	assert.True(t, IsValidStatus(StatusCancelled))
	assert.False(t, IsValidStatus("paused"))
	assert.False(t, IsValidStatus(""))
}
