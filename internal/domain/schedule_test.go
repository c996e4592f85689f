package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

func strPtr(s string) *string {
	return &s
}

func TestDaySchedule_Contains(t *testing.T) {
	open := DaySchedule{IsOpen: true, OpenTime: strPtr("09:00"), CloseTime: strPtr("18:00")}

	tests := []struct {
		name  string
		start string
		mins  int
		want  bool
	}{
		{name: "inside hours", start: "10:00", mins: 45, want: true},
		{name: "exactly at open", start: "09:00", mins: 60, want: true},
		{name: "ends exactly at close", start: "17:00", mins: 60, want: true},
		{name: "starts before open", start: "08:30", mins: 60, want: false},
		{name: "ends after close", start: "17:30", mins: 60, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewTimeRange(types.TimeString(tt.start), tt.mins)
			require.NoError(t, err)

			got, err := open.Contains(r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("closed day", func(t *testing.T) {
		closed := DaySchedule{IsOpen: false}
		r, err := NewTimeRange("10:00", 30)
		require.NoError(t, err)

		got, err := closed.Contains(r)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("open without times", func(t *testing.T) {
		broken := DaySchedule{IsOpen: true}
		r, err := NewTimeRange("10:00", 30)
		require.NoError(t, err)

		got, err := broken.Contains(r)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("malformed open time", func(t *testing.T) {
		broken := DaySchedule{IsOpen: true, OpenTime: strPtr("late"), CloseTime: strPtr("18:00")}
		r, err := NewTimeRange("10:00", 30)
		require.NoError(t, err)

		_, err = broken.Contains(r)
		assert.Error(t, err)
	})
}

func TestDaySchedule_Intersect(t *testing.T) {
	day := func(open, close string) DaySchedule {
		return DaySchedule{IsOpen: true, OpenTime: strPtr(open), CloseTime: strPtr(close)}
	}

	tests := []struct {
		name      string
		a, b      DaySchedule
		wantOpen  bool
		wantStart string
		wantEnd   string
	}{
		{name: "inner narrows outer", a: day("09:00", "18:00"), b: day("12:00", "16:00"), wantOpen: true, wantStart: "12:00", wantEnd: "16:00"},
		{name: "wider window clipped", a: day("09:00", "18:00"), b: day("08:00", "20:00"), wantOpen: true, wantStart: "09:00", wantEnd: "18:00"},
		{name: "partial overlap", a: day("09:00", "14:00"), b: day("12:00", "20:00"), wantOpen: true, wantStart: "12:00", wantEnd: "14:00"},
		{name: "disjoint windows", a: day("09:00", "12:00"), b: day("14:00", "18:00"), wantOpen: false},
		{name: "touching windows", a: day("09:00", "12:00"), b: day("12:00", "18:00"), wantOpen: false},
		{name: "one side closed", a: day("09:00", "18:00"), b: DaySchedule{IsOpen: false}, wantOpen: false},
		{name: "open without times", a: day("09:00", "18:00"), b: DaySchedule{IsOpen: true}, wantOpen: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Intersect(tt.b)
			require.NoError(t, err)

			assert.Equal(t, tt.wantOpen, got.IsOpen)
			if tt.wantOpen {
				require.NotNil(t, got.OpenTime)
				require.NotNil(t, got.CloseTime)
				assert.Equal(t, tt.wantStart, *got.OpenTime)
				assert.Equal(t, tt.wantEnd, *got.CloseTime)
			}
		})
	}

	t.Run("malformed time", func(t *testing.T) {
		broken := DaySchedule{IsOpen: true, OpenTime: strPtr("noon"), CloseTime: strPtr("18:00")}
		_, err := day("09:00", "18:00").Intersect(broken)
		assert.Error(t, err)
	})
}

func TestStaff_EffectiveSchedule(t *testing.T) {
	salon := &Salon{
		WorkingHours: WeekSchedule{
			Monday: DaySchedule{IsOpen: true, OpenTime: strPtr("09:00"), CloseTime: strPtr("18:00")},
		},
	}

	t.Run("no personal schedule falls back to salon", func(t *testing.T) {
		staff := &Staff{}
		got, err := staff.EffectiveSchedule(salon, time.Monday)
		require.NoError(t, err)
		require.True(t, got.IsOpen)
		assert.Equal(t, "09:00", *got.OpenTime)
		assert.Equal(t, "18:00", *got.CloseTime)
	})

	t.Run("personal schedule narrows salon hours", func(t *testing.T) {
		staff := &Staff{WorkingHours: &WeekSchedule{
			Monday: DaySchedule{IsOpen: true, OpenTime: strPtr("12:00"), CloseTime: strPtr("16:00")},
		}}
		got, err := staff.EffectiveSchedule(salon, time.Monday)
		require.NoError(t, err)
		require.True(t, got.IsOpen)
		assert.Equal(t, "12:00", *got.OpenTime)
		assert.Equal(t, "16:00", *got.CloseTime)
	})

	t.Run("personal schedule cannot extend salon hours", func(t *testing.T) {
		staff := &Staff{WorkingHours: &WeekSchedule{
			Monday: DaySchedule{IsOpen: true, OpenTime: strPtr("08:00"), CloseTime: strPtr("20:00")},
		}}
		got, err := staff.EffectiveSchedule(salon, time.Monday)
		require.NoError(t, err)
		require.True(t, got.IsOpen)
		assert.Equal(t, "09:00", *got.OpenTime)
		assert.Equal(t, "18:00", *got.CloseTime)
	})

	t.Run("salon closed means staff closed", func(t *testing.T) {
		staff := &Staff{WorkingHours: &WeekSchedule{
			Sunday: DaySchedule{IsOpen: true, OpenTime: strPtr("10:00"), CloseTime: strPtr("14:00")},
		}}
		got, err := staff.EffectiveSchedule(salon, time.Sunday)
		require.NoError(t, err)
		assert.False(t, got.IsOpen)
	})
}

func TestWeekSchedule_ScheduleFor(t *testing.T) {
	week := WeekSchedule{
		Monday: DaySchedule{IsOpen: true, OpenTime: strPtr("09:00"), CloseTime: strPtr("18:00")},
		Sunday: DaySchedule{IsOpen: false},
	}

	monday := week.ScheduleFor(time.Monday)
	assert.True(t, monday.IsOpen)
	require.NotNil(t, monday.OpenTime)
	assert.Equal(t, "09:00", *monday.OpenTime)

	assert.False(t, week.ScheduleFor(time.Sunday).IsOpen)
	assert.False(t, week.ScheduleFor(time.Tuesday).IsOpen)
}
