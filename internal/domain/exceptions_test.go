package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestBreak_Validate(t *testing.T) {
	tests := []struct {
		name    string
		brk     Break
		wantErr bool
	}{
		{
			name: "valid daily",
			brk:  Break{StaffID: 1, Type: BreakDaily, StartTime: "12:00", EndTime: "13:00"},
		},
		{
			name: "valid weekly",
			brk:  Break{StaffID: 1, Type: BreakWeekly, StartTime: "12:00", EndTime: "13:00", Days: []int64{1, 3, 5}},
		},
		{
			name: "valid specific date",
			brk: Break{StaffID: 1, Type: BreakSpecificDate, StartTime: "12:00", EndTime: "13:00",
				Date: datePtr(2025, 10, 15)},
		},
		{
			name: "valid date range",
			brk: Break{StaffID: 1, Type: BreakDateRange, StartTime: "12:00", EndTime: "13:00",
				StartDate: datePtr(2025, 10, 15), EndDate: datePtr(2025, 10, 20)},
		},
		{
			name:    "start after end",
			brk:     Break{StaffID: 1, Type: BreakDaily, StartTime: "13:00", EndTime: "12:00"},
			wantErr: true,
		},
		{
			name:    "weekly without days",
			brk:     Break{StaffID: 1, Type: BreakWeekly, StartTime: "12:00", EndTime: "13:00"},
			wantErr: true,
		},
		{
			name:    "weekly with day out of range",
			brk:     Break{StaffID: 1, Type: BreakWeekly, StartTime: "12:00", EndTime: "13:00", Days: []int64{7}},
			wantErr: true,
		},
		{
			name:    "daily with stray date",
			brk:     Break{StaffID: 1, Type: BreakDaily, StartTime: "12:00", EndTime: "13:00", Date: datePtr(2025, 10, 15)},
			wantErr: true,
		},
		{
			name:    "specific date without date",
			brk:     Break{StaffID: 1, Type: BreakSpecificDate, StartTime: "12:00", EndTime: "13:00"},
			wantErr: true,
		},
		{
			name: "date range reversed",
			brk: Break{StaffID: 1, Type: BreakDateRange, StartTime: "12:00", EndTime: "13:00",
				StartDate: datePtr(2025, 10, 20), EndDate: datePtr(2025, 10, 15)},
			wantErr: true,
		},
		{
			name:    "unknown type",
			brk:     Break{StaffID: 1, Type: "lunch", StartTime: "12:00", EndTime: "13:00"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.brk.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBreak)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBreak_BlocksOn(t *testing.T) {
	// 15 октября 2025 - среда
	wednesday := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	thursday := time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)

	slotAtNoon, err := NewTimeRange("12:30", 30)
	require.NoError(t, err)
	slotInMorning, err := NewTimeRange("09:00", 30)
	require.NoError(t, err)
	slotAtOne, err := NewTimeRange("13:00", 30)
	require.NoError(t, err)

	t.Run("daily blocks overlapping slot any day", func(t *testing.T) {
		brk := Break{Type: BreakDaily, StartTime: "12:00", EndTime: "13:00"}
		assert.True(t, brk.BlocksOn(wednesday, slotAtNoon))
		assert.True(t, brk.BlocksOn(thursday, slotAtNoon))
		assert.False(t, brk.BlocksOn(wednesday, slotInMorning))
	})

	t.Run("slot starting at break end is free", func(t *testing.T) {
		brk := Break{Type: BreakDaily, StartTime: "12:00", EndTime: "13:00"}
		assert.False(t, brk.BlocksOn(wednesday, slotAtOne))
	})

	t.Run("weekly blocks only listed weekdays", func(t *testing.T) {
		brk := Break{Type: BreakWeekly, StartTime: "12:00", EndTime: "13:00", Days: []int64{3}} // среда
		assert.True(t, brk.BlocksOn(wednesday, slotAtNoon))
		assert.False(t, brk.BlocksOn(thursday, slotAtNoon))
	})

	t.Run("specific date blocks only that date", func(t *testing.T) {
		brk := Break{Type: BreakSpecificDate, StartTime: "12:00", EndTime: "13:00", Date: &wednesday}
		assert.True(t, brk.BlocksOn(wednesday, slotAtNoon))
		assert.False(t, brk.BlocksOn(thursday, slotAtNoon))
	})

	t.Run("date range blocks inclusive bounds", func(t *testing.T) {
		brk := Break{Type: BreakDateRange, StartTime: "12:00", EndTime: "13:00",
			StartDate: datePtr(2025, 10, 15), EndDate: datePtr(2025, 10, 16)}
		assert.True(t, brk.BlocksOn(wednesday, slotAtNoon))
		assert.True(t, brk.BlocksOn(thursday, slotAtNoon))
		assert.False(t, brk.BlocksOn(time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC), slotAtNoon))
	})
}

func TestVacation_Validate(t *testing.T) {
	valid := Vacation{
		StaffID:   1,
		Type:      VacationRegular,
		StartDate: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, valid.Validate())

	reversed := valid
	reversed.StartDate, reversed.EndDate = reversed.EndDate, reversed.StartDate
	assert.ErrorIs(t, reversed.Validate(), ErrInvalidVacation)

	unknownType := valid
	unknownType.Type = "holiday"
	assert.ErrorIs(t, unknownType.Validate(), ErrInvalidVacation)

	missingDates := Vacation{StaffID: 1, Type: VacationRegular}
	assert.ErrorIs(t, missingDates.Validate(), ErrInvalidVacation)
}

func TestVacation_Covers(t *testing.T) {
	v := Vacation{
		StartDate: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, v.Covers(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, v.Covers(time.Date(2025, 10, 17, 23, 30, 0, 0, time.UTC)))
	assert.True(t, v.Covers(time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)))
	assert.False(t, v.Covers(time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)))
	assert.False(t, v.Covers(time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC)))
}
