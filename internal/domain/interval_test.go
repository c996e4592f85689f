package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

func TestNewTimeRange(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		r, err := NewTimeRange("10:00", 45)
		require.NoError(t, err)
		assert.Equal(t, types.TimeString("10:00"), r.Start)
		assert.Equal(t, types.TimeString("10:45"), r.End)
	})

	t.Run("zero duration", func(t *testing.T) {
		_, err := NewTimeRange("10:00", 0)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("invalid start", func(t *testing.T) {
		_, err := NewTimeRange("25:00", 30)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("overflows day", func(t *testing.T) {
		_, err := NewTimeRange("23:30", 45)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})
}

func TestTimeRange_Overlaps(t *testing.T) {
	mustRange := func(start types.TimeString, minutes int) TimeRange {
		r, err := NewTimeRange(start, minutes)
		require.NoError(t, err)
		return r
	}

	tests := []struct {
		name string
		a    TimeRange
		b    TimeRange
		want bool
	}{
		{
			name: "partial overlap",
			a:    mustRange("11:30", 30),
			b:    mustRange("11:20", 20),
			want: true,
		},
		{
			name: "contained",
			a:    mustRange("10:00", 120),
			b:    mustRange("10:30", 30),
			want: true,
		},
		{
			name: "identical",
			a:    mustRange("10:00", 30),
			b:    mustRange("10:00", 30),
			want: true,
		},
		{
			name: "adjacent before does not overlap",
			a:    mustRange("11:30", 30),
			b:    mustRange("11:00", 30),
			want: false,
		},
		{
			name: "adjacent after does not overlap",
			a:    mustRange("11:30", 30),
			b:    mustRange("12:00", 30),
			want: false,
		},
		{
			name: "disjoint",
			a:    mustRange("09:00", 30),
			b:    mustRange("15:00", 30),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Пересечение симметрично
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}
