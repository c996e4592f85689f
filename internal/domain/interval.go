package domain

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// ErrInvalidTimeRange возвращается при некорректном временном интервале
var ErrInvalidTimeRange = errors.New("domain: invalid time range")

// TimeRange полуоткрытый временной интервал [Start, End)
// Единственный примитив, поверх которого строятся все проверки пересечений:
// рабочие часы, перерывы, отпуска и существующие записи
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// NewTimeRange создает интервал [start, start+durationMinutes)
func NewTimeRange(start types.TimeString, durationMinutes int) (TimeRange, error) {
	if err := start.Validate(); err != nil {
		return TimeRange{}, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}
	if durationMinutes <= 0 {
		return TimeRange{}, fmt.Errorf("%w: duration must be positive", ErrInvalidTimeRange)
	}

	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}

	return TimeRange{Start: start, End: end}, nil
}

// Overlaps возвращает true, если интервалы действительно пересекаются
// Интервалы полуоткрытые: если один заканчивается ровно там, где начинается
// другой - пересечения НЕТ
//
// Примеры:
// - [11:30, 12:00) и [11:20, 11:40) → пересекаются (11:30-11:40)
// - [11:30, 12:00) и [11:00, 11:30) → НЕ пересекаются (граничат)
// - [11:30, 12:00) и [12:00, 12:30) → НЕ пересекаются (граничат)
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.IsBefore(other.End) && r.End.IsAfter(other.Start)
}
