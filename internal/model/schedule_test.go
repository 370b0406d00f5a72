package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input    string
		expected *TimeOfDay
	}{
		{"09:00", &TimeOfDay{Hour: 9, Minute: 0}},
		{"09:30:15", &TimeOfDay{Hour: 9, Minute: 30}}, // seconds dropped
		{"23:59", &TimeOfDay{Hour: 23, Minute: 59}},
		{"", nil},
		{"9", nil},
		{"24:00", nil},
		{"12:60", nil},
		{"ab:cd", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTimeOfDay(tt.input))
		})
	}
}

func TestTimeOfDay_String(t *testing.T) {
	assert.Equal(t, "09:05", TimeOfDay{Hour: 9, Minute: 5}.String())
	assert.Equal(t, "18:30", TimeOfDay{Hour: 18, Minute: 30}.String())
}

func TestTimeOfDay_Valid(t *testing.T) {
	var nilTime *TimeOfDay
	assert.False(t, nilTime.Valid())
	assert.True(t, (&TimeOfDay{Hour: 0, Minute: 0}).Valid())
	assert.True(t, (&TimeOfDay{Hour: 23, Minute: 59}).Valid())
	assert.False(t, (&TimeOfDay{Hour: 24, Minute: 0}).Valid())
	assert.False(t, (&TimeOfDay{Hour: 12, Minute: 60}).Valid())
	assert.False(t, (&TimeOfDay{Hour: -1, Minute: 0}).Valid())
}

func TestScheduleEntry_HasCompleteTimes(t *testing.T) {
	complete := ScheduleEntry{
		OpenTime:  &TimeOfDay{Hour: 9},
		CloseTime: &TimeOfDay{Hour: 18},
	}
	assert.True(t, complete.HasCompleteTimes())

	missingClose := ScheduleEntry{OpenTime: &TimeOfDay{Hour: 9}}
	assert.False(t, missingClose.HasCompleteTimes())

	invalidOpen := ScheduleEntry{
		OpenTime:  &TimeOfDay{Hour: 25},
		CloseTime: &TimeOfDay{Hour: 18},
	}
	assert.False(t, invalidOpen.HasCompleteTimes())
}

func TestWeekdayName(t *testing.T) {
	assert.Equal(t, "sunday", WeekdayName(time.Sunday))
	assert.Equal(t, "monday", WeekdayName(time.Monday))
	assert.Equal(t, "saturday", WeekdayName(time.Saturday))
}
