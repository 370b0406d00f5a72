package schedule

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/zolkinka/pro-sto-service-admin-sub002/internal/model"
)

// 2026-03-02 is a Monday.
var (
	monday  = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	tuesday = monday.AddDate(0, 0, 1)
)

func tod(hour, minute int) *model.TimeOfDay {
	return &model.TimeOfDay{Hour: hour, Minute: minute}
}

func regularDay(day string, open, close *model.TimeOfDay, closed bool) model.ScheduleEntry {
	return model.ScheduleEntry{
		UUID:      "regular-" + day,
		DayOfWeek: day,
		OpenTime:  open,
		CloseTime: close,
		IsClosed:  closed,
	}
}

func specialDay(date time.Time, open, close *model.TimeOfDay, closed bool) model.ScheduleEntry {
	return model.ScheduleEntry{
		UUID:         "special-" + date.Format(model.DateLayout),
		SpecificDate: date.Format(model.DateLayout),
		OpenTime:     open,
		CloseTime:    close,
		IsClosed:     closed,
	}
}

func newTestResolver() *Resolver {
	return NewResolver(zerolog.Nop())
}

func TestIsSpecialDateClosed(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		name     string
		special  []model.ScheduleEntry
		expected bool
	}{
		{
			name:     "no overrides",
			special:  nil,
			expected: false,
		},
		{
			name: "closed override for the date",
			special: []model.ScheduleEntry{
				specialDay(monday, nil, nil, true),
			},
			expected: true,
		},
		{
			name: "open override for the date",
			special: []model.ScheduleEntry{
				specialDay(monday, tod(10, 0), tod(16, 0), false),
			},
			expected: false,
		},
		{
			name: "closed override for another date",
			special: []model.ScheduleEntry{
				specialDay(tuesday, nil, nil, true),
			},
			expected: false,
		},
		{
			name: "duplicate overrides, first wins",
			special: []model.ScheduleEntry{
				specialDay(monday, nil, nil, true),
				specialDay(monday, tod(9, 0), tod(18, 0), false),
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.IsSpecialDateClosed(monday, tt.special); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestWorkingHoursForDate(t *testing.T) {
	r := newTestResolver()
	regularMonday := []model.ScheduleEntry{
		regularDay("monday", tod(9, 0), tod(18, 0), false),
	}

	tests := []struct {
		name     string
		regular  []model.ScheduleEntry
		special  []model.ScheduleEntry
		expected *model.WorkingHours
	}{
		{
			name:     "regular hours only",
			regular:  regularMonday,
			expected: &model.WorkingHours{Open: "09:00", Close: "18:00"},
		},
		{
			name:     "no entry for the weekday",
			regular:  []model.ScheduleEntry{regularDay("tuesday", tod(9, 0), tod(18, 0), false)},
			expected: nil,
		},
		{
			name:     "regular entry closed",
			regular:  []model.ScheduleEntry{regularDay("monday", tod(9, 0), tod(18, 0), true)},
			expected: nil,
		},
		{
			name:     "regular entry missing close time",
			regular:  []model.ScheduleEntry{regularDay("monday", tod(9, 0), nil, false)},
			expected: nil,
		},
		{
			name:     "regular entry with out-of-range hour",
			regular:  []model.ScheduleEntry{regularDay("monday", tod(25, 0), tod(18, 0), false)},
			expected: nil,
		},
		{
			name:    "closed override beats open regular entry",
			regular: regularMonday,
			special: []model.ScheduleEntry{
				specialDay(monday, nil, nil, true),
			},
			expected: nil,
		},
		{
			name:    "override with complete times replaces regular hours",
			regular: regularMonday,
			special: []model.ScheduleEntry{
				specialDay(monday, tod(11, 0), tod(16, 0), false),
			},
			expected: &model.WorkingHours{Open: "11:00", Close: "16:00"},
		},
		{
			name:    "incomplete open override falls through to regular",
			regular: regularMonday,
			special: []model.ScheduleEntry{
				specialDay(monday, tod(11, 0), nil, false),
			},
			expected: &model.WorkingHours{Open: "09:00", Close: "18:00"},
		},
		{
			name: "incomplete override with no regular entry",
			special: []model.ScheduleEntry{
				specialDay(monday, tod(11, 0), nil, false),
			},
			expected: nil,
		},
		{
			name:    "override for another date is ignored",
			regular: regularMonday,
			special: []model.ScheduleEntry{
				specialDay(tuesday, tod(11, 0), tod(16, 0), false),
			},
			expected: &model.WorkingHours{Open: "09:00", Close: "18:00"},
		},
		{
			name: "duplicate regular entries, first wins",
			regular: []model.ScheduleEntry{
				regularDay("monday", tod(8, 0), tod(14, 0), false),
				regularDay("monday", tod(10, 0), tod(20, 0), false),
			},
			expected: &model.WorkingHours{Open: "08:00", Close: "14:00"},
		},
		{
			name: "single-digit hours are zero padded",
			regular: []model.ScheduleEntry{
				regularDay("monday", tod(8, 5), tod(9, 30), false),
			},
			expected: &model.WorkingHours{Open: "08:05", Close: "09:30"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.WorkingHoursForDate(monday, tt.regular, tt.special)
			if tt.expected == nil {
				if got != nil {
					t.Errorf("expected closed, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected %+v, got closed", tt.expected)
			}
			if got.Open != tt.expected.Open || got.Close != tt.expected.Close {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestIsTimeInWorkingHours(t *testing.T) {
	hours := &model.WorkingHours{Open: "09:00", Close: "18:00"}

	tests := []struct {
		time     string
		hours    *model.WorkingHours
		expected bool
	}{
		{"09:00", hours, true},  // open boundary inclusive
		{"17:59", hours, true},
		{"18:00", hours, false}, // close boundary exclusive
		{"12:30", hours, true},
		{"08:59", hours, false},
		{"20:00", hours, false},
		{"12:00", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.time, func(t *testing.T) {
			if got := IsTimeInWorkingHours(tt.time, tt.hours); got != tt.expected {
				t.Errorf("IsTimeInWorkingHours(%q): expected %v, got %v", tt.time, tt.expected, got)
			}
		})
	}
}

func TestWorkingTimeSlots(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		name     string
		regular  []model.ScheduleEntry
		special  []model.ScheduleEntry
		expected []string
	}{
		{
			name:     "morning hours",
			regular:  []model.ScheduleEntry{regularDay("monday", tod(9, 0), tod(12, 0), false)},
			expected: []string{"09:00", "10:00", "11:00"},
		},
		{
			name:     "closed day yields no slots",
			regular:  []model.ScheduleEntry{regularDay("monday", tod(9, 0), tod(12, 0), true)},
			expected: nil,
		},
		{
			name:     "no schedule yields no slots",
			expected: nil,
		},
		{
			name:     "half-hour open offset is dropped",
			regular:  []model.ScheduleEntry{regularDay("monday", tod(9, 30), tod(12, 0), false)},
			expected: []string{"09:00", "10:00", "11:00"},
		},
		{
			name:    "override hours drive the slots",
			regular: []model.ScheduleEntry{regularDay("monday", tod(9, 0), tod(18, 0), false)},
			special: []model.ScheduleEntry{
				specialDay(monday, tod(14, 0), tod(17, 0), false),
			},
			expected: []string{"14:00", "15:00", "16:00"},
		},
		{
			name:     "early single-digit hours are zero padded",
			regular:  []model.ScheduleEntry{regularDay("monday", tod(8, 0), tod(11, 0), false)},
			expected: []string{"08:00", "09:00", "10:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.WorkingTimeSlots(monday, tt.regular, tt.special)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %d slots %v, got %d: %v", len(tt.expected), tt.expected, len(got), got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("slot %d: expected %q, got %q", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestWorkingHoursRangeForWeek(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		name     string
		regular  []model.ScheduleEntry
		special  []model.ScheduleEntry
		expected WeekRange
	}{
		{
			name:     "no open days falls back to default",
			expected: WeekRange{Start: 9, End: 18},
		},
		{
			name: "all days closed falls back to default",
			regular: []model.ScheduleEntry{
				regularDay("monday", tod(9, 0), tod(18, 0), true),
				regularDay("tuesday", tod(9, 0), tod(18, 0), true),
			},
			expected: WeekRange{Start: 9, End: 18},
		},
		{
			name: "mixed days take min open and max close",
			regular: []model.ScheduleEntry{
				regularDay("monday", tod(9, 0), tod(18, 0), false),
				regularDay("tuesday", tod(10, 0), tod(20, 0), false),
				regularDay("wednesday", tod(11, 0), tod(15, 0), true),
			},
			expected: WeekRange{Start: 9, End: 20},
		},
		{
			name: "widening override extends the range",
			regular: []model.ScheduleEntry{
				regularDay("monday", tod(9, 0), tod(18, 0), false),
				regularDay("tuesday", tod(10, 0), tod(20, 0), false),
			},
			special: []model.ScheduleEntry{
				specialDay(tuesday, tod(8, 0), tod(22, 0), false),
			},
			expected: WeekRange{Start: 8, End: 22},
		},
		{
			name: "closed override removes a day from the range",
			regular: []model.ScheduleEntry{
				regularDay("monday", tod(8, 0), tod(12, 0), false),
				regularDay("tuesday", tod(10, 0), tod(20, 0), false),
			},
			special: []model.ScheduleEntry{
				specialDay(monday, nil, nil, true),
			},
			expected: WeekRange{Start: 10, End: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.WorkingHoursRangeForWeek(monday, tt.regular, tt.special)
			if got != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}
