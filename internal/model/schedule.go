package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used across the service.
const DateLayout = "2006-01-02"

// TimeOfDay is a wall-clock time without date or timezone.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Valid reports whether the time fields are within clock bounds.
func (t *TimeOfDay) Valid() bool {
	if t == nil {
		return false
	}
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

// String formats the time as zero-padded "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseTimeOfDay converts a "HH:MM" or "HH:MM:SS" string into a TimeOfDay.
// Returns nil for empty or malformed input; seconds are dropped.
func ParseTimeOfDay(s string) *TimeOfDay {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return nil
	}
	var hour, minute int
	if _, err := fmt.Sscanf(parts[0], "%d", &hour); err != nil {
		return nil
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &minute); err != nil {
		return nil
	}
	t := &TimeOfDay{Hour: hour, Minute: minute}
	if !t.Valid() {
		return nil
	}
	return t
}

// ScheduleEntry is one row of a service center's operating schedule.
// Regular weekly entries carry DayOfWeek; date-specific overrides carry
// SpecificDate. Both kinds share this shape; the caller keeps them in
// separate collections.
type ScheduleEntry struct {
	UUID              string     `json:"uuid"`
	ServiceCenterUUID string     `json:"service_center_uuid"`
	DayOfWeek         string     `json:"day_of_week,omitempty"`   // "monday".."sunday"
	SpecificDate      string     `json:"specific_date,omitempty"` // "2006-01-02"
	OpenTime          *TimeOfDay `json:"open_time"`
	CloseTime         *TimeOfDay `json:"close_time"`
	IsClosed          bool       `json:"is_closed"`
	Timezone          string     `json:"timezone,omitempty"` // carried, not applied
	Reason            string     `json:"reason,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// HasCompleteTimes reports whether both open and close times are usable.
func (e *ScheduleEntry) HasCompleteTimes() bool {
	return e.OpenTime.Valid() && e.CloseTime.Valid()
}

// WorkingHours is the resolved open/close pair for one date.
// Absence (closed day, no schedule) is a nil *WorkingHours.
type WorkingHours struct {
	Open  string `json:"open"`  // "HH:MM"
	Close string `json:"close"` // "HH:MM"
}

// WeekdayName maps a time.Weekday to the lowercase name used in
// ScheduleEntry.DayOfWeek.
func WeekdayName(d time.Weekday) string {
	switch d {
	case time.Sunday:
		return "sunday"
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	}
	return ""
}
