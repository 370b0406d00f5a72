package schedule

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/zolkinka/pro-sto-service-admin-sub002/internal/model"
)

// Default grid extents used when a whole week resolves to closed.
const (
	DefaultWeekStartHour = 9
	DefaultWeekEndHour   = 18
)

// WeekRange holds the minimum open hour and maximum close hour observed
// across seven consecutive days. Raw integers, meant to size a weekly grid.
type WeekRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Resolver computes working-hours decisions from a regular weekly schedule
// and date-specific overrides. All methods are pure and never fail: missing
// or malformed data degrades to the closed/empty result.
type Resolver struct {
	log zerolog.Logger
}

// NewResolver creates a resolver that logs unexpected input to log.
func NewResolver(log zerolog.Logger) *Resolver {
	return &Resolver{log: log}
}

// IsSpecialDateClosed reports whether an override marks date as fully closed.
// No override for the date means "not specially closed".
func (r *Resolver) IsSpecialDateClosed(date time.Time, special []model.ScheduleEntry) bool {
	dateStr := date.Format(model.DateLayout)
	for i := range special {
		if special[i].SpecificDate == dateStr {
			return special[i].IsClosed
		}
	}
	return false
}

// WorkingHoursForDate resolves the effective open/close pair for date.
// A date-specific override wins over the regular weekly entry: a closed
// override closes the day outright, an override with complete times replaces
// the regular hours, and an incomplete open override falls through to the
// regular schedule. Returns nil when the center is closed or no usable
// entry exists.
func (r *Resolver) WorkingHoursForDate(date time.Time, regular, special []model.ScheduleEntry) *model.WorkingHours {
	dateStr := date.Format(model.DateLayout)

	for i := range special {
		if special[i].SpecificDate != dateStr {
			continue
		}
		if special[i].IsClosed {
			return nil
		}
		if special[i].HasCompleteTimes() {
			return &model.WorkingHours{
				Open:  special[i].OpenTime.String(),
				Close: special[i].CloseTime.String(),
			}
		}
		if special[i].OpenTime != nil || special[i].CloseTime != nil {
			r.log.Debug().
				Str("date", dateStr).
				Str("entry", special[i].UUID).
				Msg("special date has incomplete times, using regular schedule")
		}
		break
	}

	weekday := model.WeekdayName(date.Weekday())
	for i := range regular {
		if regular[i].DayOfWeek != weekday {
			continue
		}
		if regular[i].IsClosed || !regular[i].HasCompleteTimes() {
			return nil
		}
		return &model.WorkingHours{
			Open:  regular[i].OpenTime.String(),
			Close: regular[i].CloseTime.String(),
		}
	}
	return nil
}

// IsTimeInWorkingHours reports whether a "HH:MM" time falls within hours,
// open boundary inclusive, close boundary exclusive. Lexicographic
// comparison is exact for zero-padded "HH:MM" strings.
func IsTimeInWorkingHours(t string, hours *model.WorkingHours) bool {
	if hours == nil {
		return false
	}
	return hours.Open <= t && t < hours.Close
}

// WorkingTimeSlots returns one "HH:00" slot per whole hour between the
// resolved open and close hours of date. Minutes are dropped, not rounded:
// open 09:30, close 12:00 yields 09:00, 10:00 and 11:00. A closed day
// yields no slots.
func (r *Resolver) WorkingTimeSlots(date time.Time, regular, special []model.ScheduleEntry) []string {
	hours := r.WorkingHoursForDate(date, regular, special)
	if hours == nil {
		return nil
	}

	openHour := hourOf(hours.Open)
	closeHour := hourOf(hours.Close)

	var slots []string
	for h := openHour; h < closeHour; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
	}
	return slots
}

// WorkingHoursRangeForWeek resolves the seven days starting at weekStart and
// returns the minimum open hour and maximum close hour among the open days.
// A week with no open days falls back to the 9-18 default.
func (r *Resolver) WorkingHoursRangeForWeek(weekStart time.Time, regular, special []model.ScheduleEntry) WeekRange {
	minOpen, maxClose := -1, -1

	for d := 0; d < 7; d++ {
		day := weekStart.AddDate(0, 0, d)
		hours := r.WorkingHoursForDate(day, regular, special)
		if hours == nil {
			continue
		}
		openHour := hourOf(hours.Open)
		closeHour := hourOf(hours.Close)
		if minOpen < 0 || openHour < minOpen {
			minOpen = openHour
		}
		if closeHour > maxClose {
			maxClose = closeHour
		}
	}

	if minOpen < 0 {
		return WeekRange{Start: DefaultWeekStartHour, End: DefaultWeekEndHour}
	}
	return WeekRange{Start: minOpen, End: maxClose}
}

// hourOf extracts the integer hour from a zero-padded "HH:MM" string.
func hourOf(hm string) int {
	var hour int
	if _, err := fmt.Sscanf(hm, "%d:", &hour); err != nil {
		return 0
	}
	return hour
}
