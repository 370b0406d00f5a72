package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/zolkinka/pro-sto-service-admin-sub002/internal/metrics"
	"github.com/zolkinka/pro-sto-service-admin-sub002/internal/model"
)

// MaxSpecialDatesRange caps the override listing window in days.
const MaxSpecialDatesRange = 90

// WorkingHoursResponse is the response for GET /api/v1/working-hours.
type WorkingHoursResponse struct {
	Date     string `json:"date"`
	IsClosed bool   `json:"is_closed"`
	Open     string `json:"open,omitempty"`
	Close    string `json:"close,omitempty"`
}

// handleWorkingHours resolves working hours for a center and date.
// GET /api/v1/working-hours?center=<uuid>&date=YYYY-MM-DD
func (s *HTTPServer) handleWorkingHours(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("working_hours")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	centerUUID, ok := s.requireCenter(w, r)
	if !ok {
		return
	}
	date, err := parseDateParam(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	hours, err := s.resolveForDate(r.Context(), centerUUID, date)
	if err != nil {
		s.log.Error().Err(err).Msg("resolve working hours failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := WorkingHoursResponse{Date: date.Format(model.DateLayout), IsClosed: hours == nil}
	if hours != nil {
		resp.Open = hours.Open
		resp.Close = hours.Close
	}
	writeJSON(w, http.StatusOK, resp)
}

// SlotResponse is one bookable hour slot with its availability.
type SlotResponse struct {
	Time      string `json:"time"` // "HH:00"
	Available bool   `json:"available"`
}

// handleSlots returns the hour slots of a date with booking availability.
// GET /api/v1/slots?center=<uuid>&date=YYYY-MM-DD
func (s *HTTPServer) handleSlots(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("slots")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	centerUUID, ok := s.requireCenter(w, r)
	if !ok {
		return
	}
	date, err := parseDateParam(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	regular, err := s.db.GetRegularSchedule(r.Context(), centerUUID)
	if err != nil {
		s.log.Error().Err(err).Msg("load regular schedule failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	special, err := s.db.GetSpecialDates(r.Context(), centerUUID, date, date)
	if err != nil {
		s.log.Error().Err(err).Msg("load special dates failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	slots := s.resolver.WorkingTimeSlots(date, regular, special)
	resp := make([]SlotResponse, 0, len(slots))
	for _, slot := range slots {
		start := slotStart(date, slot)
		booked, err := s.db.IsSlotBooked(r.Context(), centerUUID, start, start.Add(time.Hour))
		if err != nil {
			s.log.Error().Err(err).Msg("slot availability check failed")
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		resp = append(resp, SlotResponse{Time: slot, Available: !booked})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":  date.Format(model.DateLayout),
		"slots": resp,
	})
}

// handleWeekRange returns the open/close hour extents of a week.
// GET /api/v1/week-range?center=<uuid>&start=YYYY-MM-DD
func (s *HTTPServer) handleWeekRange(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("week_range")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	centerUUID, ok := s.requireCenter(w, r)
	if !ok {
		return
	}
	weekStart, err := parseDateParam(r, "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	regular, err := s.db.GetRegularSchedule(r.Context(), centerUUID)
	if err != nil {
		s.log.Error().Err(err).Msg("load regular schedule failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	special, err := s.db.GetSpecialDates(r.Context(), centerUUID, weekStart, weekStart.AddDate(0, 0, 6))
	if err != nil {
		s.log.Error().Err(err).Msg("load special dates failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, s.resolver.WorkingHoursRangeForWeek(weekStart, regular, special))
}

// handleSchedule returns the full schedule of a center.
// GET /api/v1/schedule?center=<uuid>&from=YYYY-MM-DD&to=YYYY-MM-DD
func (s *HTTPServer) handleSchedule(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("schedule")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	centerUUID, ok := s.requireCenter(w, r)
	if !ok {
		return
	}

	from, err := parseDateParam(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	to := from.AddDate(0, 0, MaxSpecialDatesRange)
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err = time.Parse(model.DateLayout, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to format; expected YYYY-MM-DD")
			return
		}
	}
	if to.Before(from) {
		writeError(w, http.StatusBadRequest, "to must not be before from")
		return
	}
	if to.Sub(from) > MaxSpecialDatesRange*24*time.Hour {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("date range exceeds %d days", MaxSpecialDatesRange))
		return
	}

	regular, err := s.db.GetRegularSchedule(r.Context(), centerUUID)
	if err != nil {
		s.log.Error().Err(err).Msg("load regular schedule failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	special, err := s.db.GetSpecialDates(r.Context(), centerUUID, from, to)
	if err != nil {
		s.log.Error().Err(err).Msg("load special dates failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"regular": regular,
		"special": special,
	})
}

// DayOffRequest is the body for POST /api/v1/schedule/day-off.
type DayOffRequest struct {
	Center string `json:"center"`
	Date   string `json:"date"` // YYYY-MM-DD
	Reason string `json:"reason,omitempty"`
}

func (s *HTTPServer) handleDayOff(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("day_off")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var req DayOffRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	date, err := time.Parse(model.DateLayout, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		return
	}
	if !s.centerExists(w, r, req.Center) {
		return
	}

	if err := s.db.SetDayOff(r.Context(), req.Center, date, req.Reason); err != nil {
		s.log.Error().Err(err).Msg("set day off failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.hours.InvalidateCenter(r.Context(), req.Center)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// SpecialHoursRequest is the body for POST /api/v1/schedule/special-hours.
type SpecialHoursRequest struct {
	Center    string `json:"center"`
	Date      string `json:"date"`       // YYYY-MM-DD
	OpenTime  string `json:"open_time"`  // HH:MM
	CloseTime string `json:"close_time"` // HH:MM
}

func (s *HTTPServer) handleSpecialHours(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("special_hours")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var req SpecialHoursRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	date, err := time.Parse(model.DateLayout, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		return
	}
	open := model.ParseTimeOfDay(req.OpenTime)
	closeAt := model.ParseTimeOfDay(req.CloseTime)
	if open == nil || closeAt == nil {
		writeError(w, http.StatusBadRequest, "open_time and close_time must be HH:MM")
		return
	}
	if closeAt.String() <= open.String() {
		writeError(w, http.StatusBadRequest, "close_time must be after open_time")
		return
	}
	if !s.centerExists(w, r, req.Center) {
		return
	}

	if err := s.db.SetSpecialHours(r.Context(), req.Center, date, open.String(), closeAt.String()); err != nil {
		s.log.Error().Err(err).Msg("set special hours failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.hours.InvalidateCenter(r.Context(), req.Center)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleDeleteOverride removes a date override.
// DELETE /api/v1/schedule/override?center=<uuid>&date=YYYY-MM-DD
func (s *HTTPServer) handleDeleteOverride(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("delete_override")
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use DELETE")
		return
	}

	centerUUID, ok := s.requireCenter(w, r)
	if !ok {
		return
	}
	raw := r.URL.Query().Get("date")
	date, err := time.Parse(model.DateLayout, raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		return
	}

	if err := s.db.DeleteOverride(r.Context(), centerUUID, date); err != nil {
		s.log.Error().Err(err).Msg("delete override failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.hours.InvalidateCenter(r.Context(), centerUUID)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleExport streams the weekly schedule workbook.
// GET /api/v1/schedule/export?center=<uuid>&start=YYYY-MM-DD
func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("export")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	centerUUID, ok := s.requireCenter(w, r)
	if !ok {
		return
	}
	weekStart, err := parseDateParam(r, "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	center, err := s.db.GetCenter(r.Context(), centerUUID)
	if err != nil {
		s.log.Error().Err(err).Msg("center lookup failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if center == nil {
		writeError(w, http.StatusNotFound, "center not found")
		return
	}
	regular, err := s.db.GetRegularSchedule(r.Context(), centerUUID)
	if err != nil {
		s.log.Error().Err(err).Msg("load regular schedule failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	weekEnd := weekStart.AddDate(0, 0, 7)
	special, err := s.db.GetSpecialDates(r.Context(), centerUUID, weekStart, weekStart.AddDate(0, 0, 6))
	if err != nil {
		s.log.Error().Err(err).Msg("load special dates failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	bookings, err := s.db.ListBookingsInRange(r.Context(), centerUUID, weekStart, weekEnd)
	if err != nil {
		s.log.Error().Err(err).Msg("load bookings failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	filename := fmt.Sprintf("schedule_%s.xlsx", weekStart.Format(model.DateLayout))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := s.reports.WriteWeekly(w, center, weekStart, regular, special, bookings); err != nil {
		s.log.Error().Err(err).Msg("write weekly report failed")
	}
}

// centerExists validates a center referenced in a request body.
func (s *HTTPServer) centerExists(w http.ResponseWriter, r *http.Request, centerUUID string) bool {
	if centerUUID == "" {
		writeError(w, http.StatusBadRequest, "center is required")
		return false
	}
	center, err := s.db.GetCenter(r.Context(), centerUUID)
	if err != nil {
		s.log.Error().Err(err).Msg("center lookup failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return false
	}
	if center == nil {
		writeError(w, http.StatusNotFound, "center not found")
		return false
	}
	return true
}

func decodeBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

// slotStart anchors a "HH:MM" slot label on the calendar date.
func slotStart(date time.Time, slot string) time.Time {
	t := model.ParseTimeOfDay(slot)
	if t == nil {
		return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, date.Location())
}
