package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/zolkinka/pro-sto-service-admin-sub002/internal/metrics"
	"github.com/zolkinka/pro-sto-service-admin-sub002/internal/model"
	"github.com/zolkinka/pro-sto-service-admin-sub002/internal/schedule"
)

// CreateBookingRequest is the body for POST /api/v1/bookings.
type CreateBookingRequest struct {
	Center        string `json:"center"`
	Date          string `json:"date"`           // YYYY-MM-DD
	StartTime     string `json:"start_time"`     // HH:MM, hour aligned
	DurationHours int    `json:"duration_hours"` // default 1
	ClientName    string `json:"client_name"`
	ClientPhone   string `json:"client_phone"`
	CarModel      string `json:"car_model,omitempty"`
	Comment       string `json:"comment,omitempty"`
}

// CreateBookingResponse is the response for POST /api/v1/bookings.
type CreateBookingResponse struct {
	Success     bool   `json:"success"`
	BookingUUID string `json:"booking_uuid,omitempty"`
	Error       string `json:"error,omitempty"`
}

// handleCreateBooking books hour slots after validating them against the
// center's resolved working hours and existing bookings.
func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("create_booking")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var req CreateBookingRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.DurationHours <= 0 {
		req.DurationHours = 1
	}

	date, err := time.Parse(model.DateLayout, req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, CreateBookingResponse{Error: "invalid date format; expected YYYY-MM-DD"})
		return
	}
	startAt := model.ParseTimeOfDay(req.StartTime)
	if startAt == nil {
		writeJSON(w, http.StatusBadRequest, CreateBookingResponse{Error: "invalid start_time; expected HH:MM"})
		return
	}
	if startAt.Minute != 0 {
		writeJSON(w, http.StatusBadRequest, CreateBookingResponse{Error: "start_time must be hour aligned"})
		return
	}
	if req.ClientName == "" || req.ClientPhone == "" {
		writeJSON(w, http.StatusBadRequest, CreateBookingResponse{Error: "client_name and client_phone are required"})
		return
	}
	if !s.centerExists(w, r, req.Center) {
		return
	}

	hours, err := s.resolveForDate(r.Context(), req.Center, date)
	if err != nil {
		s.log.Error().Err(err).Msg("resolve working hours failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if hours == nil {
		writeJSON(w, http.StatusConflict, CreateBookingResponse{Error: "center is closed on this date"})
		return
	}

	// Every occupied hour slot must fall within the working hours.
	for h := 0; h < req.DurationHours; h++ {
		slot := model.TimeOfDay{Hour: startAt.Hour + h, Minute: 0}
		if slot.Hour > 23 || !schedule.IsTimeInWorkingHours(slot.String(), hours) {
			writeJSON(w, http.StatusConflict, CreateBookingResponse{
				Error: fmt.Sprintf("slot %s is outside working hours", slot.String()),
			})
			return
		}
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), startAt.Hour, 0, 0, 0, date.Location())
	end := start.Add(time.Duration(req.DurationHours) * time.Hour)

	booked, err := s.db.IsSlotBooked(r.Context(), req.Center, start, end)
	if err != nil {
		s.log.Error().Err(err).Msg("slot availability check failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if booked {
		writeJSON(w, http.StatusConflict, CreateBookingResponse{Error: "slot is already booked"})
		return
	}

	booking := &model.Booking{
		ServiceCenterUUID: req.Center,
		ClientName:        req.ClientName,
		ClientPhone:       req.ClientPhone,
		CarModel:          req.CarModel,
		Comment:           req.Comment,
		StartTime:         start,
		EndTime:           end,
		Status:            model.BookingPending,
	}
	if err := s.db.CreateBooking(r.Context(), booking); err != nil {
		s.log.Error().Err(err).Msg("create booking failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	metrics.IncBookingCreated(booking.Status)
	s.log.Info().
		Str("booking", booking.UUID).
		Str("center", req.Center).
		Time("start", start).
		Msg("booking created")
	writeJSON(w, http.StatusOK, CreateBookingResponse{Success: true, BookingUUID: booking.UUID})
}
