package model

import (
	"fmt"
	"time"
)

// Booking statuses.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCanceled  = "canceled"
	BookingRejected  = "rejected"
)

// Booking is an hour-aligned service appointment at a center.
type Booking struct {
	ID                int64     `json:"id"`
	UUID              string    `json:"uuid"`
	ServiceCenterUUID string    `json:"service_center_uuid"`
	ClientName        string    `json:"client_name"`
	ClientPhone       string    `json:"client_phone"`
	CarModel          string    `json:"car_model,omitempty"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	Status            string    `json:"status"`
	Comment           string    `json:"comment,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Duration returns the booked time span.
func (b *Booking) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}

// SlotCount returns the number of whole hour slots the booking occupies.
func (b *Booking) SlotCount() int {
	return int(b.Duration() / time.Hour)
}

// OverlapsWith reports whether two bookings occupy intersecting time ranges.
func (b *Booking) OverlapsWith(other *Booking) bool {
	return b.StartTime.Before(other.EndTime) && other.StartTime.Before(b.EndTime)
}

// ContainsTime reports whether t falls inside the booking, start inclusive.
func (b *Booking) ContainsTime(t time.Time) bool {
	return !t.Before(b.StartTime) && t.Before(b.EndTime)
}

// IsActive reports whether the booking still holds its slot.
func (b *Booking) IsActive() bool {
	return b.Status != BookingCanceled && b.Status != BookingRejected
}

// SlotLabel returns the "HH:00" label of the booking's starting slot.
func (b *Booking) SlotLabel() string {
	return fmt.Sprintf("%02d:00", b.StartTime.Hour())
}
