package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func datetime(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func TestBooking_Duration(t *testing.T) {
	b := Booking{
		StartTime: datetime(2026, 3, 2, 10, 0),
		EndTime:   datetime(2026, 3, 2, 12, 30),
	}
	assert.Equal(t, 2*time.Hour+30*time.Minute, b.Duration())
}

func TestBooking_SlotCount(t *testing.T) {
	b := Booking{
		StartTime: datetime(2026, 3, 2, 10, 0),
		EndTime:   datetime(2026, 3, 2, 13, 0),
	}
	assert.Equal(t, 3, b.SlotCount())
}

func TestBooking_OverlapsWith(t *testing.T) {
	existing := Booking{
		StartTime: datetime(2026, 3, 2, 10, 0),
		EndTime:   datetime(2026, 3, 2, 14, 0),
	}

	before := Booking{
		StartTime: datetime(2026, 3, 2, 8, 0),
		EndTime:   datetime(2026, 3, 2, 10, 0),
	}
	assert.False(t, existing.OverlapsWith(&before))

	after := Booking{
		StartTime: datetime(2026, 3, 2, 14, 0),
		EndTime:   datetime(2026, 3, 2, 16, 0),
	}
	assert.False(t, existing.OverlapsWith(&after))

	during := Booking{
		StartTime: datetime(2026, 3, 2, 12, 0),
		EndTime:   datetime(2026, 3, 2, 16, 0),
	}
	assert.True(t, existing.OverlapsWith(&during))

	contained := Booking{
		StartTime: datetime(2026, 3, 2, 11, 0),
		EndTime:   datetime(2026, 3, 2, 13, 0),
	}
	assert.True(t, existing.OverlapsWith(&contained))
}

func TestBooking_ContainsTime(t *testing.T) {
	b := Booking{
		StartTime: datetime(2026, 3, 2, 10, 0),
		EndTime:   datetime(2026, 3, 2, 12, 0),
	}
	assert.True(t, b.ContainsTime(datetime(2026, 3, 2, 10, 0)))
	assert.True(t, b.ContainsTime(datetime(2026, 3, 2, 11, 30)))
	assert.False(t, b.ContainsTime(datetime(2026, 3, 2, 12, 0)))
	assert.False(t, b.ContainsTime(datetime(2026, 3, 2, 9, 59)))
}

func TestBooking_IsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: BookingPending}).IsActive())
	assert.True(t, (&Booking{Status: BookingConfirmed}).IsActive())
	assert.False(t, (&Booking{Status: BookingCanceled}).IsActive())
	assert.False(t, (&Booking{Status: BookingRejected}).IsActive())
}

func TestBooking_SlotLabel(t *testing.T) {
	b := Booking{StartTime: datetime(2026, 3, 2, 9, 0)}
	assert.Equal(t, "09:00", b.SlotLabel())
}
