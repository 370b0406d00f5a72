package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zolkinka/pro-sto-service-admin-sub002/internal/model"
)

const bookingColumns = `id, uuid, service_center_uuid, client_name, client_phone, car_model,
       start_time, end_time, status, comment, created_at, updated_at`

// CreateBooking inserts a new booking. The UUID and timestamps are assigned
// here if missing.
func (db *DB) CreateBooking(ctx context.Context, b *model.Booking) error {
	if b == nil {
		return fmt.Errorf("booking is nil")
	}
	if b.UUID == "" {
		b.UUID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = model.BookingPending
	}
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	res, err := db.ExecContext(ctx, `
		INSERT INTO bookings (
			uuid, service_center_uuid, client_name, client_phone, car_model,
			start_time, end_time, status, comment, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.UUID, b.ServiceCenterUUID, b.ClientName, b.ClientPhone, b.CarModel,
		b.StartTime, b.EndTime, b.Status, b.Comment, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	b.ID, _ = res.LastInsertId()
	return nil
}

// IsSlotBooked checks whether an active booking overlaps [start, end).
func (db *DB) IsSlotBooked(ctx context.Context, centerUUID string, start, end time.Time) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM bookings
		WHERE service_center_uuid = ?
		AND start_time < ? AND end_time > ?
		AND status NOT IN ('canceled', 'rejected')`,
		centerUUID, end, start,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check slot: %w", err)
	}
	return count > 0, nil
}

// GetActiveBookingsOnDate returns non-canceled bookings of a center for a date.
func (db *DB) GetActiveBookingsOnDate(ctx context.Context, centerUUID string, date time.Time) ([]model.Booking, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)
	return db.listBookings(ctx, centerUUID, startOfDay, endOfDay, true)
}

// ListBookingsInRange returns all bookings of a center with start time in
// [from, to), including canceled ones.
func (db *DB) ListBookingsInRange(ctx context.Context, centerUUID string, from, to time.Time) ([]model.Booking, error) {
	return db.listBookings(ctx, centerUUID, from, to, false)
}

func (db *DB) listBookings(ctx context.Context, centerUUID string, from, to time.Time, activeOnly bool) ([]model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE service_center_uuid = ?
		AND start_time >= ? AND start_time < ?`
	if activeOnly {
		query += ` AND status NOT IN ('canceled', 'rejected')`
	}
	query += ` ORDER BY start_time`

	rows, err := db.QueryContext(ctx, query, centerUUID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// UpdateBookingStatus transitions a booking to the given status.
func (db *DB) UpdateBookingStatus(ctx context.Context, bookingUUID, status string) error {
	res, err := db.ExecContext(ctx,
		"UPDATE bookings SET status = ?, updated_at = ? WHERE uuid = ?",
		status, time.Now(), bookingUUID,
	)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteOldBookings removes bookings that ended more than olderThan ago.
// Returns the number of deleted rows.
func (db *DB) DeleteOldBookings(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res, err := db.ExecContext(ctx, "DELETE FROM bookings WHERE end_time < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old bookings: %w", err)
	}
	return res.RowsAffected()
}

func scanBooking(rows *sql.Rows) (*model.Booking, error) {
	var b model.Booking
	var clientName, clientPhone, carModel, comment sql.NullString
	if err := rows.Scan(
		&b.ID, &b.UUID, &b.ServiceCenterUUID, &clientName, &clientPhone, &carModel,
		&b.StartTime, &b.EndTime, &b.Status, &comment, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan booking: %w", err)
	}
	b.ClientName = clientName.String
	b.ClientPhone = clientPhone.String
	b.CarModel = carModel.String
	b.Comment = comment.String
	return &b, nil
}
