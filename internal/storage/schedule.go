package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zolkinka/pro-sto-service-admin-sub002/internal/model"
)

// DefaultScheduleConfig provides fallback hours for newly created centers.
var DefaultScheduleConfig = struct {
	OpenTime  string
	CloseTime string
}{
	OpenTime:  "09:00",
	CloseTime: "18:00",
}

const scheduleColumns = `uuid, service_center_uuid, day_of_week, specific_date,
       open_time, close_time, is_closed, timezone, reason, created_at, updated_at`

// GetRegularSchedule returns the weekly schedule entries for a center,
// ordered by creation so duplicate weekday rows resolve deterministically
// (first match wins downstream).
func (db *DB) GetRegularSchedule(ctx context.Context, centerUUID string) ([]model.ScheduleEntry, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+scheduleColumns+`
		FROM schedule_entries
		WHERE service_center_uuid = ? AND day_of_week IS NOT NULL AND day_of_week != ''
		ORDER BY created_at, uuid`,
		centerUUID,
	)
	if err != nil {
		return nil, fmt.Errorf("query regular schedule: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// GetSpecialDates returns the date-override entries for a center within
// [from, to], ordered by date then creation.
func (db *DB) GetSpecialDates(ctx context.Context, centerUUID string, from, to time.Time) ([]model.ScheduleEntry, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+scheduleColumns+`
		FROM schedule_entries
		WHERE service_center_uuid = ? AND specific_date IS NOT NULL AND specific_date != ''
		AND specific_date >= ? AND specific_date <= ?
		ORDER BY specific_date, created_at, uuid`,
		centerUUID, from.Format(model.DateLayout), to.Format(model.DateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("query special dates: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// UpsertRegularDay sets the working hours for one weekday of a center.
func (db *DB) UpsertRegularDay(ctx context.Context, centerUUID, dayOfWeek string, openTime, closeTime string, isClosed bool) error {
	now := time.Now()

	res, err := db.ExecContext(ctx, `
		UPDATE schedule_entries
		SET open_time = ?, close_time = ?, is_closed = ?, updated_at = ?
		WHERE service_center_uuid = ? AND day_of_week = ?`,
		openTime, closeTime, isClosed, now, centerUUID, dayOfWeek,
	)
	if err != nil {
		return fmt.Errorf("update regular day: %w", err)
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		_, err = db.ExecContext(ctx, `
			INSERT INTO schedule_entries (
				uuid, service_center_uuid, day_of_week, open_time, close_time, is_closed, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), centerUUID, dayOfWeek, openTime, closeTime, isClosed, now, now,
		)
		if err != nil {
			return fmt.Errorf("insert regular day: %w", err)
		}
	}
	return nil
}

// SetDayOff marks a specific date as closed for a center.
func (db *DB) SetDayOff(ctx context.Context, centerUUID string, date time.Time, reason string) error {
	return db.upsertOverride(ctx, centerUUID, date, true, "", "", reason)
}

// SetSpecialHours sets custom working hours for a specific date.
func (db *DB) SetSpecialHours(ctx context.Context, centerUUID string, date time.Time, openTime, closeTime string) error {
	return db.upsertOverride(ctx, centerUUID, date, false, openTime, closeTime, "")
}

func (db *DB) upsertOverride(ctx context.Context, centerUUID string, date time.Time, isClosed bool, openTime, closeTime, reason string) error {
	now := time.Now()
	dateStr := date.Format(model.DateLayout)

	res, err := db.ExecContext(ctx, `
		UPDATE schedule_entries
		SET is_closed = ?, open_time = ?, close_time = ?, reason = ?, updated_at = ?
		WHERE service_center_uuid = ? AND specific_date = ?`,
		isClosed, openTime, closeTime, reason, now, centerUUID, dateStr,
	)
	if err != nil {
		return fmt.Errorf("update override: %w", err)
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		_, err = db.ExecContext(ctx, `
			INSERT INTO schedule_entries (
				uuid, service_center_uuid, specific_date, is_closed, open_time, close_time, reason, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), centerUUID, dateStr, isClosed, openTime, closeTime, reason, now, now,
		)
		if err != nil {
			return fmt.Errorf("insert override: %w", err)
		}
	}
	return nil
}

// DeleteOverride removes the date override of a center, if any.
func (db *DB) DeleteOverride(ctx context.Context, centerUUID string, date time.Time) error {
	_, err := db.ExecContext(ctx, `
		DELETE FROM schedule_entries
		WHERE service_center_uuid = ? AND specific_date = ?`,
		centerUUID, date.Format(model.DateLayout),
	)
	return err
}

// EnsureDefaultSchedule creates default weekly entries for every weekday of a
// center that does not have one yet.
func (db *DB) EnsureDefaultSchedule(ctx context.Context, centerUUID string) error {
	for d := time.Sunday; d <= time.Saturday; d++ {
		day := model.WeekdayName(d)

		var count int
		err := db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM schedule_entries WHERE service_center_uuid = ? AND day_of_week = ?",
			centerUUID, day,
		).Scan(&count)
		if err != nil {
			return fmt.Errorf("check schedule for %s: %w", day, err)
		}
		if count > 0 {
			continue
		}

		closed := d == time.Sunday
		if err := db.UpsertRegularDay(ctx, centerUUID, day,
			DefaultScheduleConfig.OpenTime, DefaultScheduleConfig.CloseTime, closed); err != nil {
			return fmt.Errorf("create default schedule for %s: %w", day, err)
		}
	}
	return nil
}

func scanEntries(rows *sql.Rows) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	for rows.Next() {
		var e model.ScheduleEntry
		var dayOfWeek, specificDate, openTime, closeTime, timezone, reason sql.NullString
		if err := rows.Scan(
			&e.UUID, &e.ServiceCenterUUID, &dayOfWeek, &specificDate,
			&openTime, &closeTime, &e.IsClosed, &timezone, &reason,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan schedule entry: %w", err)
		}
		e.DayOfWeek = dayOfWeek.String
		e.SpecificDate = specificDate.String
		e.Timezone = timezone.String
		e.Reason = reason.String
		if openTime.Valid {
			e.OpenTime = model.ParseTimeOfDay(openTime.String)
		}
		if closeTime.Valid {
			e.CloseTime = model.ParseTimeOfDay(closeTime.String)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
