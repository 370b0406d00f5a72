package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/zolkinka/pro-sto-service-admin-sub002/internal/config"
	"github.com/zolkinka/pro-sto-service-admin-sub002/internal/model"
)

// GetCenter returns a service center by UUID, nil if it does not exist.
func (db *DB) GetCenter(ctx context.Context, centerUUID string) (*model.ServiceCenter, error) {
	var c model.ServiceCenter
	var address, timezone sql.NullString
	err := db.QueryRowContext(ctx, `
		SELECT uuid, name, address, timezone, is_active, created_at, updated_at
		FROM service_centers WHERE uuid = ?`,
		centerUUID,
	).Scan(&c.UUID, &c.Name, &address, &timezone, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query center: %w", err)
	}
	c.Address = address.String
	c.Timezone = timezone.String
	return &c, nil
}

// ListActiveCenters returns all active service centers ordered by name.
func (db *DB) ListActiveCenters(ctx context.Context) ([]model.ServiceCenter, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT uuid, name, address, timezone, is_active, created_at, updated_at
		FROM service_centers WHERE is_active = 1 ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("query centers: %w", err)
	}
	defer rows.Close()

	var centers []model.ServiceCenter
	for rows.Next() {
		var c model.ServiceCenter
		var address, timezone sql.NullString
		if err := rows.Scan(&c.UUID, &c.Name, &address, &timezone, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan center: %w", err)
		}
		c.Address = address.String
		c.Timezone = timezone.String
		centers = append(centers, c)
	}
	return centers, rows.Err()
}

// SyncCentersFromConfig applies centers.yaml to the database. It upserts
// centers, aligns weekly schedules, marks missing centers inactive and
// creates day-off overrides for configured holidays.
func (db *DB) SyncCentersFromConfig(ctx context.Context, cfg *config.CentersConfig) error {
	if cfg == nil {
		return fmt.Errorf("centers config is nil")
	}

	now := time.Now()
	seen := make(map[string]struct{})

	for _, center := range cfg.Centers {
		// Preserve created_at if the center already exists.
		_, err := db.ExecContext(ctx, `
			INSERT INTO service_centers (uuid, name, address, timezone, is_active, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, COALESCE((SELECT created_at FROM service_centers WHERE uuid = ?), ?), ?)
			ON CONFLICT(uuid) DO UPDATE SET
				name = excluded.name,
				address = excluded.address,
				timezone = excluded.timezone,
				is_active = excluded.is_active,
				updated_at = excluded.updated_at`,
			center.UUID, center.Name, center.Address, center.Timezone, center.IsActive,
			center.UUID, now, now,
		)
		if err != nil {
			return fmt.Errorf("sync center %s: %w", center.UUID, err)
		}
		seen[center.UUID] = struct{}{}

		if err := db.applyWeekSchedule(ctx, center.UUID, center.DefaultSchedule); err != nil {
			return fmt.Errorf("sync center %s schedule: %w", center.UUID, err)
		}
	}

	// Deactivate centers that disappeared from config.
	rows, err := db.QueryContext(ctx, `SELECT uuid FROM service_centers`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		if _, err := db.ExecContext(ctx, `UPDATE service_centers SET is_active = 0, updated_at = ? WHERE uuid = ?`, now, id); err != nil {
			return fmt.Errorf("deactivate center %s: %w", id, err)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	// Best-effort creation of day-off overrides for configured holidays.
	for _, h := range cfg.Holidays {
		dt, err := time.Parse(model.DateLayout, h.Date)
		if err != nil {
			return fmt.Errorf("parse holiday %s: %w", h.Date, err)
		}
		for id := range seen {
			_ = db.SetDayOff(ctx, id, dt, h.Name)
		}
	}

	return nil
}

func (db *DB) applyWeekSchedule(ctx context.Context, centerUUID string, week *config.WeekScheduleConfig) error {
	if week == nil {
		return db.EnsureDefaultSchedule(ctx, centerUUID)
	}

	open := week.OpenTime
	if open == "" {
		open = DefaultScheduleConfig.OpenTime
	}
	closeTime := week.CloseTime
	if closeTime == "" {
		closeTime = DefaultScheduleConfig.CloseTime
	}

	daysOff := make(map[string]bool, len(week.DaysOff))
	for _, d := range week.DaysOff {
		daysOff[d] = true
	}

	for d := time.Sunday; d <= time.Saturday; d++ {
		day := model.WeekdayName(d)
		if err := db.UpsertRegularDay(ctx, centerUUID, day, open, closeTime, daysOff[day]); err != nil {
			return err
		}
	}
	return nil
}
