package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps sql.DB for the admin service.
type DB struct {
	*sql.DB
}

// NewDB opens the database at path and runs migrations.
// Use ":memory:" for an in-memory database in tests.
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := createTables(db); err != nil {
		return nil, err
	}
	return &DB{db}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		// Service centers
		`CREATE TABLE IF NOT EXISTS service_centers (
			uuid TEXT PRIMARY KEY,
			name TEXT UNIQUE NOT NULL,
			address TEXT,
			timezone TEXT,
			is_active BOOLEAN DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Schedule entries: regular rows carry day_of_week, override rows
		// carry specific_date. Both kinds share one shape.
		`CREATE TABLE IF NOT EXISTS schedule_entries (
			uuid TEXT PRIMARY KEY,
			service_center_uuid TEXT NOT NULL,
			day_of_week TEXT,
			specific_date TEXT,
			open_time TEXT,
			close_time TEXT,
			is_closed BOOLEAN DEFAULT 0,
			timezone TEXT,
			reason TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (service_center_uuid) REFERENCES service_centers(uuid)
		)`,

		// Bookings
		`CREATE TABLE IF NOT EXISTS bookings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			uuid TEXT UNIQUE NOT NULL,
			service_center_uuid TEXT NOT NULL,
			client_name TEXT,
			client_phone TEXT,
			car_model TEXT,
			start_time DATETIME NOT NULL,
			end_time DATETIME NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			comment TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (service_center_uuid) REFERENCES service_centers(uuid)
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_centers_active ON service_centers(is_active)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_center_day ON schedule_entries(service_center_uuid, day_of_week)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_center_date ON schedule_entries(service_center_uuid, specific_date)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_times ON bookings(service_center_uuid, start_time, end_time)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)`,
	}

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("exec migration %s: %w", trimSQL(q), err)
		}
	}
	return nil
}

func trimSQL(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 60 {
		return s[:60] + "..."
	}
	return s
}
