package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CenterConfig describes a single service center in centers.yaml.
type CenterConfig struct {
	UUID            string              `yaml:"uuid"`
	Name            string              `yaml:"name"`
	Address         string              `yaml:"address"`
	Timezone        string              `yaml:"timezone"`
	IsActive        bool                `yaml:"is_active"`
	DefaultSchedule *WeekScheduleConfig `yaml:"default_schedule,omitempty"`
}

// WeekScheduleConfig is a weekly hours template applied to all weekdays.
type WeekScheduleConfig struct {
	OpenTime  string   `yaml:"open_time"`  // "09:00"
	CloseTime string   `yaml:"close_time"` // "18:00"
	DaysOff   []string `yaml:"days_off"`   // weekday names, e.g. "sunday"
}

// HolidayConfig marks a calendar date as closed across all centers.
type HolidayConfig struct {
	Date string `yaml:"date"` // "2026-01-01"
	Name string `yaml:"name"`
}

// DefaultsConfig holds global fallbacks for centers without explicit values.
type DefaultsConfig struct {
	Schedule *WeekScheduleConfig `yaml:"schedule"`
}

// CentersConfig is the root of centers.yaml.
type CentersConfig struct {
	Centers  []CenterConfig  `yaml:"centers"`
	Defaults DefaultsConfig  `yaml:"defaults"`
	Holidays []HolidayConfig `yaml:"holidays"`
}

// LoadCentersConfig loads and validates the centers configuration.
func LoadCentersConfig(path string) (*CentersConfig, error) {
	if path == "" {
		path = "configs/centers.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read centers config: %w", err)
	}

	var cfg CentersConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse centers config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate centers config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Validate checks the configuration for errors.
func (c *CentersConfig) Validate() error {
	if len(c.Centers) == 0 {
		return fmt.Errorf("no centers defined")
	}
	seen := make(map[string]struct{}, len(c.Centers))
	for i, center := range c.Centers {
		if center.UUID == "" {
			return fmt.Errorf("center %d: uuid is required", i)
		}
		if center.Name == "" {
			return fmt.Errorf("center %s: name is required", center.UUID)
		}
		if _, ok := seen[center.UUID]; ok {
			return fmt.Errorf("duplicate center uuid %s", center.UUID)
		}
		seen[center.UUID] = struct{}{}
	}
	return nil
}

func (c *CentersConfig) applyDefaults() {
	if c.Defaults.Schedule == nil {
		return
	}
	for i := range c.Centers {
		if c.Centers[i].DefaultSchedule == nil {
			c.Centers[i].DefaultSchedule = c.Defaults.Schedule
		}
	}
}
