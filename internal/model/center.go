package model

import "time"

// ServiceCenter is a car-service location whose schedule this service manages.
type ServiceCenter struct {
	UUID        string    `json:"uuid"`
	Name        string    `json:"name"`
	Address     string    `json:"address,omitempty"`
	Timezone    string    `json:"timezone,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
