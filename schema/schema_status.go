package schema

import "time"

// StoreStatus describes the state of the configured point store.
type StoreStatus struct {
	Backend      DatabaseBackend `json:"backend"`
	Connected    bool            `json:"connected"`
	TotalPoints  int64           `json:"total_points"`
	Measurements []string        `json:"measurements"`
	OldestPoint  time.Time       `json:"oldest_point"`
	NewestPoint  time.Time       `json:"newest_point"`
}
