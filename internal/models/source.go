package models

import "time"

// SourceStatus reports the outcome of the one-time record load.
type SourceStatus struct {
	LoadID      string     `json:"load_id,omitempty"`
	Loaded      bool       `json:"loaded"`
	RecordCount int        `json:"record_count"`
	Error       string     `json:"error,omitempty"`
	LoadedAt    *time.Time `json:"loaded_at,omitempty"`
	Duration    string     `json:"duration,omitempty"`
}
