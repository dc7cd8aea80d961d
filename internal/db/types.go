package db

import (
	"time"

	"github.com/google/uuid"
)

// Generation statuses
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// ProfileSnapshot is a stored profile document. Document holds the exported
// JSON and is empty in list results.
type ProfileSnapshot struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Document  []byte    `json:"document,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// GenerationRecord describes one document generation attempt.
type GenerationRecord struct {
	ID          uuid.UUID     `json:"id"`
	RequestID   uuid.UUID     `json:"request_id"`
	SnapshotID  uuid.UUID     `json:"snapshot_id,omitempty"`
	ProfileName string        `json:"profile_name"`
	Template    string        `json:"template"`
	OutputPath  string        `json:"output_path,omitempty"`
	Status      string        `json:"status"`
	Error       string        `json:"error,omitempty"`
	SizeBytes   int64         `json:"size_bytes"`
	Duration    time.Duration `json:"duration"`
	CreatedAt   time.Time     `json:"created_at"`
}

// GenerationFilters holds optional filters for listing generations
type GenerationFilters struct {
	ProfileName string
	Status      string
	Limit       int
}

func msDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
