package events

import (
	"time"
)

// EventType constants for distribution domain events
const (
	// Run events
	RunCompleted = "distribution.run.completed"
	RunFailed    = "distribution.run.failed"

	// Config events
	ConfigSaved = "distribution.config.saved"
)

// Source constants for event sources
const (
	SourceDistribution = "/distribution/distribution-service"
)

// Event represents a CloudEvents v1.0 compliant event envelope
type Event struct {
	SpecVersion     string         `json:"specversion"`
	Type            string         `json:"type"`
	Source          string         `json:"source"`
	Subject         string         `json:"subject,omitempty"`
	ID              string         `json:"id"`
	Time            time.Time      `json:"time"`
	DataContentType string         `json:"datacontenttype"`
	Data            interface{}    `json:"data"`
	Extensions      map[string]any `json:"-"`

	// Extension attributes
	CorrelationID string `json:"correlationid,omitempty"`
	RunID         string `json:"runid,omitempty"`
}

// RunCompletedData carries the payload of a RunCompleted event
type RunCompletedData struct {
	RunID             string    `json:"runId"`
	Mode              string    `json:"mode"`
	Pool              string    `json:"pool,omitempty"`
	RowsProcessed     int       `json:"rowsProcessed"`
	RowsWithTransfers int       `json:"rowsWithTransfers"`
	UnitsMoved        int       `json:"unitsMoved"`
	Tables            int       `json:"tables"`
	Warnings          int       `json:"warnings"`
	CompletedAt       time.Time `json:"completedAt"`
}

// RunFailedData carries the payload of a RunFailed event
type RunFailedData struct {
	Mode     string    `json:"mode"`
	Error    string    `json:"error"`
	FailedAt time.Time `json:"failedAt"`
}

// ConfigSavedData carries the payload of a ConfigSaved event
type ConfigSavedData struct {
	Name    string    `json:"name"`
	Stores  int       `json:"stores"`
	SavedAt time.Time `json:"savedAt"`
}
