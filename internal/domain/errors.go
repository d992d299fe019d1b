package domain

import "errors"

var (
	ErrNegativeQuantity  = errors.New("snapshot contains a negative quantity")
	ErrDuplicateRowIndex = errors.New("snapshot contains a duplicate row index")
	ErrInvalidPool       = errors.New("unknown warehouse pool")
	ErrInvalidThreshold  = errors.New("balance threshold must not be negative")
	ErrEmptyPriority     = errors.New("store priority list is empty")
	ErrDuplicateStore    = errors.New("store priority list contains a duplicate")
	ErrRunNotFound       = errors.New("distribution run not found")
	ErrConfigNotFound    = errors.New("distribution config not found")
)

// WarningCode classifies recoverable conditions surfaced to callers as data
// rather than errors.
type WarningCode string

const (
	// WarnConfigMismatch marks a store present in the config but absent from
	// the snapshot, or the other way around.
	WarnConfigMismatch WarningCode = "CONFIG_MISMATCH"
	// WarnNegativeProjection marks a transfer skipped during projection
	// because it would drive a quantity below zero.
	WarnNegativeProjection WarningCode = "NEGATIVE_PROJECTION"
)

// Warning is a recoverable inconsistency observed during a run. RowIndex is
// -1 when the warning is not tied to a particular row.
type Warning struct {
	Code     WarningCode `bson:"code" json:"code"`
	RowIndex int         `bson:"rowIndex" json:"rowIndex"`
	Message  string      `bson:"message" json:"message"`
}
