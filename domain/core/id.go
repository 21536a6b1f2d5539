package core

import (
	"github.com/google/uuid"
)

// RunID identifies one reconciliation run held by a presentation layer.
type RunID string

// NewRunID creates a new unique identifier using UUID v7 for time-ordered generation
func NewRunID() RunID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return RunID(id.String())
}

// ParseRunID validates an externally supplied identifier.
func ParseRunID(s string) (RunID, bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return RunID(id.String()), true
}

// String returns the string representation
func (id RunID) String() string {
	return string(id)
}
