package core

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors - centralized error definitions
var (
	// Source errors, each fatal for the source it concerns
	ErrUnreadableSource  = errors.New("unreadable source")
	ErrHeaderNotFound    = errors.New("header row not found")
	ErrUnresolvedColumns = errors.New("unresolved columns")

	// Configuration errors
	ErrInvalidSynonyms = errors.New("invalid synonym configuration")
)

// UnreadableSourceError reports a container or sheet that could not be read.
type UnreadableSourceError struct {
	Sheet string
	Cause error
}

func (e *UnreadableSourceError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("%v: %v", ErrUnreadableSource, e.Cause)
	}
	return fmt.Sprintf("%v: sheet %q: %v", ErrUnreadableSource, e.Sheet, e.Cause)
}

func (e *UnreadableSourceError) Unwrap() []error {
	return []error{ErrUnreadableSource, e.Cause}
}

// HeaderNotFoundError reports that no row inside the scan window carried
// one of the key label variants.
type HeaderNotFoundError struct {
	Sheet    string
	Window   int
	Variants []string
}

func (e *HeaderNotFoundError) Error() string {
	return fmt.Sprintf("%v: sheet %q, first %d rows scanned for %s",
		ErrHeaderNotFound, e.Sheet, e.Window, strings.Join(e.Variants, "|"))
}

func (e *HeaderNotFoundError) Unwrap() error {
	return ErrHeaderNotFound
}

// UnresolvedColumnsError lists the logical roles no column could satisfy,
// together with the normalized labels that were present.
type UnresolvedColumnsError struct {
	Source  string
	Sheet   string
	Missing []string
	Found   []string
}

func (e *UnresolvedColumnsError) Error() string {
	return fmt.Sprintf("%v: %s sheet %q is missing %s (found: %s)",
		ErrUnresolvedColumns, e.Source, e.Sheet,
		strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

func (e *UnresolvedColumnsError) Unwrap() error {
	return ErrUnresolvedColumns
}

// Error constructors with context
func NewSynonymError(source, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidSynonyms, source, reason)
}

// Error checking helpers
func IsSourceError(err error) bool {
	return errors.Is(err, ErrUnreadableSource) ||
		errors.Is(err, ErrHeaderNotFound) ||
		errors.Is(err, ErrUnresolvedColumns)
}
