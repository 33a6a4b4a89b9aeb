package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by a Port when a key has no stored value. Read
// paths translate it into an absent value; it never escapes to callers of
// the services.
var ErrNotFound = errors.New("key not found")

// Sentinel errors with caller-facing messages. The exact strings are
// compatibility-significant; downstream tooling matches on them.
var (
	// ErrNoBaseline is returned when an update targets a project with no
	// established baseline.
	ErrNoBaseline = errors.New("No baseline exists to update. Establish baseline first.")

	// ErrBaselineRequired is returned by Require when no baseline exists.
	ErrBaselineRequired = errors.New("ROI baseline required but not found. Run: quallaa evaluators baseline --help")

	// ErrInsufficientSnapshots is returned when trend analysis has fewer
	// than two snapshots to work with.
	ErrInsufficientSnapshots = errors.New("At least 2 snapshots required for trend analysis")
)

// ValidationError reports a baseline input that is missing, out of
// domain, or not a finite number. Field carries the offending field name.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Invalid %s: must be a positive number", e.Field)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
