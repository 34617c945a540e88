// Package plan derives the date-relative training metrics shown on the
// dashboard: week numbers, progress, pace targets, the weekly strength pick
// and weekly mileage. Every function here is a pure function of its inputs.
package plan

import "errors"

var (
	// ErrValidation marks a plan table or input value that cannot be used.
	ErrValidation = errors.New("validation error")

	// ErrEmptyPlan is returned when a derivation needs at least one plan row.
	ErrEmptyPlan = errors.New("plan has no rows")
)
