package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrEmptyOracleOutput marks a reconciliation run whose model call
	// produced no usable text.
	ErrEmptyOracleOutput = errors.New("oracle returned no usable output")
)
