// Package common provides shared errors and logging setup used across the
// application.
package common

import "errors"

// Sentinel errors shared across packages.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAmountNotFound is returned when no monetary amount can be
	// extracted from input text.
	ErrAmountNotFound = errors.New("no amount found in text")

	// ErrModelNotFound is returned when no trained model artifact exists
	// at the configured path.
	ErrModelNotFound = errors.New("model artifact not found")
	// ErrModelCorrupt is returned when a model artifact exists but cannot
	// be decoded or validated.
	ErrModelCorrupt = errors.New("model artifact corrupt")
)
