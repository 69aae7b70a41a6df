package energy

import "errors"

// Package-level errors for the savings ledger.
// These allow callers to use errors.Is() for error handling.
var (
	// ErrNegativeDelta is returned when an increment is negative. The
	// ledger is monotonic and never decreases.
	ErrNegativeDelta = errors.New("energy: negative delta")

	// ErrLedgerNotFound is returned when the ledger row is missing.
	// Migrations seed it, so this indicates a broken install.
	ErrLedgerNotFound = errors.New("energy: ledger not found")
)
