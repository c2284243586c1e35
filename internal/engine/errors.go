package engine

import "errors"

// Sentinel errors returned by the engine. Compare with errors.Is.
var (
	// ErrZoneNotFound indicates the requested zone is not in the catalog.
	ErrZoneNotFound = errors.New("zone not found")

	// ErrInvalidInput indicates a negative, non-finite or out of range input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration indicates a catalog that cannot drive the engine.
	ErrConfiguration = errors.New("invalid catalog configuration")
)
