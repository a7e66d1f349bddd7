package store

import "errors"

// Sentinel errors surfaced by the store and registry layers. Wrap with
// fmt.Errorf("...: %w", ...) at call sites so errors.Is keeps working.
var (
	// ErrUnknownState is returned by State when a record is absent from
	// both the current and initial buckets for its type.
	ErrUnknownState = errors.New("dohmane: unknown state")

	// ErrUnregisteredType is returned by any operation that references a
	// type name, or a relation name, not present in the registry.
	ErrUnregisteredType = errors.New("dohmane: unregistered type")

	// ErrMissingKey is returned by Load (and by KeyFor) when a record has
	// no value at its typedef's key path.
	ErrMissingKey = errors.New("dohmane: missing key")
)
