package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: entity does not exist in store
//   - ErrConflict: optimistic concurrency check failed or key already taken
//   - ErrUnavailable: backing service temporarily unavailable
//
// Precondition violations of the preservation engine are domain errors, not sentinels.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
