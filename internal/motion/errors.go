package motion

import "errors"

// Domain errors for propagation.
var (
	// ErrInvalidParameter indicates a horizon or step size outside its valid
	// range. It is returned before any stepping or force evaluation.
	ErrInvalidParameter = errors.New("motion: invalid parameter")

	// ErrNonFinite classifies a NaN or Inf state. The propagator never
	// returns it; callers that inspect results use it for reporting.
	ErrNonFinite = errors.New("motion: non-finite state")
)
