package orbit

import (
	"errors"
	"fmt"
)

// Domain errors for registry and engine operations.
var (
	// ErrInvalidMass indicates a non-positive or non-finite mass.
	ErrInvalidMass = errors.New("orbit: mass must be positive")

	// ErrNonFinite indicates a NaN or Inf position or velocity at construction.
	ErrNonFinite = errors.New("orbit: non-finite position or velocity")

	// ErrDuplicateAnchor indicates a second anchor body.
	ErrDuplicateAnchor = errors.New("orbit: registry already has an anchor")

	// ErrDegenerateDistance indicates two bodies at the same position.
	ErrDegenerateDistance = errors.New("orbit: bodies share a position (zero distance)")

	// ErrNumericOverflow indicates a velocity or position left the representable range.
	ErrNumericOverflow = errors.New("orbit: state diverged (NaN or Inf)")

	// ErrInvalidTimestep indicates dt <= 0 or not finite.
	ErrInvalidTimestep = errors.New("orbit: timestep must be positive")

	// ErrInvalidGravity indicates G <= 0 or not finite.
	ErrInvalidGravity = errors.New("orbit: gravitational constant must be positive")

	// ErrIncompatibleScheme indicates leapfrog combined with sequential ordering.
	ErrIncompatibleScheme = errors.New("orbit: leapfrog requires snapshot ordering")
)

// StepError wraps an engine failure with the tick and bodies involved.
// Other is -1 when the failure concerns a single body.
type StepError struct {
	Tick    int
	Body    int
	Other   int
	Wrapped error
}

func (e *StepError) Error() string {
	if e.Other >= 0 {
		return fmt.Sprintf("tick %d: bodies %d and %d: %v", e.Tick, e.Body, e.Other, e.Wrapped)
	}
	return fmt.Sprintf("tick %d: body %d: %v", e.Tick, e.Body, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
