package sim

import "errors"

// Contract violations raised by the simulation core. They are never returned
// from the tick loop: the core panics with an error wrapping one of these, so a
// caller that recovers can still classify the failure with errors.Is.
var (
	// ErrCapacityExceeded: a container operation was asked to move a volume
	// outside its current physical bound.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInvalidState: an operation was invoked in a state that forbids it,
	// e.g. starting a delivery on a moving tanker.
	ErrInvalidState = errors.New("invalid state")

	// ErrDuplicateAssignment: a station already has an in-flight order of that kind.
	ErrDuplicateAssignment = errors.New("duplicate assignment")

	// ErrNoCompatibleFuel: a fuel kind is absent from the station's catalog.
	ErrNoCompatibleFuel = errors.New("no compatible fuel")
)
