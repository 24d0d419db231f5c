package physics

import "github.com/pkg/errors"

var (
	// ErrUnknownID is returned when a message targets a body the simulation does not hold
	ErrUnknownID = errors.New("unknown body id")
	// ErrInvalidShape is returned for operations that require a different primitive, or for degenerate dimensions
	ErrInvalidShape = errors.New("invalid shape")
	// ErrDuplicateID is returned when adding a body under an id already in use
	ErrDuplicateID = errors.New("duplicate body id")
	// ErrFixedBody is returned when a velocity change targets a mass-0 body
	ErrFixedBody = errors.New("body is fixed")
)
