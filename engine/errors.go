package engine

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/brickstorm/simulation"
)

var (
	// ErrUseAfterDispose is returned when a physics operation targets a disposed facade
	ErrUseAfterDispose = errors.New("facade disposed")

	// ErrMissingController is returned for player operations issued before SpawnPlayer
	ErrMissingController = simulation.ErrMissingController
)

// useAfterDispose reports a disposed target; debug builds treat it as a programming error
func useAfterDispose(op string, f *Facade) error {
	err := errors.Wrapf(ErrUseAfterDispose, "%s uuid %d", op, f.UUID())
	if debugBuild {
		panic(err)
	}
	return err
}
