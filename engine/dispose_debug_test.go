//go:build debug

package engine

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/lixenwraith/brickstorm/parameter"
)

func TestUseAfterDisposePanicsInDebug(t *testing.T) {
	c, _, _ := newTestCoordinator(t, DefaultConfig())
	f := c.AddPart(cubePart(mgl64.Vec3{0, 0, parameter.FloorThreshold - 1}, true))
	c.sweep()

	defer func() {
		err, ok := recover().(error)
		if !ok || errors.Cause(err) != ErrUseAfterDispose {
			t.Errorf("recovered %v, want %v", err, ErrUseAfterDispose)
		}
	}()
	c.ApplyImpulse(f, mgl64.Vec3{0, 1, 0})
}
