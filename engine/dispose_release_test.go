//go:build !debug

package engine

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/lixenwraith/brickstorm/parameter"
	"github.com/lixenwraith/brickstorm/simulation"
)

func TestUseAfterDisposeReturnsError(t *testing.T) {
	c, _, _ := newTestCoordinator(t, DefaultConfig())
	f := c.AddPart(cubePart(mgl64.Vec3{0, 0, parameter.FloorThreshold - 1}, true))
	c.sweep()
	c.worldCh.Requests()

	if err := c.Unanchor(f); errors.Cause(err) != ErrUseAfterDispose {
		t.Errorf("Unanchor err = %v", err)
	}
	if err := c.ApplyImpulse(f, mgl64.Vec3{0, 1, 0}); errors.Cause(err) != ErrUseAfterDispose {
		t.Errorf("ApplyImpulse err = %v", err)
	}
	for _, m := range c.worldCh.Requests() {
		if m.Kind == simulation.KindUnanchor || m.Kind == simulation.KindApplyImpulse {
			t.Errorf("disposed facade targeted by %s", m.Kind)
		}
	}
	if !f.Anchored() {
		t.Error("disposed facade changed state")
	}
}
