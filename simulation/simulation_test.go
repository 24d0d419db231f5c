package simulation

import (
	"context"
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/lixenwraith/brickstorm/core"
	"github.com/lixenwraith/brickstorm/parameter"
	"github.com/lixenwraith/brickstorm/physics"
	"github.com/lixenwraith/brickstorm/vmath"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func boxSpec(pos mgl64.Vec3, mass float64) physics.BodySpec {
	return physics.BodySpec{Mass: mass, Position: pos, Shape: physics.Box(mgl64.Vec3{0.5, 0.5, 0.5})}
}

func waitResponse(t *testing.T, ch *Channel) []Message {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if msgs := ch.Receive(); len(msgs) > 0 {
			return msgs
		}
		select {
		case <-ch.Responses():
		case <-deadline:
			t.Fatal("timed out waiting for simulation response")
		}
	}
}

func TestWorldSimStepBatch(t *testing.T) {
	ch := NewChannel("world")
	sim := NewWorldSim(ch, physics.DefaultOptions(), quietLogger())

	sim.Handle(AddMessage(11, boxSpec(mgl64.Vec3{0, 0, 0}, 0)))
	sim.Handle(AddMessage(12, boxSpec(mgl64.Vec3{0, 10, 0}, 1)))
	sim.Handle(StepMessage(1, parameter.FixedStep))

	resp := ch.Receive()
	if len(resp) != 1 || resp[0].Kind != KindUpdate || resp[0].Seq != 1 {
		t.Fatalf("response = %+v", resp)
	}
	if len(resp[0].Updates) != 2 {
		t.Fatalf("first batch should report both new bodies, got %d", len(resp[0].Updates))
	}

	sim.Handle(StepMessage(2, parameter.FixedStep))
	resp = ch.Receive()
	if len(resp[0].Updates) != 1 || resp[0].Updates[0].ID != 12 {
		t.Errorf("second batch = %+v, want only uuid 12", resp[0].Updates)
	}
}

func TestWorldSimBadRequestsAreNoOps(t *testing.T) {
	ch := NewChannel("world")
	sim := NewWorldSim(ch, physics.DefaultOptions(), quietLogger())
	sim.Handle(AddMessage(1, physics.BodySpec{Shape: physics.Sphere(1)}))

	sim.Handle(ImpulseMessage(99, mgl64.Vec3{1, 0, 0}))
	sim.Handle(UnanchorMessage(99))
	sim.Handle(UnanchorMessage(1)) // Sphere: invalid shape
	sim.Handle(ImpulseMessage(1, mgl64.Vec3{1, 0, 0}))
	sim.Handle(RemoveMessage(99))
	sim.Handle(AddMessage(1, physics.BodySpec{Shape: physics.Sphere(1)}))
	sim.Handle(Message{Kind: KindUpdateMirror, UUID: 1})

	if sim.World().Len() != 1 {
		t.Errorf("world has %d bodies, want 1", sim.World().Len())
	}
	b, _ := sim.World().Body(1)
	if !b.IsStatic() || b.Velocity != (mgl64.Vec3{}) {
		t.Error("fixed sphere was modified")
	}
	if msgs := ch.Receive(); msgs != nil {
		t.Errorf("errors must not cross the channel, got %+v", msgs)
	}
}

func TestWorldSimUnanchorThenImpulse(t *testing.T) {
	ch := NewChannel("world")
	sim := NewWorldSim(ch, physics.DefaultOptions(), quietLogger())
	sim.Handle(AddMessage(5, physics.BodySpec{Position: mgl64.Vec3{0, 3, 0}, Shape: physics.Box(mgl64.Vec3{1, 1, 1})}))

	sim.Handle(UnanchorMessage(5))
	b, _ := sim.World().Body(5)
	m := b.Mass()
	if m != 8 {
		t.Fatalf("mass = %v, want 8", m)
	}
	lift := mgl64.Vec3{0, parameter.GravityMagnitude*m + parameter.TornadoLift*m, 0}
	sim.Handle(ImpulseMessage(5, lift))
	if b.Velocity.Y() != lift.Y() {
		t.Errorf("vy = %v, want %v", b.Velocity.Y(), lift.Y())
	}
}

func TestWorldSimActorLoop(t *testing.T) {
	ch := NewChannel("world")
	sim := NewWorldSim(ch, physics.DefaultOptions(), quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	sim.Start(ctx)

	ch.Send(AddMessage(3, boxSpec(mgl64.Vec3{0, 20, 0}, 1)))
	ch.Send(StepMessage(1, parameter.FixedStep))

	resp := waitResponse(t, ch)
	if resp[0].Kind != KindUpdate || len(resp[0].Updates) != 1 || resp[0].Updates[0].ID != 3 {
		t.Fatalf("response = %+v", resp)
	}

	cancel()
	select {
	case <-sim.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("simulation goroutine did not stop")
	}
}

func TestPlayerSimControllerUpright(t *testing.T) {
	ch := NewChannel("player")
	sim := NewPlayerSim(ch, physics.DefaultOptions(), quietLogger())
	sim.Handle(AddControllerMessage(ControllerSpec(mgl64.Vec3{0, 10, 0})))

	c := sim.Controller()
	if c == nil || c.Mass() != parameter.PlayerMass || c.Shape.Kind != physics.ShapeCylinder {
		t.Fatalf("controller = %+v", c)
	}

	c.Orientation = vmath.EulerYXZToQuat(0.4, 1.0, -0.3)
	c.AngularVelocity = mgl64.Vec3{3, 1, -2}
	sim.Handle(StepMessage(1, parameter.FixedStep))

	up := c.Orientation.Rotate(vmath.AxisY)
	if !vmath.VecAlmostEqual(up, vmath.AxisY, 1e-9) {
		t.Errorf("controller tilted: up = %v", up)
	}
	if c.AngularVelocity != (mgl64.Vec3{}) {
		t.Errorf("angular velocity not cleared: %v", c.AngularVelocity)
	}

	resp := ch.Receive()
	if len(resp) != 1 || resp[0].Kind != KindUpdate || resp[0].Updates != nil {
		t.Fatalf("player response = %+v", resp)
	}
	if resp[0].Vector != c.Position {
		t.Errorf("reported position %v, want %v", resp[0].Vector, c.Position)
	}
	if c.Position.Y() >= 10 {
		t.Error("controller should fall under gravity")
	}
}

func TestPlayerSimSingleController(t *testing.T) {
	ch := NewChannel("player")
	sim := NewPlayerSim(ch, physics.DefaultOptions(), quietLogger())
	sim.Handle(AddControllerMessage(ControllerSpec(mgl64.Vec3{0, 10, 0})))
	first := sim.Controller()
	sim.Handle(AddControllerMessage(ControllerSpec(mgl64.Vec3{5, 10, 0})))

	if sim.Controller() != first || sim.World().Len() != 1 {
		t.Error("second controller must be ignored")
	}
}

func TestPlayerSimImpulse(t *testing.T) {
	ch := NewChannel("player")
	sim := NewPlayerSim(ch, physics.DefaultOptions(), quietLogger())

	sim.Handle(ImpulseMessage(0, mgl64.Vec3{1, 0, 0})) // No controller: logged, ignored

	sim.Handle(AddControllerMessage(ControllerSpec(mgl64.Vec3{0, 10, 0})))
	sim.Handle(ImpulseMessage(0, mgl64.Vec3{0.5, 2, 0}))
	if v := sim.Controller().Velocity; v != (mgl64.Vec3{0.5, 2, 0}) {
		t.Errorf("velocity = %v", v)
	}
}

func TestPlayerSimMirrors(t *testing.T) {
	ch := NewChannel("player")
	sim := NewPlayerSim(ch, physics.DefaultOptions(), quietLogger())
	sim.Handle(AddControllerMessage(ControllerSpec(mgl64.Vec3{0, 10, 0})))
	sim.Handle(AddMirrorMessage(77, boxSpec(mgl64.Vec3{0, 0, 0}, 3)))

	if sim.MirrorCount() != 1 {
		t.Fatalf("mirrors = %d", sim.MirrorCount())
	}
	var mirror *physics.Body
	for _, b := range sim.World().Bodies() {
		if b != sim.Controller() {
			mirror = b
		}
	}
	if mirror.Mass() != 0 {
		t.Errorf("mirror mass = %v, want 0", mirror.Mass())
	}

	q := vmath.EulerYXZToQuat(0, 0.5, 0)
	sim.Handle(UpdateMirrorMessage(77, mgl64.Vec3{1, 2, 3}, q))
	if mirror.Position != (mgl64.Vec3{1, 2, 3}) || !vmath.QuatAlmostEqual(mirror.Orientation, q, 1e-12) {
		t.Errorf("mirror transform = %v %v", mirror.Position, mirror.Orientation)
	}

	sim.Handle(UpdateMirrorMessage(999, mgl64.Vec3{9, 9, 9}, q))
	sim.Handle(AddMirrorMessage(77, boxSpec(mgl64.Vec3{}, 1)))
	if sim.MirrorCount() != 1 || sim.World().Len() != 2 {
		t.Error("unknown or duplicate mirror changed the world")
	}

	for i := 0; i < 30; i++ {
		sim.Handle(StepMessage(uint64(i), parameter.FixedStep))
	}
	if mirror.Position != (mgl64.Vec3{1, 2, 3}) {
		t.Error("mirror moved during stepping")
	}

	sim.Handle(RemoveMessage(77))
	if sim.MirrorCount() != 0 || sim.World().Len() != 1 {
		t.Error("remove did not drop the mirror")
	}
}

func TestPlayerSimLandsOnMirror(t *testing.T) {
	ch := NewChannel("player")
	sim := NewPlayerSim(ch, physics.DefaultOptions(), quietLogger())
	sim.Handle(AddMirrorMessage(1, physics.BodySpec{Shape: physics.Box(mgl64.Vec3{20, 1, 20})}))
	sim.Handle(AddControllerMessage(ControllerSpec(mgl64.Vec3{0, 6, 0})))

	for i := 0; i < 300; i++ {
		sim.Handle(StepMessage(uint64(i), parameter.FixedStep))
	}
	y := sim.Controller().Position.Y()
	if math.Abs(y-2) > 0.1 {
		t.Errorf("controller rests at y = %v, want ≈ 2", y)
	}
}

func TestPlayerSimStepWithoutControllerPanics(t *testing.T) {
	ch := NewChannel("player")
	sim := NewPlayerSim(ch, physics.DefaultOptions(), quietLogger())

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || errors.Cause(err) != ErrMissingController {
			t.Errorf("recovered %v, want %v", r, ErrMissingController)
		}
	}()
	sim.Handle(StepMessage(1, parameter.FixedStep))
}

func TestPlayerSimPanicReachesCrashHandler(t *testing.T) {
	crashed := make(chan any, 1)
	core.SetCrashHook(func(r any, _ []byte) { crashed <- r })
	defer core.SetCrashHook(nil)

	ch := NewChannel("player")
	sim := NewPlayerSim(ch, physics.DefaultOptions(), quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sim.Start(ctx)

	ch.Send(StepMessage(1, parameter.FixedStep))

	select {
	case r := <-crashed:
		if err, ok := r.(error); !ok || errors.Cause(err) != ErrMissingController {
			t.Errorf("crash value = %v", r)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("panic did not reach the crash handler")
	}
	select {
	case <-sim.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("crashed simulation should close Done")
	}
}
