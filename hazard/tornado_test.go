package hazard

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/brickstorm/engine"
	"github.com/lixenwraith/brickstorm/status"
)

type impulse struct {
	uuid uint64
	dv   mgl64.Vec3
}

// recordingTarget forwards to a real coordinator and records what the tornado asked for
type recordingTarget struct {
	*engine.Coordinator
	unanchored []uint64
	impulses   []impulse
}

func (r *recordingTarget) Unanchor(f *engine.Facade) error {
	r.unanchored = append(r.unanchored, f.UUID())
	return r.Coordinator.Unanchor(f)
}

func (r *recordingTarget) ApplyImpulse(f *engine.Facade, dv mgl64.Vec3) error {
	r.impulses = append(r.impulses, impulse{f.UUID(), dv})
	return r.Coordinator.ApplyImpulse(f, dv)
}

func newTarget() *recordingTarget {
	clock := engine.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	c := engine.NewCoordinator(engine.DefaultConfig(), clock, status.NewRegistry(), log.New(io.Discard))
	return &recordingTarget{Coordinator: c}
}

func part(x, z float64) engine.PartSpec {
	return engine.PartSpec{
		Position: mgl64.Vec3{x, 1, z},
		Size:     mgl64.Vec3{1, 2, 3},
		Anchored: true,
	}
}

// stillConfig keeps the drift at the origin
func stillConfig() Config {
	cfg := DefaultConfig()
	cfg.Step = 0
	cfg.Jitter = 0
	return cfg
}

func TestIdleStepIsNoOp(t *testing.T) {
	target := newTarget()
	target.AddPart(part(0, 0))
	tor := New(stillConfig(), target, nil, log.New(io.Discard))

	for i := 0; i < 10; i++ {
		tor.Step()
	}
	if len(target.unanchored) != 0 || len(target.impulses) != 0 {
		t.Error("idle tornado touched bodies")
	}
	if tor.Spin() != 0 || tor.State() != StateIdle {
		t.Error("idle tornado advanced")
	}
}

func TestCaptureInsideRadius(t *testing.T) {
	target := newTarget()
	in := target.AddPart(part(10, 0)) // dist² 100 < 102
	out := target.AddPart(part(0, 10.1))
	reg := status.NewRegistry()
	tor := New(stillConfig(), target, reg, log.New(io.Discard))
	tor.Activate(6)

	var hooked []uint64
	tor.OnCapture(func(f *engine.Facade) { hooked = append(hooked, f.UUID()) })
	tor.Step()

	if len(target.unanchored) != 1 || target.unanchored[0] != in.UUID() {
		t.Fatalf("unanchored = %v, want [%d]", target.unanchored, in.UUID())
	}
	if in.Anchored() || !out.Anchored() {
		t.Error("anchor state wrong after capture")
	}

	// mass = volume = 6 once unanchored
	want := mgl64.Vec3{0, 9.82*6 + 2*6, 0}
	if len(target.impulses) != 1 || !target.impulses[0].dv.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("impulses = %v, want %v", target.impulses, want)
	}
	if len(hooked) != 1 || reg.Ints.Get(status.KeyCaptures).Load() != 1 {
		t.Error("capture not reported")
	}
}

func TestNoCaptureAtRadius(t *testing.T) {
	target := newTarget()
	target.AddPart(part(10, 0))
	cfg := stillConfig()
	cfg.CaptureRadiusSq = 100
	tor := New(cfg, target, nil, log.New(io.Discard))
	tor.Activate(0)
	tor.Step()

	if len(target.unanchored) != 0 {
		t.Error("body at exactly the capture radius must not be captured")
	}
}

func TestCaptureIgnoresHeight(t *testing.T) {
	target := newTarget()
	target.AddPart(engine.PartSpec{Position: mgl64.Vec3{3, 500, 3}, Size: mgl64.Vec3{1, 1, 1}})
	tor := New(stillConfig(), target, nil, log.New(io.Discard))
	tor.Activate(0)
	tor.Step()

	if len(target.impulses) != 1 {
		t.Error("horizontal distance must ignore Y")
	}
}

func TestRepeatedCaptureUnanchorsOnce(t *testing.T) {
	target := newTarget()
	f := target.AddPart(part(1, 1))
	tor := New(stillConfig(), target, nil, log.New(io.Discard))
	tor.Activate(0)
	tor.Step()
	tor.Step()

	if len(target.impulses) != 2 {
		t.Errorf("impulses = %d, want one per tick", len(target.impulses))
	}
	if f.Anchored() || f.Mass() != 6 {
		t.Errorf("mass = %v, want 6", f.Mass())
	}
}

func TestDriftFollowsDirection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	tor := New(cfg, newTarget(), nil, log.New(io.Discard))
	tor.Activate(6)

	const ticks = 1000
	for i := 0; i < ticks; i++ {
		tor.Step()
	}

	pos := tor.Position()
	if pos.Y() != 0 {
		t.Errorf("drift left the ground plane: %v", pos)
	}
	// Jitter is bounded per tick, so the along-direction component is within ±ticks·0.05·√2 of ticks·step
	along := pos.Dot(tor.Direction())
	if math.Abs(along-ticks*cfg.Step) > ticks*cfg.Jitter {
		t.Errorf("along = %v, want near %v", along, ticks*cfg.Step)
	}
	if math.Abs(tor.Spin()-ticks*0.01) > 1e-9 {
		t.Errorf("spin = %v", tor.Spin())
	}
	if tor.Marker().Y() != 6 {
		t.Errorf("marker = %v", tor.Marker())
	}
}

func TestAttractPullsTowardFunnel(t *testing.T) {
	target := newTarget()
	target.AddPart(part(5, 0))
	cfg := stillConfig()
	cfg.Model = ModelAttract
	tor := New(cfg, target, nil, log.New(io.Discard))
	tor.Activate(6)
	tor.Step()

	if len(target.impulses) != 1 {
		t.Fatal("attract model did not capture")
	}
	dv := target.impulses[0].dv
	if dv.X() >= 0 || dv.Y() <= 0 {
		t.Errorf("dv = %v, want pull toward -X and up", dv)
	}
}

func TestDisposedFacadeSkipped(t *testing.T) {
	target := newTarget()
	target.AddPart(engine.PartSpec{Position: mgl64.Vec3{0, 0, -400}, Size: mgl64.Vec3{1, 1, 1}})
	target.Tick() // sweeps the facade below the floor
	tor := New(stillConfig(), target, nil, log.New(io.Discard))
	tor.Activate(0)
	tor.Step()

	if len(target.impulses) != 0 {
		t.Error("disposed facade captured")
	}
}

func TestParseModel(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Model
		ok   bool
	}{
		{"", ModelLift, true},
		{"lift", ModelLift, true},
		{"attract", ModelAttract, true},
		{"vortex", 0, false},
	} {
		got, err := ParseModel(tc.in)
		if (err == nil) != tc.ok || (tc.ok && got != tc.want) {
			t.Errorf("ParseModel(%q) = %v, %v", tc.in, got, err)
		}
	}
}
