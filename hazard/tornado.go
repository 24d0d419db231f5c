package hazard

import (
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/lixenwraith/brickstorm/engine"
	"github.com/lixenwraith/brickstorm/parameter"
	"github.com/lixenwraith/brickstorm/physics"
	"github.com/lixenwraith/brickstorm/status"
	"github.com/lixenwraith/brickstorm/vmath"
)

// Target is the part of the coordinator the tornado drives
type Target interface {
	Facades() []*engine.Facade
	Unanchor(f *engine.Facade) error
	ApplyImpulse(f *engine.Facade, dv mgl64.Vec3) error
}

// Model selects how a captured body is pushed
type Model int

const (
	// ModelLift adds one tick of gravity plus a constant lift, scaled by mass
	ModelLift Model = iota
	// ModelAttract pulls toward the funnel with an inverse-square acceleration
	ModelAttract
)

func (m Model) String() string {
	switch m {
	case ModelLift:
		return "lift"
	case ModelAttract:
		return "attract"
	default:
		return "unknown"
	}
}

// ParseModel maps a config name to a Model
func ParseModel(s string) (Model, error) {
	switch s {
	case "", "lift":
		return ModelLift, nil
	case "attract":
		return ModelAttract, nil
	}
	return 0, errors.Errorf("unknown tornado model %q", s)
}

// State is the tornado lifecycle
type State int

const (
	StateIdle State = iota
	StateActive
)

func (s State) String() string {
	if s == StateActive {
		return "active"
	}
	return "idle"
}

// Config tunes drift and capture
type Config struct {
	Model           Model
	CaptureRadiusSq float64
	Step            float64 // Drift per tick along the fixed direction
	Jitter          float64 // Full width of the per-axis jitter
	Lift            float64
	Gravity         float64 // Magnitude cancelled by the lift model
	Dt              float64 // Nominal tick length for the attract model
	Seed            uint64
}

func DefaultConfig() Config {
	return Config{
		Model:           ModelLift,
		CaptureRadiusSq: parameter.TornadoCaptureRadiusSq,
		Step:            parameter.TornadoStep,
		Jitter:          parameter.TornadoJitter,
		Lift:            parameter.TornadoLift,
		Gravity:         parameter.GravityMagnitude,
		Dt:              parameter.FrameDeltaSeconds,
		Seed:            1,
	}
}

// Tornado drifts across the ground plane and throws every body it passes over
// Driven from the frame loop, the same goroutine that owns the coordinator
type Tornado struct {
	cfg    Config
	target Target
	log    *log.Logger
	rng    *vmath.FastRand

	state      State
	direction  mgl64.Vec3
	position   mgl64.Vec3 // Drift position on the ground plane
	halfHeight float64
	spin       float64
	ticks      uint64

	onCapture func(f *engine.Facade)

	captures *atomic.Int64
	mode     *status.AtomicString
}

// New builds an idle tornado at the origin with a random fixed drift direction
func New(cfg Config, target Target, reg *status.Registry, logger *log.Logger) *Tornado {
	if reg == nil {
		reg = status.NewRegistry()
	}
	if logger == nil {
		logger = log.Default()
	}
	rng := vmath.NewFastRand(cfg.Seed)
	t := &Tornado{
		cfg:       cfg,
		target:    target,
		log:       logger.WithPrefix("tornado"),
		rng:       rng,
		direction: rng.HorizontalDir(),
		captures:  reg.Ints.Get(status.KeyCaptures),
		mode:      reg.Strings.Get(status.KeyTornadoMode),
	}
	t.mode.Store(StateIdle.String())
	return t
}

// Activate arms the tornado once its marker is ready; halfHeight lifts the marker onto the ground
func (t *Tornado) Activate(halfHeight float64) {
	if t.state == StateActive {
		return
	}
	t.halfHeight = halfHeight
	t.state = StateActive
	prev := t.mode.Swap(StateActive.String())
	t.log.Info("tornado active", "from", prev, "model", t.cfg.Model, "direction", t.direction)
}

// OnCapture registers a hook called for every captured body
func (t *Tornado) OnCapture(fn func(f *engine.Facade)) { t.onCapture = fn }

// Step advances one frame: drift, capture, then spin the marker
func (t *Tornado) Step() {
	if t.state != StateActive {
		return
	}

	jitter := mgl64.Vec3{t.rng.Centered(t.cfg.Jitter), 0, t.rng.Centered(t.cfg.Jitter)}
	t.position = t.position.Add(t.direction.Mul(t.cfg.Step)).Add(jitter)

	for _, f := range t.target.Facades() {
		if f.Disposed() {
			continue
		}
		if vmath.HorizontalDistSq(f.Position(), t.position) >= t.cfg.CaptureRadiusSq {
			continue
		}
		t.capture(f)
	}

	t.ticks++
	t.spin = float64(t.ticks) * parameter.TornadoSpinRate
}

func (t *Tornado) capture(f *engine.Facade) {
	if err := t.target.Unanchor(f); err != nil {
		t.log.Debug("capture skipped", "uuid", f.UUID(), "err", err)
		return
	}

	var dv mgl64.Vec3
	switch t.cfg.Model {
	case ModelAttract:
		accel := physics.GravitationalAccel(f.Position(), t.Marker(), parameter.TornadoAttractMass,
			parameter.TornadoAttractG, parameter.TornadoAttractMinDistSq)
		dv = accel.Add(mgl64.Vec3{0, t.cfg.Gravity, 0}).Mul(t.cfg.Dt)
	default:
		m := f.Mass()
		dv = mgl64.Vec3{0, t.cfg.Gravity*m + t.cfg.Lift*m, 0}
	}

	if err := t.target.ApplyImpulse(f, dv); err != nil {
		t.log.Debug("capture impulse rejected", "uuid", f.UUID(), "err", err)
		return
	}
	t.captures.Add(1)
	t.log.Debug("pulling", "uuid", f.UUID())
	if t.onCapture != nil {
		t.onCapture(f)
	}
}

func (t *Tornado) State() State { return t.state }

// Position is the drift position on the ground plane
func (t *Tornado) Position() mgl64.Vec3 { return t.position }

// Marker is the visual center, lifted by the marker half height
func (t *Tornado) Marker() mgl64.Vec3 {
	return t.position.Add(mgl64.Vec3{0, t.halfHeight, 0})
}

// Spin is the marker rotation angle in radians
func (t *Tornado) Spin() float64 { return t.spin }

func (t *Tornado) Direction() mgl64.Vec3 { return t.direction }
