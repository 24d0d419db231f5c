package simulation

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/lixenwraith/brickstorm/parameter"
	"github.com/lixenwraith/brickstorm/physics"
	"github.com/lixenwraith/brickstorm/vmath"
)

// ErrMissingController is the error for stepping or pushing the player before a controller exists
var ErrMissingController = errors.New("player controller missing")

// ControllerSpec returns the stock player cylinder at pos
func ControllerSpec(pos mgl64.Vec3) physics.BodySpec {
	return physics.BodySpec{
		Mass:        parameter.PlayerMass,
		Position:    pos,
		Orientation: mgl64.QuatIdent(),
		Shape:       physics.Cylinder(parameter.PlayerRadius, parameter.PlayerHeight),
	}
}

// PlayerSim owns the player physics.World: one upright controller plus fixed mirrors of world bodies
type PlayerSim struct {
	actor
	world      *physics.World
	controller *physics.Body
	mirrors    map[uint64]uint64 // World uuid -> local body id
}

// NewPlayerSim creates the player simulation bound to ch; call Start to run it
func NewPlayerSim(ch *Channel, opts physics.Options, logger *log.Logger) *PlayerSim {
	s := &PlayerSim{
		world:   physics.NewWorld(opts),
		mirrors: make(map[uint64]uint64),
	}
	s.actor = newActor(ch, logger, s.Handle)
	return s
}

// Start runs the simulation goroutine until ctx is cancelled
func (s *PlayerSim) Start(ctx context.Context) {
	s.start(ctx)
}

// Handle processes one message synchronously
// Only the simulation goroutine may call it once Start has been called
// A step without a controller panics
func (s *PlayerSim) Handle(m Message) {
	switch m.Kind {
	case KindAddController:
		s.addController(m.Body)

	case KindAddMirror:
		s.addMirror(m.UUID, m.Body)

	case KindUpdateMirror:
		id, ok := s.mirrors[m.UUID]
		if !ok {
			s.log.Debug("mirror update for unknown uuid", "uuid", m.UUID)
			return
		}
		if err := s.world.SetTransform(id, m.Vector, m.Rotation); err != nil {
			s.log.Warn("mirror update failed", "uuid", m.UUID, "err", err)
		}

	case KindRemove:
		id, ok := s.mirrors[m.UUID]
		if !ok {
			s.log.Warn("remove ignored", "uuid", m.UUID, "err", physics.ErrUnknownID)
			return
		}
		delete(s.mirrors, m.UUID)
		if err := s.world.Remove(id); err != nil {
			s.log.Warn("remove failed", "uuid", m.UUID, "err", err)
		}

	case KindApplyImpulse:
		if s.controller == nil {
			s.log.Warn("impulse ignored", "err", ErrMissingController)
			return
		}
		if err := s.world.ApplyImpulse(s.controller.ID, m.Vector); err != nil {
			s.log.Warn("impulse ignored", "err", err)
		}

	case KindStep:
		s.step(m)

	default:
		s.log.Warn("unexpected message", "kind", m.Kind)
	}
}

func (s *PlayerSim) addController(spec physics.BodySpec) {
	if s.controller != nil {
		s.log.Warn("second controller ignored", "id", s.controller.ID)
		return
	}
	spec.ID = 0
	id, err := s.world.Add(spec)
	if err != nil {
		s.log.Warn("controller rejected", "err", err)
		return
	}
	b, _ := s.world.Body(id)
	b.AllowSleep = false
	s.controller = b
}

func (s *PlayerSim) addMirror(uuid uint64, spec physics.BodySpec) {
	if _, exists := s.mirrors[uuid]; exists {
		s.log.Warn("mirror ignored", "uuid", uuid, "err", physics.ErrDuplicateID)
		return
	}
	spec.ID = 0
	spec.Mass = 0
	id, err := s.world.Add(spec)
	if err != nil {
		s.log.Warn("mirror rejected", "uuid", uuid, "err", err)
		return
	}
	s.mirrors[uuid] = id
}

// step keeps the controller upright: only yaw survives before and after integration
func (s *PlayerSim) step(m Message) {
	c := s.controller
	if c == nil {
		panic(errors.Wrap(ErrMissingController, "player step"))
	}

	c.AngularVelocity = mgl64.Vec3{0, c.AngularVelocity.Y(), 0}
	c.Orientation = vmath.YawOnly(c.Orientation)

	s.world.Step(m.Dt)

	c.AngularVelocity = mgl64.Vec3{}
	c.Orientation = vmath.YawOnly(c.Orientation)

	s.ch.Post(Message{Kind: KindUpdate, Seq: m.Seq, Dt: m.Dt, Vector: c.Position})
}

// World exposes the owned world for tests driving Handle directly
func (s *PlayerSim) World() *physics.World {
	return s.world
}

// Controller returns the controller body, nil before addController
func (s *PlayerSim) Controller() *physics.Body {
	return s.controller
}

// MirrorCount returns the number of mirrored world bodies
func (s *PlayerSim) MirrorCount() int {
	return len(s.mirrors)
}
