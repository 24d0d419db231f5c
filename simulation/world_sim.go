package simulation

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/lixenwraith/brickstorm/physics"
)

// WorldSim owns the world physics.World and answers step requests with update batches
type WorldSim struct {
	actor
	world *physics.World
}

// NewWorldSim creates the world simulation bound to ch; call Start to run it
func NewWorldSim(ch *Channel, opts physics.Options, logger *log.Logger) *WorldSim {
	s := &WorldSim{world: physics.NewWorld(opts)}
	s.actor = newActor(ch, logger, s.Handle)
	return s
}

// Start runs the simulation goroutine until ctx is cancelled
func (s *WorldSim) Start(ctx context.Context) {
	s.start(ctx)
}

// Handle processes one message synchronously
// Only the simulation goroutine may call it once Start has been called
func (s *WorldSim) Handle(m Message) {
	switch m.Kind {
	case KindAdd:
		spec := m.Body
		spec.ID = m.UUID
		if _, err := s.world.Add(spec); err != nil {
			s.log.Warn("add ignored", "uuid", m.UUID, "err", err)
		}

	case KindApplyImpulse:
		err := s.world.ApplyImpulse(m.UUID, m.Vector)
		switch errors.Cause(err) {
		case nil:
		case physics.ErrFixedBody:
			s.log.Debug("impulse on fixed body ignored", "uuid", m.UUID)
		default:
			s.log.Warn("impulse ignored", "uuid", m.UUID, "err", err)
		}

	case KindUnanchor:
		if err := s.world.Unanchor(m.UUID); err != nil {
			s.log.Warn("unanchor ignored", "uuid", m.UUID, "err", err)
		}

	case KindRemove:
		if err := s.world.Remove(m.UUID); err != nil {
			s.log.Warn("remove ignored", "uuid", m.UUID, "err", err)
		}

	case KindStep:
		updates := s.world.Step(m.Dt)
		s.ch.Post(Message{Kind: KindUpdate, Seq: m.Seq, Dt: m.Dt, Updates: updates})

	default:
		s.log.Warn("unexpected message", "kind", m.Kind)
	}
}

// World exposes the owned world for tests driving Handle directly
func (s *WorldSim) World() *physics.World {
	return s.world
}
