package engine

import (
	"context"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/lixenwraith/brickstorm/parameter"
	"github.com/lixenwraith/brickstorm/physics"
	"github.com/lixenwraith/brickstorm/simulation"
	"github.com/lixenwraith/brickstorm/status"
)

// uuidCounter hands out facade uuids, unique for the process lifetime
var uuidCounter atomic.Uint64

// TransformUpdate is a facade transform applied from a world batch
type TransformUpdate struct {
	UUID     uint64
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Config tunes the coordinator and both simulations
type Config struct {
	World  physics.Options
	Player physics.Options

	// FloorAxis is "x", "y" or "z"; a facade whose coordinate on it drops below FloorThreshold is disposed
	FloorAxis      string
	FloorThreshold float64
}

// DefaultConfig returns stock simulation options and the disposal floor
func DefaultConfig() Config {
	return Config{
		World:          physics.DefaultOptions(),
		Player:         physics.DefaultOptions(),
		FloorAxis:      parameter.FloorAxis,
		FloorThreshold: parameter.FloorThreshold,
	}
}

// Coordinator owns the facades and both simulation channels
// All methods are called from a single goroutine (the frame loop); none of them block
type Coordinator struct {
	cfg   Config
	clock Clock
	log   *log.Logger

	worldCh   *simulation.Channel
	playerCh  *simulation.Channel
	worldSim  *simulation.WorldSim
	playerSim *simulation.PlayerSim

	worldState  *ChannelState
	playerState *ChannelState

	facades map[uint64]*Facade
	active  []*Facade

	hasController bool
	playerPos     mgl64.Vec3
	hasPlayerPos  bool

	onTransform func([]TransformUpdate)
	onDispose   func(uuid uint64)

	floorAxis int

	bodies     *atomic.Int64
	disposals  *atomic.Int64
	staleDrops *atomic.Int64
	unanchored *atomic.Int64

	worldQueued  *atomic.Int64
	playerQueued *atomic.Int64

	cancel  context.CancelFunc
	started bool
}

// NewCoordinator builds the coordinator and both simulations; call Start to run them
func NewCoordinator(cfg Config, clock Clock, reg *status.Registry, logger *log.Logger) *Coordinator {
	if clock == nil {
		clock = NewMonotonicClock()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	if logger == nil {
		logger = log.Default()
	}

	now := clock.Now()
	c := &Coordinator{
		cfg:      cfg,
		clock:    clock,
		log:      logger.WithPrefix("coordinator"),
		worldCh:  simulation.NewChannel("world"),
		playerCh: simulation.NewChannel("player"),
		facades:  make(map[uint64]*Facade),

		bodies:     reg.Ints.Get(status.KeyBodies),
		disposals:  reg.Ints.Get(status.KeyDisposals),
		staleDrops: reg.Ints.Get(status.KeyStaleDrops),
		unanchored: reg.Ints.Get(status.KeyUnanchored),

		worldQueued:  reg.Ints.Get(status.KeyWorldQueued),
		playerQueued: reg.Ints.Get(status.KeyPlayerQueued),
	}

	c.worldSim = simulation.NewWorldSim(c.worldCh, cfg.World, logger.WithPrefix("world"))
	c.playerSim = simulation.NewPlayerSim(c.playerCh, cfg.Player, logger.WithPrefix("player"))

	c.worldState = NewChannelState("world", now, reg, ChannelKeys{
		Issued: status.KeyWorldStepsIssued, Skipped: status.KeyWorldStepsSkipped,
		InFlight: status.KeyWorldInFlight, StepDt: status.KeyWorldStepDt, PeakDt: status.KeyWorldPeakDt,
	}, c.log)
	c.playerState = NewChannelState("player", now, reg, ChannelKeys{
		Issued: status.KeyPlayerStepsIssued, Skipped: status.KeyPlayerStepsSkipped,
		InFlight: status.KeyPlayerInFlight, StepDt: status.KeyPlayerStepDt, PeakDt: status.KeyPlayerPeakDt,
	}, c.log)

	switch cfg.FloorAxis {
	case "x":
		c.floorAxis = 0
	case "y":
		c.floorAxis = 1
	default:
		c.floorAxis = 2
	}
	return c
}

// Start launches both simulation goroutines
func (c *Coordinator) Start(ctx context.Context) {
	if c.started {
		return
	}
	ctx, c.cancel = context.WithCancel(ctx)
	c.worldSim.Start(ctx)
	c.playerSim.Start(ctx)
	c.started = true
}

// Close stops both simulations and waits for their goroutines to exit
// In-flight steps are abandoned
func (c *Coordinator) Close() {
	if !c.started {
		return
	}
	c.cancel()
	<-c.worldSim.Done()
	<-c.playerSim.Done()
	c.started = false
}

// OnTransform registers the hook receiving each applied world batch
func (c *Coordinator) OnTransform(fn func([]TransformUpdate)) { c.onTransform = fn }

// OnDispose registers the hook notified once per disposed facade
func (c *Coordinator) OnDispose(fn func(uuid uint64)) { c.onDispose = fn }

// AddPart creates a facade and its body in both simulations
func (c *Coordinator) AddPart(spec PartSpec) *Facade {
	uuid := uuidCounter.Add(1)
	f := newFacade(uuid, spec)
	c.facades[uuid] = f
	c.active = append(c.active, f)
	c.bodies.Store(int64(len(c.active)))

	body := f.bodySpec()
	c.worldCh.Send(simulation.AddMessage(uuid, body))
	c.playerCh.Send(simulation.AddMirrorMessage(uuid, body))
	return f
}

// SpawnPlayer adds the player controller at pos; later calls are ignored
func (c *Coordinator) SpawnPlayer(pos mgl64.Vec3) {
	if c.hasController {
		c.log.Warn("player already spawned")
		return
	}
	c.hasController = true
	c.playerCh.Send(simulation.AddControllerMessage(simulation.ControllerSpec(pos)))
}

// Unanchor makes an anchored facade dynamic; it happens at most once per facade
func (c *Coordinator) Unanchor(f *Facade) error {
	if f.Disposed() {
		return useAfterDispose("unanchor", f)
	}
	if !f.unanchor() {
		return nil
	}
	c.unanchored.Add(1)
	c.worldCh.Send(simulation.UnanchorMessage(f.UUID()))
	return nil
}

// ApplyImpulse adds dv to the facade's world body velocity
func (c *Coordinator) ApplyImpulse(f *Facade, dv mgl64.Vec3) error {
	if f.Disposed() {
		return useAfterDispose("impulse", f)
	}
	c.worldCh.Send(simulation.ImpulseMessage(f.UUID(), dv))
	return nil
}

// PlayerImpulse adds dv to the controller velocity
func (c *Coordinator) PlayerImpulse(dv mgl64.Vec3) error {
	if !c.hasController {
		return errors.Wrap(ErrMissingController, "player impulse")
	}
	c.playerCh.Send(simulation.ImpulseMessage(0, dv))
	return nil
}

// Tick runs one coordination pass: apply responses, dispose fallen facades, then issue gated steps
func (c *Coordinator) Tick() error {
	now := c.clock.Now()
	defer c.publishQueues()

	c.drainWorld()
	c.drainPlayer()
	c.sweep()

	if dt, seq, ok := c.worldState.TryBegin(now); ok {
		c.worldCh.Send(simulation.StepMessage(seq, dt))
	}

	if !c.hasController {
		return errors.Wrap(ErrMissingController, "player step")
	}
	if dt, seq, ok := c.playerState.TryBegin(now); ok {
		c.playerCh.Send(simulation.StepMessage(seq, dt))
	}
	return nil
}

// publishQueues records requests not yet picked up by each simulation
func (c *Coordinator) publishQueues() {
	world, _ := c.worldCh.Pending()
	player, _ := c.playerCh.Pending()
	c.worldQueued.Store(int64(world))
	c.playerQueued.Store(int64(player))
}

func (c *Coordinator) drainWorld() {
	for _, m := range c.worldCh.Receive() {
		if m.Kind != simulation.KindUpdate {
			c.log.Warn("unexpected world response", "kind", m.Kind)
			continue
		}

		applied := make([]TransformUpdate, 0, len(m.Updates))
		for _, u := range m.Updates {
			f, ok := c.facades[u.ID]
			if !ok || f.Disposed() {
				c.staleDrops.Add(1)
				c.log.Warn("update dropped for unknown or disposed body", "uuid", u.ID)
				continue
			}
			f.applyTransform(u.Position, u.Orientation)
			applied = append(applied, TransformUpdate{UUID: u.ID, Position: u.Position, Rotation: u.Orientation})
			c.playerCh.Send(simulation.UpdateMirrorMessage(u.ID, u.Position, u.Orientation))
		}
		c.worldState.Complete(m.Seq)

		if c.onTransform != nil && len(applied) > 0 {
			c.onTransform(applied)
		}
	}
}

func (c *Coordinator) drainPlayer() {
	for _, m := range c.playerCh.Receive() {
		if m.Kind != simulation.KindUpdate {
			c.log.Warn("unexpected player response", "kind", m.Kind)
			continue
		}
		c.playerPos = m.Vector
		c.hasPlayerPos = true
		c.playerState.Complete(m.Seq)
	}
}

// sweep disposes facades below the floor, in place over the active list
func (c *Coordinator) sweep() {
	kept := c.active[:0]
	for _, f := range c.active {
		if f.position[c.floorAxis] >= c.cfg.FloorThreshold {
			kept = append(kept, f)
			continue
		}
		c.dispose(f)
	}
	for i := len(kept); i < len(c.active); i++ {
		c.active[i] = nil
	}
	c.active = kept
	c.bodies.Store(int64(len(c.active)))
}

func (c *Coordinator) dispose(f *Facade) {
	f.dispose()
	delete(c.facades, f.UUID())
	c.disposals.Add(1)
	c.worldCh.Send(simulation.RemoveMessage(f.UUID()))
	c.playerCh.Send(simulation.RemoveMessage(f.UUID()))
	c.log.Debug("disposed", "uuid", f.UUID(), "position", f.Position())
	if c.onDispose != nil {
		c.onDispose(f.UUID())
	}
}

// Facades returns the live, non-disposed facades; the slice is owned by the coordinator
func (c *Coordinator) Facades() []*Facade {
	return c.active
}

// Facade looks up a live facade by uuid
func (c *Coordinator) Facade(uuid uint64) (*Facade, bool) {
	f, ok := c.facades[uuid]
	return f, ok
}

// PlayerPosition returns the last reported controller position
func (c *Coordinator) PlayerPosition() (mgl64.Vec3, bool) {
	return c.playerPos, c.hasPlayerPos
}

// InFlight reports the outstanding-step flags of the world and player channels
func (c *Coordinator) InFlight() (world, player bool) {
	return c.worldState.InFlight(), c.playerState.InFlight()
}
