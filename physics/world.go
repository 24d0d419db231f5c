package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/lixenwraith/brickstorm/parameter"
	"github.com/lixenwraith/brickstorm/vmath"
)

// Update is one entry of a step batch: the new transform of a body that moved since its last report
type Update struct {
	ID          uint64
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// Options tunes a World; zero fields are not defaulted, use DefaultOptions as a base
type Options struct {
	Gravity        mgl64.Vec3
	FixedStep      float64
	MaxSubSteps    int
	Iterations     int
	Restitution    float64
	Friction       float64
	LinearDamping  float64
	AngularDamping float64
	SleepSpeed     float64
	SleepTime      float64
}

// DefaultOptions returns the stock tuning
func DefaultOptions() Options {
	return Options{
		Gravity:        mgl64.Vec3{0, parameter.GravityY, 0},
		FixedStep:      parameter.FixedStep,
		MaxSubSteps:    parameter.MaxSubSteps,
		Iterations:     parameter.SolverIterations,
		Restitution:    parameter.Restitution,
		Friction:       parameter.Friction,
		LinearDamping:  parameter.LinearDamping,
		AngularDamping: parameter.AngularDamping,
		SleepSpeed:     parameter.SleepSpeed,
		SleepTime:      parameter.SleepTime,
	}
}

// World is a single rigid-body simulation
// Not safe for concurrent use: exactly one goroutine owns a World
type World struct {
	opts  Options
	store *Store

	accumulator float64
	subSteps    uint64

	broad     sweepAndPrune
	narrow    narrowPhase
	solver    solver
	manifolds []manifold
	inertia   []manifoldInertia
}

// NewWorld creates an empty world
func NewWorld(opts Options) *World {
	if opts.FixedStep <= 0 {
		opts.FixedStep = parameter.FixedStep
	}
	if opts.MaxSubSteps <= 0 {
		opts.MaxSubSteps = parameter.MaxSubSteps
	}
	return &World{
		opts:  opts,
		store: NewStore(),
		solver: newSolver(opts.Iterations, opts.Restitution, opts.Friction),
	}
}

// SubSteps returns the number of fixed sub-steps taken so far
func (w *World) SubSteps() uint64 { return w.subSteps }

// Body returns the body for id
func (w *World) Body(id uint64) (*Body, bool) { return w.store.Get(id) }

// Bodies returns all bodies in insertion order; the slice is owned by the world
func (w *World) Bodies() []*Body { return w.store.Bodies() }

// Len returns the body count
func (w *World) Len() int { return w.store.Len() }

// Add inserts a body and returns its id; spec.ID 0 allocates one
func (w *World) Add(spec BodySpec) (uint64, error) {
	if !spec.Shape.valid() {
		return 0, errors.Wrapf(ErrInvalidShape, "add %s", spec.Shape.Kind)
	}
	id := spec.ID
	if id == 0 {
		id = w.store.allocID()
	} else if _, exists := w.store.Get(id); exists {
		return 0, errors.Wrapf(ErrDuplicateID, "add %d", id)
	}
	w.store.insert(newBody(id, spec))
	return id, nil
}

// Remove drops a body and wakes anything resting against it
func (w *World) Remove(id uint64) error {
	b, ok := w.store.Get(id)
	if !ok {
		return errors.Wrapf(ErrUnknownID, "remove %d", id)
	}
	w.wakeTouching(b)
	w.store.remove(id)
	return nil
}

// ApplyImpulse adds dv to the body velocity and wakes it
// Mass-0 bodies are left untouched and ErrFixedBody is returned
func (w *World) ApplyImpulse(id uint64, dv mgl64.Vec3) error {
	b, ok := w.store.Get(id)
	if !ok {
		return errors.Wrapf(ErrUnknownID, "impulse %d", id)
	}
	if b.IsStatic() {
		return errors.Wrapf(ErrFixedBody, "impulse %d", id)
	}
	b.Velocity = b.Velocity.Add(dv)
	b.Wake()
	return nil
}

// Unanchor turns a fixed box into a dynamic one with mass equal to its full volume
// Repeated calls on an already dynamic box change nothing
func (w *World) Unanchor(id uint64) error {
	b, ok := w.store.Get(id)
	if !ok {
		return errors.Wrapf(ErrUnknownID, "unanchor %d", id)
	}
	if b.Shape.Kind != ShapeBox {
		return errors.Wrapf(ErrInvalidShape, "unanchor %d: %s", id, b.Shape.Kind)
	}
	if !b.IsStatic() {
		return nil
	}
	b.SetMass(b.Shape.Volume())
	b.Wake()
	w.wakeTouching(b)
	return nil
}

// SetTransform overwrites a body transform; used for kinematic mirrors
func (w *World) SetTransform(id uint64, pos mgl64.Vec3, q mgl64.Quat) error {
	b, ok := w.store.Get(id)
	if !ok {
		return errors.Wrapf(ErrUnknownID, "transform %d", id)
	}
	b.SetTransform(pos, q)
	return nil
}

func (w *World) wakeTouching(b *Body) {
	for _, o := range w.store.Bodies() {
		if o != b && o.sleeping && aabbOverlap(b, o, parameter.BroadphaseMargin) {
			o.Wake()
		}
	}
}

// Step advances the world by dt using fixed sub-steps and returns the bodies whose transform changed
// Leftover time below one sub-step carries to the next call; time past MaxSubSteps is dropped
func (w *World) Step(dt float64) []Update {
	if dt > 0 {
		w.accumulator += dt
	}
	h := w.opts.FixedStep
	n := 0
	for w.accumulator >= h && n < w.opts.MaxSubSteps {
		w.StepFixed(h)
		w.accumulator -= h
		n++
	}
	w.accumulator = math.Mod(w.accumulator, h)
	return w.collectUpdates()
}

func (w *World) collectUpdates() []Update {
	var out []Update
	for _, b := range w.store.Bodies() {
		if !b.changedSinceReport() {
			continue
		}
		out = append(out, Update{ID: b.ID, Position: b.Position, Orientation: b.Orientation})
		b.markReported()
	}
	return out
}

// StepFixed runs exactly one sub-step of length h
func (w *World) StepFixed(h float64) {
	bodies := w.store.Bodies()
	w.subSteps++

	linDamp := vmath.ScaleDamp(w.opts.LinearDamping, h)
	angDamp := vmath.ScaleDamp(w.opts.AngularDamping, h)
	for _, b := range bodies {
		if !b.dynamic() {
			continue
		}
		b.Velocity = b.Velocity.Add(w.opts.Gravity.Mul(h)).Mul(linDamp)
		b.AngularVelocity = b.AngularVelocity.Mul(angDamp)
	}

	w.manifolds = w.manifolds[:0]
	for _, p := range w.broad.collect(bodies) {
		m, ok := w.narrow.collide(p.a, p.b)
		if !ok {
			continue
		}
		wakeOnImpact(p.a, p.b)
		wakeOnImpact(p.b, p.a)
		if !p.a.dynamic() && !p.b.dynamic() {
			continue
		}
		w.manifolds = append(w.manifolds, m)
	}

	if cap(w.inertia) < len(w.manifolds) {
		w.inertia = make([]manifoldInertia, len(w.manifolds))
	}
	w.inertia = w.inertia[:len(w.manifolds)]
	w.solver.solve(w.manifolds, w.inertia)

	for _, b := range bodies {
		if !b.dynamic() {
			continue
		}
		b.Position = b.Position.Add(b.Velocity.Mul(h))
		if b.AngularVelocity.LenSqr() > 0 {
			spin := mgl64.Quat{W: 0, V: b.AngularVelocity.Mul(0.5 * h)}
			b.Orientation = b.Orientation.Add(spin.Mul(b.Orientation)).Normalize()
		}
	}

	correctPositions(w.manifolds, parameter.PenetrationSlop, parameter.CorrectionPercent)

	w.trySleep(bodies, h)
}

// wakeOnImpact wakes a sleeping body struck hard enough by a moving one
func wakeOnImpact(sleeper, other *Body) {
	if !sleeper.sleeping || !other.dynamic() {
		return
	}
	rel := other.Velocity.Sub(sleeper.Velocity)
	if rel.LenSqr() > parameter.WakeSpeed*parameter.WakeSpeed {
		sleeper.Wake()
	}
}

func (w *World) trySleep(bodies []*Body, h float64) {
	limit := w.opts.SleepSpeed * w.opts.SleepSpeed
	for _, b := range bodies {
		if !b.dynamic() || !b.AllowSleep {
			continue
		}
		if b.Velocity.LenSqr() < limit && b.AngularVelocity.LenSqr() < limit {
			b.sleepTimer += h
			if b.sleepTimer >= w.opts.SleepTime {
				b.sleep()
			}
		} else {
			b.sleepTimer = 0
		}
	}
}
