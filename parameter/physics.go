package parameter

import "time"

// World solver
const (
	// GravityY is the global vertical acceleration (m/s²)
	GravityY = -9.82

	// GravityMagnitude is |GravityY|, used by impulse formulas that cancel one tick of gravity
	GravityMagnitude = 9.82

	// FixedStep is the internal solver sub-step in seconds
	FixedStep = 1.0 / 60.0

	// MaxSubSteps caps sub-steps per Step call so a long stall cannot spiral
	MaxSubSteps = 10

	// SolverIterations is the number of velocity passes over the contact set per sub-step
	SolverIterations = 10
)

// Contact response
const (
	Restitution = 0.3
	Friction    = 0.3

	// RestitutionThreshold is the closing speed below which contacts are treated as inelastic
	RestitutionThreshold = 1.0

	// PenetrationSlop is the overlap tolerated before positional correction kicks in
	PenetrationSlop = 0.005

	// CorrectionPercent is the fraction of remaining overlap removed per sub-step
	CorrectionPercent = 0.8

	// WarmStartNormalDot is the minimum cosine between a contact's old and new normal for its impulse to carry over
	WarmStartNormalDot = 0.95
)

// Damping, applied as v *= (1 - d)^h
const (
	LinearDamping  = 0.01
	AngularDamping = 0.01
)

// Sleeping
const (
	// SleepSpeed is the linear and angular speed under which a body accumulates idle time
	SleepSpeed = 0.1

	// SleepTime is the idle time after which a body is put to sleep (seconds)
	SleepTime = 1.0

	// WakeSpeed is the relative closing speed at which a moving body wakes a sleeping one
	WakeSpeed = 0.5
)

// CylinderSphereSpacing is the distance between consecutive sphere layers of a cylinder collider
const CylinderSphereSpacing = 1.0

// BroadphaseMargin expands AABBs so resting contacts stay in the pair set
const BroadphaseMargin = 0.05

// DiagnosticsInterval is how much simulated time a channel accumulates before logging its stats
const DiagnosticsInterval = 5 * time.Second

// SlowStepWarn is the step Δt past which a new peak is logged
const SlowStepWarn = 100 * time.Millisecond
