package parameter

// Tornado drift
const (
	// TornadoStep scales the fixed drift direction each tick
	TornadoStep = 0.02

	// TornadoJitter is the full width of the per-axis random jitter (±TornadoJitter/2)
	TornadoJitter = 0.1

	// TornadoSpinRate is the marker rotation per tick (radians)
	TornadoSpinRate = 0.01
)

// Tornado capture
const (
	// TornadoCaptureRadiusSq is the squared horizontal capture radius
	// 102 rather than 10000: the distance was authored as a bitwise xor
	TornadoCaptureRadiusSq = 102.0

	// TornadoLift is the per-mass lift added on top of one tick of gravity
	TornadoLift = 2.0
)

// Tornado attract model
const (
	TornadoAttractMass = 500.0
	TornadoAttractG    = 1.0

	// TornadoAttractMinDistSq clamps the inverse-square singularity
	TornadoAttractMinDistSq = 16.0
)

// TornadoMarkerHalfHeight is the visual marker half height used to lift it onto the ground
const TornadoMarkerHalfHeight = 6.0
