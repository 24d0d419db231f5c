package parameter

// Player controller body
const (
	// PlayerMass is fixed and independent of world mass changes
	PlayerMass = 5.0

	PlayerRadius = 2.0
	PlayerHeight = 2.0
)

// Player spawn position
const (
	PlayerSpawnX = 0.0
	PlayerSpawnY = 10.0
	PlayerSpawnZ = 0.0
)

// Player input
const (
	// PlayerMoveAccel scales WASD input into per-frame velocity impulses (m/s per second)
	PlayerMoveAccel = 10.0

	// PlayerJumpImpulse is the vertical Δv added per frame while jump is held
	PlayerJumpImpulse = 2.0

	// PlayerTurnRate is the yaw change per key press (radians)
	PlayerTurnRate = 0.08
)
