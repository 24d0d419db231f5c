package parameter

// Viewer projection
const (
	// FocalLength is the perspective focal length in cells per unit at depth 1
	FocalLength = 24.0

	// CellAspect compensates for terminal cells being roughly twice as tall as wide
	CellAspect = 0.5

	// NearPlane culls bodies closer than this to the camera
	NearPlane = 0.5

	// FarPlane culls bodies further than this from the camera
	FarPlane = 400.0

	// EyeHeight lifts the camera above the controller center
	EyeHeight = 1.5
)

// Viewer glyphs
const (
	BoxChar     = '█'
	DimBoxChar  = '▓'
	FarBoxChar  = '▒'
	TornadoChar = '@'
	PlayerChar  = '+'

	// HUDRows is the number of rows reserved at the bottom for the status line
	HUDRows = 1
)
