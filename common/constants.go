package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// PixelsPerUnit converts world units to screen pixels for frontends.
	PixelsPerUnit = 48.0

	// FixedStep is the simulation step in seconds.
	FixedStep = 1.0 / 60.0
)
