package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// PixelsPerMeter scales the top-down debug view.
	PixelsPerMeter = 32.0

	// TileSize is the edge of one level cell in meters.
	TileSize = 1.0

	// MouseSensitivity converts cursor pixels to look-axis units.
	MouseSensitivity = 0.1
)
