package analyzer

// Orientation classifies an image by its width:height ratio
type Orientation string

const (
	OrientationLandscape Orientation = "landscape"
	OrientationPortrait  Orientation = "portrait"
	OrientationSquare    Orientation = "square"
)

// DominantColor is a representative RGB value summarizing a cluster of
// similar pixel colors, with its share of sampled pixels.
type DominantColor struct {
	R          uint8
	G          uint8
	B          uint8
	Hex        string
	Name       string
	Percentage float64
}

// ImageMetadata holds everything extracted from a decoded image. It is
// built once per request and never mutated afterwards.
type ImageMetadata struct {
	Width       int
	Height      int
	TotalPixels int
	AspectRatio float64
	Orientation Orientation

	// DominantColors is sorted by descending percentage
	DominantColors []DominantColor

	// Tonal statistics over the sampled pixels (0-255 scale). These feed
	// the heuristic describer and are not serialized in responses.
	AvgLuminance    float64
	LuminanceStdDev float64
}
