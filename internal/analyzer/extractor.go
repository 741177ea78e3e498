package analyzer

import (
	"bytes"
	"image"
	"math"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	apperrors "go-image-describer/internal/errors"
	"go-image-describer/internal/logger"

	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// metadataExtractor implements MetadataExtractor with fixed-bucket color
// quantization. Decoding and quantization are deterministic so identical
// bytes always yield identical metadata.
type metadataExtractor struct {
	topColors int
}

// NewMetadataExtractor creates an extractor returning at most topColors
// dominant colors per image
func NewMetadataExtractor(topColors int) MetadataExtractor {
	if topColors <= 0 {
		topColors = 5
	}
	return &metadataExtractor{topColors: topColors}
}

func (e *metadataExtractor) Extract(data []byte) (*ImageMetadata, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewUnsupportedFormatError(
			"unsupported image format, expected one of JPEG, PNG, GIF, BMP, WEBP", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewCorruptImageError(
			"image header decoded but pixel data could not be read", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, apperrors.NewCorruptImageError("image has no pixels", nil)
	}

	aspect := math.Round(float64(width)/float64(height)*100) / 100
	colors, avgLum, lumStdDev := extractColorProfile(img, e.topColors)

	meta := &ImageMetadata{
		Width:           width,
		Height:          height,
		TotalPixels:     width * height,
		AspectRatio:     aspect,
		Orientation:     classifyOrientation(aspect),
		DominantColors:  colors,
		AvgLuminance:    avgLum,
		LuminanceStdDev: lumStdDev,
	}

	logger.WithFields(logrus.Fields{
		"format": format,
		"width":  width,
		"height": height,
		"colors": len(colors),
	}).Debug("Extracted image metadata")

	return meta, nil
}

func classifyOrientation(aspect float64) Orientation {
	switch {
	case aspect > 1.05:
		return OrientationLandscape
	case aspect < 0.95:
		return OrientationPortrait
	default:
		return OrientationSquare
	}
}
