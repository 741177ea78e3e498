package analyzer

import (
	"fmt"
	"image"
	"math"
	"sort"

	xdraw "golang.org/x/image/draw"
	"gonum.org/v1/gonum/stat"
)

const (
	// sampleMaxDim bounds the pixel count inspected for color extraction
	sampleMaxDim = 200
	// bucketStep is the per-channel quantization step
	bucketStep = 32
)

// colorBucket accumulates one quantized color cluster
type colorBucket struct {
	key   uint32 // packed quantized channels, deterministic tie-breaker
	count int
	sumR  uint64
	sumG  uint64
	sumB  uint64
}

// downsample scales the image so its longest side is at most sampleMaxDim.
// Nearest-neighbor keeps the result a pure function of the input pixels.
func downsample(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	tw, th := w, h
	if w > sampleMaxDim || h > sampleMaxDim {
		scale := float64(sampleMaxDim) / float64(max(w, h))
		tw = max(1, int(math.Round(float64(w)*scale)))
		th = max(1, int(math.Round(float64(h)*scale)))
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst
}

// extractColorProfile quantizes the sampled pixels into fixed buckets and
// returns the top-K clusters sorted by descending share, together with the
// mean and standard deviation of sampled luminance.
func extractColorProfile(img image.Image, topK int) ([]DominantColor, float64, float64) {
	sampled := downsample(img)
	bounds := sampled.Bounds()

	buckets := make(map[uint32]*colorBucket)
	lums := make([]float64, 0, bounds.Dx()*bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := sampled.At(x, y).RGBA()
			r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)

			lums = append(lums, 0.299*float64(r8)+0.587*float64(g8)+0.114*float64(b8))

			key := uint32(r8/bucketStep)<<16 | uint32(g8/bucketStep)<<8 | uint32(b8/bucketStep)
			bkt, ok := buckets[key]
			if !ok {
				bkt = &colorBucket{key: key}
				buckets[key] = bkt
			}
			bkt.count++
			bkt.sumR += uint64(r8)
			bkt.sumG += uint64(g8)
			bkt.sumB += uint64(b8)
		}
	}

	total := len(lums)
	if total == 0 {
		return nil, 0, 0
	}

	ordered := make([]*colorBucket, 0, len(buckets))
	for _, bkt := range buckets {
		ordered = append(ordered, bkt)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].count != ordered[j].count {
			return ordered[i].count > ordered[j].count
		}
		return ordered[i].key < ordered[j].key
	})
	if len(ordered) > topK {
		ordered = ordered[:topK]
	}

	colors := make([]DominantColor, 0, len(ordered))
	for _, bkt := range ordered {
		// Cluster representative is the mean color of its members
		r := uint8(bkt.sumR / uint64(bkt.count))
		g := uint8(bkt.sumG / uint64(bkt.count))
		b := uint8(bkt.sumB / uint64(bkt.count))

		colors = append(colors, DominantColor{
			R:          r,
			G:          g,
			B:          b,
			Hex:        fmt.Sprintf("#%02x%02x%02x", r, g, b),
			Name:       NearestColorName(r, g, b),
			Percentage: math.Round(float64(bkt.count)/float64(total)*1000) / 10,
		})
	}

	mean := stat.Mean(lums, nil)
	stddev := 0.0
	if len(lums) > 1 {
		stddev = stat.StdDev(lums, nil)
	}
	return colors, mean, stddev
}
