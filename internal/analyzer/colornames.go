package analyzer

import "math"

// namedColor is one entry of the fixed color naming table
type namedColor struct {
	name    string
	r, g, b uint8
}

// namedColors is the reference table for nearest-named-color lookup.
// Entries follow the basic web color names.
var namedColors = []namedColor{
	{"black", 0, 0, 0},
	{"white", 255, 255, 255},
	{"gray", 128, 128, 128},
	{"silver", 192, 192, 192},
	{"red", 255, 0, 0},
	{"maroon", 128, 0, 0},
	{"orange", 255, 165, 0},
	{"yellow", 255, 255, 0},
	{"olive", 128, 128, 0},
	{"lime", 0, 255, 0},
	{"green", 0, 128, 0},
	{"teal", 0, 128, 128},
	{"aqua", 0, 255, 255},
	{"blue", 0, 0, 255},
	{"navy", 0, 0, 128},
	{"purple", 128, 0, 128},
	{"pink", 255, 192, 203},
	{"brown", 139, 69, 19},
	{"tan", 210, 180, 140},
	{"beige", 245, 245, 220},
}

// NearestColorName returns the name of the table entry with the smallest
// Euclidean RGB distance to the given color
func NearestColorName(r, g, b uint8) string {
	minDistance := math.MaxFloat64
	closest := namedColors[0].name

	for _, nc := range namedColors {
		d := colorDistance(r, g, b, nc.r, nc.g, nc.b)
		if d < minDistance {
			minDistance = d
			closest = nc.name
		}
	}
	return closest
}

func colorDistance(r1, g1, b1, r2, g2, b2 uint8) float64 {
	dr := float64(r1) - float64(r2)
	dg := float64(g1) - float64(g2)
	db := float64(b1) - float64(b2)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
