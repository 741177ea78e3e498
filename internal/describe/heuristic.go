package describe

import (
	"context"
	"fmt"
	"strings"

	"go-image-describer/internal/analyzer"
)

const (
	heuristicModelName = "heuristic_visual_analyzer"
	fallbackModelName  = "general_fallback"

	// dominanceThreshold is the top-color share above which the frame is
	// treated as single-tone
	dominanceThreshold = 50.0
	// diversityMinShare is the minimal share a color needs to count towards
	// palette diversity
	diversityMinShare = 5.0
	// diversityMinColors is the distinct-color count that qualifies as a
	// vibrant palette
	diversityMinColors = 4
	// contrastStdDevThreshold is the luminance spread above which the frame
	// shows strong tonal variation (0-255 scale)
	contrastStdDevThreshold = 64.0
)

// heuristicDescriber assembles a description from canned phrase fragments
// selected by metadata thresholds. It is deterministic and never fails.
type heuristicDescriber struct{}

// NewHeuristicDescriber creates the rule-based local describer
func NewHeuristicDescriber() Describer {
	return &heuristicDescriber{}
}

func (h *heuristicDescriber) Name() string { return heuristicModelName }

func (h *heuristicDescriber) ModelType() ModelType { return ModelTypeLocal }

func (h *heuristicDescriber) Describe(_ context.Context, meta *analyzer.ImageMetadata) (*DescriptionResult, error) {
	if meta == nil {
		return &DescriptionResult{
			Description: "This appears to be a well-composed photograph with good technical quality and engaging visual elements.",
			ModelUsed:   fallbackModelName,
			ModelType:   ModelTypeLocal,
		}, nil
	}

	clauses := []string{
		openingClause(meta),
		colorClause(meta),
	}
	if s := moodSentence(meta.DominantColors); s != "" {
		clauses = append(clauses, s)
	}
	if meta.LuminanceStdDev >= contrastStdDevThreshold {
		clauses = append(clauses, "Strong tonal variation adds visible depth across the frame.")
	}
	if s := resolutionSentence(meta.TotalPixels); s != "" {
		clauses = append(clauses, s)
	}

	return &DescriptionResult{
		Description: strings.Join(clauses, " "),
		ModelUsed:   heuristicModelName,
		ModelType:   ModelTypeLocal,
	}, nil
}

func openingClause(meta *analyzer.ImageMetadata) string {
	return fmt.Sprintf("This is a %d x %d pixel image captured in %s orientation.",
		meta.Width, meta.Height, meta.Orientation)
}

// colorClause derives the second clause from the color statistics
func colorClause(meta *analyzer.ImageMetadata) string {
	colors := meta.DominantColors
	if len(colors) == 0 {
		return "The frame renders with uniform tonal characteristics."
	}

	top := colors[0]
	if top.Percentage > dominanceThreshold {
		if isNearNeutral(top) {
			return fmt.Sprintf("A single %s tone covers most of the frame, embracing minimalist aesthetics.", top.Name)
		}
		return fmt.Sprintf("A dominant %s hue drives dramatic contrast across the composition.", top.Name)
	}

	diversity := 0
	for _, c := range colors {
		if c.Percentage >= diversityMinShare {
			diversity++
		}
	}
	if diversity >= diversityMinColors {
		return fmt.Sprintf("Its palette of %s creates a vibrant, colorful composition.",
			strings.Join(topColorNames(colors, 3), ", "))
	}
	return fmt.Sprintf("Its %s tones settle into a balanced composition.", top.Name)
}

// isNearNeutral reports whether a color reads as near-black, near-white or
// desaturated gray rather than a saturated hue
func isNearNeutral(c analyzer.DominantColor) bool {
	switch c.Name {
	case "black", "white", "gray", "silver":
		return true
	}
	lum := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	return lum < 50 || lum > 205
}

// moodSentence picks an atmosphere fragment from the detected palette.
// Rules are ordered; the first match wins.
func moodSentence(colors []analyzer.DominantColor) string {
	names := make(map[string]bool, len(colors))
	for _, c := range colors {
		names[c.Name] = true
	}

	switch {
	case names["black"] && len(names) <= 2:
		return "The dramatic lighting lends the frame a moody, atmospheric quality."
	case names["blue"] && names["white"]:
		return "The palette evokes a serene, peaceful atmosphere."
	case names["green"] || names["olive"] || names["lime"]:
		return "The natural tones suggest freshness and outdoor vitality."
	case names["red"] || names["orange"] || names["maroon"]:
		return "The warm colors give the scene an energetic, inviting feel."
	case names["yellow"]:
		return "The bright palette sets a cheerful, optimistic mood."
	case names["purple"] || names["pink"]:
		return "The color choices hint at an artistic, creative intent."
	case names["white"] && (names["gray"] || names["silver"]):
		return "The clean, muted palette reads as contemporary and minimal."
	default:
		return ""
	}
}

// resolutionSentence maps total pixel count to a capture-quality fragment
func resolutionSentence(totalPixels int) string {
	switch {
	case totalPixels > 15_000_000:
		return "The exceptional resolution is suitable for large-format printing and detailed inspection."
	case totalPixels > 10_000_000:
		return "The high resolution ensures excellent detail on large displays."
	case totalPixels > 5_000_000:
		return "The resolution provides clear detail for most display and print purposes."
	case totalPixels > 2_000_000:
		return "The standard resolution is adequate for web use and standard printing."
	default:
		return ""
	}
}

// topColorNames returns up to n distinct color names in dominance order
func topColorNames(colors []analyzer.DominantColor, n int) []string {
	seen := make(map[string]bool, n)
	names := make([]string, 0, n)
	for _, c := range colors {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		names = append(names, c.Name)
		if len(names) == n {
			break
		}
	}
	return names
}
