package describe

import (
	"context"
	"strings"
	"testing"

	"go-image-describer/internal/analyzer"
)

func makeMeta(width, height int, orientation analyzer.Orientation, colors []analyzer.DominantColor) *analyzer.ImageMetadata {
	return &analyzer.ImageMetadata{
		Width:          width,
		Height:         height,
		TotalPixels:    width * height,
		AspectRatio:    float64(width) / float64(height),
		Orientation:    orientation,
		DominantColors: colors,
	}
}

func TestHeuristicDescribe_NeverEmpty(t *testing.T) {
	h := NewHeuristicDescriber()

	tests := []struct {
		name string
		meta *analyzer.ImageMetadata
	}{
		{"Nil metadata", nil},
		{"Degenerate one pixel image", makeMeta(1, 1, analyzer.OrientationSquare, nil)},
		{"No dominant colors", makeMeta(640, 480, analyzer.OrientationLandscape, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.Describe(context.Background(), tt.meta)
			if err != nil {
				t.Fatalf("Heuristic describer must never fail, got %v", err)
			}
			if result.Description == "" {
				t.Error("Expected non-empty description")
			}
			if result.ModelType != ModelTypeLocal {
				t.Errorf("Expected local model type, got %s", result.ModelType)
			}
		})
	}
}

func TestHeuristicDescribe_OpeningClause(t *testing.T) {
	h := NewHeuristicDescriber()
	meta := makeMeta(800, 600, analyzer.OrientationLandscape, []analyzer.DominantColor{
		{R: 0, G: 0, B: 255, Name: "blue", Percentage: 40.0},
	})

	result, err := h.Describe(context.Background(), meta)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}

	want := "This is a 800 x 600 pixel image captured in landscape orientation."
	if !strings.Contains(result.Description, want) {
		t.Errorf("Expected description to contain %q, got %q", want, result.Description)
	}
	if result.ModelUsed != "heuristic_visual_analyzer" {
		t.Errorf("Expected heuristic_visual_analyzer, got %s", result.ModelUsed)
	}
}

func TestHeuristicDescribe_BalancedComposition(t *testing.T) {
	// A large landscape image whose top color is near-black at 6.8% with
	// no color above 50% dominance settles into the balanced phrasing.
	h := NewHeuristicDescriber()
	meta := makeMeta(4426, 2951, analyzer.OrientationLandscape, []analyzer.DominantColor{
		{R: 20, G: 18, B: 22, Name: "black", Percentage: 6.8},
		{R: 90, G: 90, B: 95, Name: "gray", Percentage: 6.1},
		{R: 160, G: 150, B: 140, Name: "tan", Percentage: 4.2},
	})

	result, err := h.Describe(context.Background(), meta)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}

	opening := "This is a 4426 x 2951 pixel image captured in landscape orientation."
	if !strings.Contains(result.Description, opening) {
		t.Errorf("Expected description to contain %q, got %q", opening, result.Description)
	}
	if !strings.Contains(result.Description, "balanced composition") {
		t.Errorf("Expected balanced composition phrasing, got %q", result.Description)
	}
}

func TestHeuristicDescribe_MinimalistWhenNeutralDominates(t *testing.T) {
	h := NewHeuristicDescriber()
	meta := makeMeta(1000, 1000, analyzer.OrientationSquare, []analyzer.DominantColor{
		{R: 250, G: 250, B: 250, Name: "white", Percentage: 82.0},
		{R: 120, G: 120, B: 120, Name: "gray", Percentage: 18.0},
	})

	result, _ := h.Describe(context.Background(), meta)
	if !strings.Contains(result.Description, "minimalist aesthetics") {
		t.Errorf("Expected minimalist phrasing for dominant neutral, got %q", result.Description)
	}
}

func TestHeuristicDescribe_DramaticWhenSaturatedDominates(t *testing.T) {
	h := NewHeuristicDescriber()
	meta := makeMeta(1200, 800, analyzer.OrientationLandscape, []analyzer.DominantColor{
		{R: 220, G: 30, B: 30, Name: "red", Percentage: 64.0},
		{R: 240, G: 240, B: 240, Name: "white", Percentage: 20.0},
	})

	result, _ := h.Describe(context.Background(), meta)
	if !strings.Contains(result.Description, "dramatic contrast") {
		t.Errorf("Expected dramatic contrast phrasing for dominant saturated color, got %q", result.Description)
	}
}

func TestHeuristicDescribe_VibrantPalette(t *testing.T) {
	h := NewHeuristicDescriber()
	meta := makeMeta(1600, 900, analyzer.OrientationLandscape, []analyzer.DominantColor{
		{R: 220, G: 40, B: 40, Name: "red", Percentage: 30.0},
		{R: 40, G: 180, B: 40, Name: "green", Percentage: 25.0},
		{R: 40, G: 40, B: 220, Name: "blue", Percentage: 20.0},
		{R: 230, G: 230, B: 40, Name: "yellow", Percentage: 15.0},
	})

	result, _ := h.Describe(context.Background(), meta)
	if !strings.Contains(result.Description, "vibrant, colorful composition") {
		t.Errorf("Expected vibrant phrasing for diverse palette, got %q", result.Description)
	}
}

func TestHeuristicDescribe_UniformFallback(t *testing.T) {
	h := NewHeuristicDescriber()
	meta := makeMeta(320, 320, analyzer.OrientationSquare, nil)

	result, _ := h.Describe(context.Background(), meta)
	if !strings.Contains(result.Description, "uniform tonal characteristics") {
		t.Errorf("Expected uniform tonal fallback clause, got %q", result.Description)
	}
}

func TestHeuristicDescribe_ResolutionSentence(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		fragment      string
	}{
		{"Exceptional resolution", 5000, 4000, "exceptional resolution"},
		{"High resolution", 4426, 2951, "high resolution"},
		{"Clear detail", 3000, 2000, "clear detail"},
		{"No resolution clause for small images", 640, 480, ""},
	}

	h := NewHeuristicDescriber()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := makeMeta(tt.width, tt.height, analyzer.OrientationLandscape, []analyzer.DominantColor{
				{R: 0, G: 0, B: 255, Name: "blue", Percentage: 30.0},
			})
			result, _ := h.Describe(context.Background(), meta)

			if tt.fragment == "" {
				if strings.Contains(result.Description, "resolution") {
					t.Errorf("Expected no resolution clause, got %q", result.Description)
				}
				return
			}
			if !strings.Contains(result.Description, tt.fragment) {
				t.Errorf("Expected %q in description, got %q", tt.fragment, result.Description)
			}
		})
	}
}

func TestHeuristicDescribe_SentencesAreWellFormed(t *testing.T) {
	h := NewHeuristicDescriber()
	meta := makeMeta(1024, 768, analyzer.OrientationLandscape, []analyzer.DominantColor{
		{R: 30, G: 144, B: 255, Name: "blue", Percentage: 45.0},
		{R: 255, G: 255, B: 255, Name: "white", Percentage: 30.0},
	})

	result, _ := h.Describe(context.Background(), meta)
	if !strings.HasSuffix(result.Description, ".") {
		t.Errorf("Expected description to end with a period, got %q", result.Description)
	}
	if strings.Contains(result.Description, "  ") {
		t.Errorf("Expected single spaces between clauses, got %q", result.Description)
	}
}
