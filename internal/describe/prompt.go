package describe

import (
	"fmt"
	"strings"

	"go-image-describer/internal/analyzer"
)

// MetadataPrompt renders the extracted metadata as a provider prompt
func MetadataPrompt(meta *analyzer.ImageMetadata) string {
	var sb strings.Builder

	sb.WriteString("Describe this image based on the following visual analysis:\n\n")
	sb.WriteString("Image Properties:\n")
	fmt.Fprintf(&sb, "- Dimensions: %d x %d pixels\n", meta.Width, meta.Height)
	fmt.Fprintf(&sb, "- Aspect ratio: %.2f\n", meta.AspectRatio)
	fmt.Fprintf(&sb, "- Orientation: %s\n", meta.Orientation)
	fmt.Fprintf(&sb, "- Dominant colors: %s\n\n", strings.Join(topColorNames(meta.DominantColors, 3), ", "))
	sb.WriteString("Provide a detailed, coherent description of what this image likely contains, " +
		"considering its dimensions, proportions, and color palette. Focus on the overall " +
		"composition, mood, and potential subject matter that would align with these visual characteristics.")

	return sb.String()
}
