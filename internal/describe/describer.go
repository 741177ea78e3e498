package describe

import (
	"context"

	"go-image-describer/internal/analyzer"
)

// ModelType distinguishes in-process from provider-backed generation
type ModelType string

const (
	ModelTypeLocal  ModelType = "local"
	ModelTypeRemote ModelType = "remote"
)

// DescriptionResult is the normalized output of every describer
type DescriptionResult struct {
	Description string
	ModelUsed   string
	ModelType   ModelType
}

// Describer produces a natural-language description of an image from its
// extracted metadata.
type Describer interface {
	// Name returns the name of the backing model, e.g. "heuristic" or
	// "openai_gpt-3.5-turbo"
	Name() string

	// ModelType returns whether the describer runs locally or remotely
	ModelType() ModelType

	// Describe returns a description for the given metadata. The provided
	// ctx bounds any network call the describer makes.
	Describe(ctx context.Context, meta *analyzer.ImageMetadata) (*DescriptionResult, error)
}
