package strategy

import (
	"context"

	"go-image-describer/internal/analyzer"
	"go-image-describer/internal/describe"
)

// DescriptionStrategy defines the interface for the description generation
// paths. A strategy is selected once per request from configuration.
type DescriptionStrategy interface {
	Describe(ctx context.Context, meta *analyzer.ImageMetadata) (*describe.DescriptionResult, error)
	GetStrategyName() string

	// LocalMode reports whether the strategy runs without network calls
	LocalMode() bool
}

// LocalDescriptionStrategy generates descriptions with the in-process
// heuristic describer
type LocalDescriptionStrategy struct {
	describer describe.Describer
}

// NewLocalDescriptionStrategy creates a new local description strategy
func NewLocalDescriptionStrategy(describer describe.Describer) DescriptionStrategy {
	return &LocalDescriptionStrategy{describer: describer}
}

// Describe generates a description with the heuristic path
func (s *LocalDescriptionStrategy) Describe(ctx context.Context, meta *analyzer.ImageMetadata) (*describe.DescriptionResult, error) {
	return s.describer.Describe(ctx, meta)
}

// GetStrategyName returns the strategy name
func (s *LocalDescriptionStrategy) GetStrategyName() string {
	return "local_heuristic"
}

// LocalMode reports that no network call is made
func (s *LocalDescriptionStrategy) LocalMode() bool {
	return true
}

// RemoteDescriptionStrategy delegates description generation to the
// configured remote provider
type RemoteDescriptionStrategy struct {
	describer describe.Describer
}

// NewRemoteDescriptionStrategy creates a new remote description strategy
func NewRemoteDescriptionStrategy(describer describe.Describer) DescriptionStrategy {
	return &RemoteDescriptionStrategy{describer: describer}
}

// Describe generates a description with the remote provider
func (s *RemoteDescriptionStrategy) Describe(ctx context.Context, meta *analyzer.ImageMetadata) (*describe.DescriptionResult, error) {
	return s.describer.Describe(ctx, meta)
}

// GetStrategyName returns the strategy name
func (s *RemoteDescriptionStrategy) GetStrategyName() string {
	return "remote_provider"
}

// LocalMode reports that a network call is made
func (s *RemoteDescriptionStrategy) LocalMode() bool {
	return false
}

// SelectStrategy picks the description strategy for a request. Remote mode
// without configured credentials degrades to the local strategy so the
// request still succeeds, with local_mode reported accordingly.
func SelectStrategy(useLocal, hasCredentials bool, local, remote describe.Describer) DescriptionStrategy {
	if useLocal || !hasCredentials {
		return NewLocalDescriptionStrategy(local)
	}
	return NewRemoteDescriptionStrategy(remote)
}
