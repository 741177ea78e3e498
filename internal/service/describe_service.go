package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go-image-describer/internal/analyzer"
	"go-image-describer/internal/config"
	"go-image-describer/internal/describe"
	apperrors "go-image-describer/internal/errors"
	"go-image-describer/internal/observer"
	"go-image-describer/internal/strategy"
	"go-image-describer/pkg/models"
	"go-image-describer/pkg/validation"
)

// RequestState tracks a request through the description pipeline
type RequestState string

const (
	StateReceived             RequestState = "received"
	StateValidated            RequestState = "validated"
	StateMetadataExtracted    RequestState = "metadata_extracted"
	StateDescriptionGenerated RequestState = "description_generated"
	StateResponded            RequestState = "responded"
	StateFailed               RequestState = "failed"
)

// ImageDescriptionService orchestrates validation, metadata extraction and
// description generation for a single uploaded image.
type ImageDescriptionService interface {
	// DescribeImage processes one upload. On failure the returned response
	// carries status=error and the error maps to an HTTP status at the
	// transport boundary.
	DescribeImage(ctx context.Context, data []byte, contentType string) (*models.AnalysisResponse, error)
}

// imageDescriptionService implements ImageDescriptionService. It holds no
// mutable state and is safe for concurrent use.
type imageDescriptionService struct {
	cfg       *config.Config
	extractor analyzer.MetadataExtractor
	local     describe.Describer
	remote    describe.Describer
	validator *validation.UploadValidator
	events    observer.Subject
}

// NewImageDescriptionService creates a new image description service
func NewImageDescriptionService(
	cfg *config.Config,
	extractor analyzer.MetadataExtractor,
	local describe.Describer,
	remote describe.Describer,
	events observer.Subject,
) ImageDescriptionService {
	limits := validation.DefaultUploadLimits()
	limits.MaxBytes = cfg.MaxUploadSize

	return &imageDescriptionService{
		cfg:       cfg,
		extractor: extractor,
		local:     local,
		remote:    remote,
		validator: validation.NewUploadValidatorWithLimits(limits),
		events:    events,
	}
}

func (s *imageDescriptionService) DescribeImage(ctx context.Context, data []byte, contentType string) (resp *models.AnalysisResponse, err error) {
	start := time.Now()
	state := StateReceived

	// A failure is fatal to the request only, never the process
	defer func() {
		if r := recover(); r != nil {
			appErr := apperrors.NewInternalError("unexpected internal error", fmt.Errorf("%v", r))
			resp, err = s.fail(ctx, start, contentType, StateFailed, nil, appErr)
		}
	}()

	s.notify(ctx, observer.AnalysisEvent{
		EventType:   observer.AnalysisStarted,
		Timestamp:   start,
		ContentType: contentType,
		State:       string(state),
	})

	// Validate upload
	if issues := s.validator.Validate(contentType, int64(len(data))); len(issues) > 0 {
		messages := s.validator.ConvertIssuesToMessages(issues)
		appErr := apperrors.NewValidationError(strings.Join(messages, "; "), nil)
		return s.fail(ctx, start, contentType, state, nil, appErr)
	}
	state = StateValidated

	// Extract metadata
	meta, extractErr := s.extractor.Extract(data)
	if extractErr != nil {
		appErr, ok := extractErr.(*apperrors.AppError)
		if !ok {
			appErr = apperrors.NewProcessingError("failed to process image", extractErr)
		}
		return s.fail(ctx, start, contentType, state, nil, appErr)
	}
	state = StateMetadataExtracted

	// Generate description via the configured strategy
	strat := strategy.SelectStrategy(s.cfg.UseLocalLLM, s.cfg.HasRemoteCredentials(), s.local, s.remote)
	localMode := strat.LocalMode()
	fallbackReason := ""

	result, describeErr := strat.Describe(ctx, meta)
	if describeErr != nil {
		if !s.cfg.FallbackOnRemoteError {
			return s.fail(ctx, start, contentType, state, meta, normalizeError(describeErr))
		}

		fallbackReason = errorMessage(describeErr)
		s.notify(ctx, observer.AnalysisEvent{
			EventType:    observer.RemoteFallback,
			Timestamp:    time.Now(),
			ContentType:  contentType,
			State:        string(state),
			ErrorMessage: fallbackReason,
		})

		localMode = true
		// The heuristic path never fails
		result, _ = s.local.Describe(ctx, meta)
	}
	state = StateDescriptionGenerated

	resp = &models.AnalysisResponse{
		Description: result.Description,
		Metadata:    convertMetadata(meta),
		ModelInfo: &models.ModelInfo{
			ModelUsed:      result.ModelUsed,
			ModelType:      string(result.ModelType),
			LocalMode:      localMode,
			FallbackReason: fallbackReason,
		},
		ProcessingTime: elapsedSeconds(start),
		Status:         models.StatusSuccess,
	}
	state = StateResponded

	s.notify(ctx, observer.AnalysisEvent{
		EventType:      observer.AnalysisCompleted,
		Timestamp:      time.Now(),
		ContentType:    contentType,
		State:          string(state),
		ModelUsed:      result.ModelUsed,
		ProcessingTime: time.Since(start),
		Success:        true,
	})

	return resp, nil
}

// fail assembles the error response envelope. Extracted metadata is still
// returned when the failure happened after extraction.
func (s *imageDescriptionService) fail(
	ctx context.Context,
	start time.Time,
	contentType string,
	state RequestState,
	meta *analyzer.ImageMetadata,
	appErr *apperrors.AppError,
) (*models.AnalysisResponse, error) {
	s.notify(ctx, observer.AnalysisEvent{
		EventType:      observer.AnalysisFailed,
		Timestamp:      time.Now(),
		ContentType:    contentType,
		State:          string(state),
		ProcessingTime: time.Since(start),
		ErrorMessage:   appErr.Message,
	})

	return &models.AnalysisResponse{
		Metadata:       convertMetadata(meta),
		ProcessingTime: elapsedSeconds(start),
		Status:         models.StatusError,
		ErrorMessage:   appErr.Message,
	}, appErr
}

func (s *imageDescriptionService) notify(ctx context.Context, event observer.AnalysisEvent) {
	if s.events != nil {
		s.events.NotifyObservers(ctx, event)
	}
}

// convertMetadata maps the extractor output to the response shape
func convertMetadata(meta *analyzer.ImageMetadata) *models.Metadata {
	if meta == nil {
		return nil
	}

	colors := make([]models.Color, 0, len(meta.DominantColors))
	for _, c := range meta.DominantColors {
		colors = append(colors, models.Color{
			Hex:        c.Hex,
			RGB:        models.RGB{R: c.R, G: c.G, B: c.B},
			Name:       c.Name,
			Percentage: c.Percentage,
		})
	}

	return &models.Metadata{
		Dimensions: models.Dimensions{
			Width:       meta.Width,
			Height:      meta.Height,
			AspectRatio: meta.AspectRatio,
		},
		Colors:      colors,
		TotalPixels: meta.TotalPixels,
	}
}

// normalizeError guarantees the error carries taxonomy and status code
func normalizeError(err error) *apperrors.AppError {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr
	}
	return apperrors.NewInternalError("unexpected internal error", err)
}

// errorMessage returns the non-leaking message of an error
func errorMessage(err error) string {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr.Message
	}
	return "unexpected internal error"
}

func elapsedSeconds(start time.Time) float64 {
	return math.Round(time.Since(start).Seconds()*100) / 100
}
