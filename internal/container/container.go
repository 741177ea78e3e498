package container

import (
	"fmt"
	"net/http"
	"time"

	"go-image-describer/internal/analyzer"
	"go-image-describer/internal/config"
	"go-image-describer/internal/describe"
	"go-image-describer/internal/factory"
	"go-image-describer/internal/logger"
	"go-image-describer/internal/observer"
	"go-image-describer/internal/service"
	"go-image-describer/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config          *config.Config
	extractor       analyzer.MetadataExtractor
	localDescriber  describe.Describer
	remoteDescriber describe.Describer
	metrics         *observer.MetricsObserver
	describeService service.ImageDescriptionService
	handler         http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	describers := factory.NewDescriberFactory(cfg, &http.Client{
		Timeout: cfg.RemoteTimeout + 5*time.Second,
	})

	local, err := describers.CreateDescriber(factory.HeuristicDescriber)
	if err != nil {
		return nil, fmt.Errorf("failed to create local describer: %w", err)
	}
	remote, err := describers.CreateDescriber(factory.OpenAIDescriber)
	if err != nil {
		return nil, fmt.Errorf("failed to create remote describer: %w", err)
	}

	extractor := analyzer.NewMetadataExtractor(cfg.TopColors)

	metrics := observer.NewMetricsObserver()
	events := observer.NewEventBus()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))
	events.Subscribe(metrics)

	describeService := service.NewImageDescriptionService(cfg, extractor, local, remote, events)
	handler := transport.NewHandler(describeService, cfg)

	return &Container{
		config:          cfg,
		extractor:       extractor,
		localDescriber:  local,
		remoteDescriber: remote,
		metrics:         metrics,
		describeService: describeService,
		handler:         handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Metrics returns the in-process metrics observer
func (c *Container) Metrics() *observer.MetricsObserver {
	return c.metrics
}
