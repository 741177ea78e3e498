package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// AnalysisEvent represents one step of a description request
type AnalysisEvent struct {
	EventType      EventType     `json:"event_type"`
	Timestamp      time.Time     `json:"timestamp"`
	ContentType    string        `json:"content_type"`
	State          string        `json:"state"`
	ModelUsed      string        `json:"model_used,omitempty"`
	ProcessingTime time.Duration `json:"processing_time"`
	Success        bool          `json:"success"`
	ErrorMessage   string        `json:"error_message,omitempty"`
}

// EventType represents the type of analysis event
type EventType string

const (
	// AnalysisStarted when a request enters the pipeline
	AnalysisStarted EventType = "analysis_started"
	// AnalysisCompleted when a description was produced
	AnalysisCompleted EventType = "analysis_completed"
	// AnalysisFailed when the request failed at any state
	AnalysisFailed EventType = "analysis_failed"
	// RemoteFallback when a remote failure was recovered by the local path
	RemoteFallback EventType = "remote_fallback"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event AnalysisEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	NotifyObservers(ctx context.Context, event AnalysisEvent)
}

// EventBus is a minimal in-process Subject implementation
type EventBus struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventBus creates an empty event bus
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe registers an observer
func (b *EventBus) Subscribe(observer Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(b.observers, observer)
}

// NotifyObservers delivers the event to all registered observers
func (b *EventBus) NotifyObservers(ctx context.Context, event AnalysisEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, o := range b.observers {
		o.OnEvent(ctx, event)
	}
}

// LoggingObserver logs analysis events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{logger: logger}
}

// OnEvent handles analysis events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	fields := logrus.Fields{
		"event_type":   event.EventType,
		"content_type": event.ContentType,
		"state":        event.State,
		"success":      event.Success,
	}
	if event.ModelUsed != "" {
		fields["model_used"] = event.ModelUsed
	}
	if event.ProcessingTime > 0 {
		fields["processing_time"] = event.ProcessingTime
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}

	switch event.EventType {
	case AnalysisStarted:
		o.logger.WithFields(fields).Debug("Image description started")
	case AnalysisCompleted:
		o.logger.WithFields(fields).Info("Image description completed")
	case AnalysisFailed:
		o.logger.WithFields(fields).Error("Image description failed")
	case RemoteFallback:
		o.logger.WithFields(fields).Warn("Remote provider failed, fell back to local heuristic")
	default:
		o.logger.WithFields(fields).Info("Analysis event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver collects in-process counters from analysis events
type MetricsObserver struct {
	mu                  sync.RWMutex
	totalRequests       int64
	successfulRequests  int64
	failedRequests      int64
	remoteFallbacks     int64
	totalProcessingTime time.Duration
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// OnEvent handles analysis events by updating counters
func (o *MetricsObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case AnalysisStarted:
		o.totalRequests++
	case AnalysisCompleted:
		o.successfulRequests++
		o.totalProcessingTime += event.ProcessingTime
	case AnalysisFailed:
		o.failedRequests++
	case RemoteFallback:
		o.remoteFallbacks++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns a snapshot of the current counters
func (o *MetricsObserver) GetMetrics() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avgProcessingTime := time.Duration(0)
	if o.successfulRequests > 0 {
		avgProcessingTime = o.totalProcessingTime / time.Duration(o.successfulRequests)
	}

	return map[string]interface{}{
		"total_requests":        o.totalRequests,
		"successful_requests":   o.successfulRequests,
		"failed_requests":       o.failedRequests,
		"remote_fallbacks":      o.remoteFallbacks,
		"avg_processing_time":   avgProcessingTime.String(),
		"total_processing_time": o.totalProcessingTime.String(),
	}
}
