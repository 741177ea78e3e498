package factory

import (
	"fmt"
	"net/http"

	"go-image-describer/internal/config"
	"go-image-describer/internal/describe"
)

// DescriberType represents the available description backends
type DescriberType string

const (
	// HeuristicDescriber for in-process rule-based descriptions
	HeuristicDescriber DescriberType = "heuristic"
	// OpenAIDescriber for provider-backed descriptions
	OpenAIDescriber DescriberType = "openai"
)

// DescriberFactory creates description backends
type DescriberFactory interface {
	CreateDescriber(describerType DescriberType) (describe.Describer, error)
}

// describerFactory implements DescriberFactory
type describerFactory struct {
	cfg        *config.Config
	httpClient *http.Client
}

// NewDescriberFactory creates a factory bound to the given configuration.
// httpClient is used for remote describers when non-nil.
func NewDescriberFactory(cfg *config.Config, httpClient *http.Client) DescriberFactory {
	return &describerFactory{cfg: cfg, httpClient: httpClient}
}

// CreateDescriber creates a describer of the specified type
func (f *describerFactory) CreateDescriber(describerType DescriberType) (describe.Describer, error) {
	switch describerType {
	case HeuristicDescriber:
		return describe.NewHeuristicDescriber(), nil
	case OpenAIDescriber:
		return describe.NewOpenAIDescriber(
			f.cfg.OpenAIAPIKey,
			f.cfg.OpenAIModel,
			f.cfg.OpenAIBaseURL,
			f.cfg.RemoteTimeout,
			f.httpClient,
		), nil
	default:
		return nil, fmt.Errorf("unsupported describer type: %s", describerType)
	}
}
