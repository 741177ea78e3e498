package describe

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go-image-describer/internal/analyzer"
	apperrors "go-image-describer/internal/errors"

	oagc "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const maxCompletionTokens = 300

// openAIDescriber forwards the metadata prompt to the OpenAI chat
// completions API. A single attempt is made per request; retry and
// fallback policy belong to the caller.
type openAIDescriber struct {
	client  *oagc.Client
	apiKey  string
	model   string
	timeout time.Duration
}

// NewOpenAIDescriber creates the remote describer. baseURL overrides the
// provider endpoint when non-empty, httpClient is used when non-nil.
func NewOpenAIDescriber(apiKey, model, baseURL string, timeout time.Duration, httpClient *http.Client) Describer {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// one attempt per request, the orchestrator owns fallback policy
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	return &openAIDescriber{
		client:  oagc.NewClient(opts...),
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
	}
}

func (o *openAIDescriber) Name() string { return "openai_" + o.model }

func (o *openAIDescriber) ModelType() ModelType { return ModelTypeRemote }

func (o *openAIDescriber) Describe(ctx context.Context, meta *analyzer.ImageMetadata) (*DescriptionResult, error) {
	// Credentials are checked before any network call
	if strings.TrimSpace(o.apiKey) == "" {
		return nil, apperrors.NewRemoteAuthError("remote provider credentials are not configured", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	params := oagc.ChatCompletionNewParams{
		Model: oagc.F(oagc.ChatModel(o.model)),
		Messages: oagc.F([]oagc.ChatCompletionMessageParamUnion{
			oagc.UserMessage(MetadataPrompt(meta)),
		}),
		MaxTokens:   oagc.Int(maxCompletionTokens),
		Temperature: oagc.Float(0.7),
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, o.mapError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, apperrors.NewRemoteProviderError(0, "remote provider returned no completion choices", nil)
	}

	description := strings.TrimSpace(resp.Choices[0].Message.Content)
	if description == "" {
		return nil, apperrors.NewRemoteProviderError(0, "remote provider returned an empty description", nil)
	}

	return &DescriptionResult{
		Description: description,
		ModelUsed:   o.Name(),
		ModelType:   ModelTypeRemote,
	}, nil
}

// mapError normalizes transport failures to the application error taxonomy
func (o *openAIDescriber) mapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewRemoteTimeoutError("remote provider did not respond within the configured timeout", err)
	}

	var apierr *oagc.Error
	if errors.As(err, &apierr) {
		if apierr.StatusCode == http.StatusUnauthorized || apierr.StatusCode == http.StatusForbidden {
			return apperrors.NewRemoteAuthError("remote provider rejected the configured credentials", err)
		}
		return apperrors.NewRemoteProviderError(apierr.StatusCode, "remote provider request failed", err)
	}

	return apperrors.NewRemoteProviderError(0, "remote provider is unreachable", err)
}
