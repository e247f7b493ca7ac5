// Package embedder provides ports.Embedder implementations backed by hosted
// embedding models, plus a circuit-breaker wrapper.
package embedder

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"

	"github.com/baditaflorin/go_guess_similarity/internal/ports"
)

// DefaultOpenAIModel is the default OpenAI embeddings model.
const DefaultOpenAIModel = oai.EmbeddingModelTextEmbedding3Small

var _ ports.Embedder = (*OpenAI)(nil)

// OpenAI implements ports.Embedder using the OpenAI embeddings API.
type OpenAI struct {
	client     oai.Client
	model      string
	dimensions int64
}

type openAIConfig struct {
	baseURL      string
	organization string
	timeout      time.Duration
	maxRetries   int
	dimensions   int64
}

// OpenAIOption is a functional option for OpenAI.
type OpenAIOption func(*openAIConfig)

// WithBaseURL overrides the default OpenAI API base URL.
func WithBaseURL(url string) OpenAIOption {
	return func(c *openAIConfig) {
		c.baseURL = url
	}
}

// WithOrganization sets the OpenAI organization ID on all requests.
func WithOrganization(org string) OpenAIOption {
	return func(c *openAIConfig) {
		c.organization = org
	}
}

// WithTimeout sets a per-request HTTP timeout.
func WithTimeout(d time.Duration) OpenAIOption {
	return func(c *openAIConfig) {
		c.timeout = d
	}
}

// WithMaxRetries sets how many times the client retries a failed request.
// Negative values keep the client default.
func WithMaxRetries(n int) OpenAIOption {
	return func(c *openAIConfig) {
		c.maxRetries = n
	}
}

// WithDimensions asks the model for shortened vectors (text-embedding-3 only).
func WithDimensions(n int) OpenAIOption {
	return func(c *openAIConfig) {
		c.dimensions = int64(n)
	}
}

// NewOpenAI constructs an OpenAI embedder. An empty model selects
// DefaultOpenAIModel.
func NewOpenAI(apiKey, model string, opts ...OpenAIOption) (*OpenAI, error) {
	if apiKey == "" {
		return nil, errors.New("openai embedder: apiKey must not be empty")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}

	cfg := &openAIConfig{maxRetries: -1}
	for _, o := range opts {
		o(cfg)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}
	if cfg.organization != "" {
		reqOpts = append(reqOpts, option.WithOrganization(cfg.organization))
	}
	if cfg.timeout > 0 {
		reqOpts = append(reqOpts, option.WithHTTPClient(&http.Client{
			Timeout: cfg.timeout,
		}))
	}
	if cfg.maxRetries >= 0 {
		reqOpts = append(reqOpts, option.WithMaxRetries(cfg.maxRetries))
	}

	return &OpenAI{
		client:     oai.NewClient(reqOpts...),
		model:      model,
		dimensions: cfg.dimensions,
	}, nil
}

// Embed implements ports.Embedder.
func (p *OpenAI) Embed(ctx context.Context, text string) ([]float64, error) {
	params := oai.EmbeddingNewParams{
		Model: p.model,
		Input: oai.EmbeddingNewParamsInputUnion{
			OfString: param.NewOpt(text),
		},
	}
	if p.dimensions > 0 {
		params.Dimensions = param.NewOpt(p.dimensions)
	}

	resp, err := p.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai embedder: embed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("openai embedder: empty response")
	}
	return resp.Data[0].Embedding, nil
}

// ModelID returns the embeddings model name.
func (p *OpenAI) ModelID() string {
	return p.model
}
