package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/navanish17/ai-career-advisor/internal/domain/providers"
	"github.com/navanish17/ai-career-advisor/pkg/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "text-embedding-3-small"

	// maxInputChars bounds the text sent per request. Profile and career
	// texts are short; anything longer is truncated, not rejected.
	maxInputChars = 5000
)

// Client implements providers.EmbeddingProvider against the OpenAI
// embeddings endpoint.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	limiter    *tokenBucket
}

var _ providers.EmbeddingProvider = (*Client)(nil)

// NewClient creates a new embeddings client.
func NewClient(cfg *config.EmbeddingConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("embedding api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		limiter: newTokenBucket(cfg.RateLimitRPM, cfg.RateLimitBurst),
	}, nil
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// truncateInput bounds the request text, backing off to a rune boundary
// so the cut never produces invalid UTF-8 in the JSON payload.
func truncateInput(text string) string {
	if len(text) <= maxInputChars {
		return text
	}
	cut := maxInputChars
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// Embed returns the embedding vector for the given text.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: empty input text", providers.ErrEmbeddingUnavailable)
	}
	text = truncateInput(text)

	if c.limiter != nil {
		waitStart := time.Now()
		if err := c.limiter.Wait(ctx); err != nil {
			recordEmbeddingMetric(ctx, c.model, 0, 0, err)
			return nil, err
		}
		recordEmbeddingRateLimitWait(ctx, c.model, time.Since(waitStart))
	}

	body, err := json.Marshal(embeddingRequest{Model: c.model, Input: text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordEmbeddingMetric(ctx, c.model, 0, time.Since(start), err)
		return nil, fmt.Errorf("%w: %v", providers.ErrEmbeddingUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("%w: embeddings request failed with status %d", providers.ErrEmbeddingUnavailable, resp.StatusCode)
		recordEmbeddingMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return nil, err
	}

	var envelope embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		recordEmbeddingMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return nil, fmt.Errorf("%w: %v", providers.ErrEmbeddingUnavailable, err)
	}

	if len(envelope.Data) == 0 || len(envelope.Data[0].Embedding) == 0 {
		err := fmt.Errorf("%w: response missing embedding", providers.ErrEmbeddingUnavailable)
		recordEmbeddingMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return nil, err
	}

	recordEmbeddingMetric(ctx, c.model, resp.StatusCode, time.Since(start), nil)
	return envelope.Data[0].Embedding, nil
}

type tokenBucket struct {
	tokens chan struct{}
}

func newTokenBucket(rpm int, burst int) *tokenBucket {
	if rpm <= 0 {
		rpm = 60
	}
	if burst <= 0 {
		burst = 5
	}

	bucket := &tokenBucket{
		tokens: make(chan struct{}, burst),
	}
	for i := 0; i < burst; i++ {
		bucket.tokens <- struct{}{}
	}

	interval := time.Minute / time.Duration(rpm)
	if interval <= 0 {
		interval = time.Millisecond
	}

	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			select {
			case bucket.tokens <- struct{}{}:
			default:
			}
		}
	}()

	return bucket
}

func (b *tokenBucket) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.tokens:
		return nil
	}
}

type embeddingMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
	rateLimitWait   metric.Float64Histogram
}

var embeddingMetricsInit = false
var embeddingMetricsState embeddingMetrics

func ensureEmbeddingMetrics() {
	if embeddingMetricsInit {
		return
	}
	meter := otel.Meter("github.com/navanish17/ai-career-advisor/openai")

	requestCount, err := meter.Int64Counter(
		"ai.embeddings.request.count",
		metric.WithDescription("Number of embedding requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.embeddings.request.duration",
		metric.WithDescription("Embedding request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.embeddings.request.errors",
		metric.WithDescription("Number of embedding request errors"),
	)
	if err != nil {
		return
	}
	rateLimitWait, err := meter.Float64Histogram(
		"ai.embeddings.rate_limit.wait",
		metric.WithDescription("Time spent waiting for the embeddings rate limiter in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}

	embeddingMetricsState = embeddingMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
		rateLimitWait:   rateLimitWait,
	}
	embeddingMetricsInit = true
}

func recordEmbeddingMetric(ctx context.Context, model string, statusCode int, duration time.Duration, err error) {
	ensureEmbeddingMetrics()
	if !embeddingMetricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "openai"),
		attribute.String("ai.model", model),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	embeddingMetricsState.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	embeddingMetricsState.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		embeddingMetricsState.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

func recordEmbeddingRateLimitWait(ctx context.Context, model string, wait time.Duration) {
	ensureEmbeddingMetrics()
	if !embeddingMetricsInit {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "openai"),
		attribute.String("ai.model", model),
	}
	embeddingMetricsState.rateLimitWait.Record(ctx, float64(wait.Milliseconds()), metric.WithAttributes(attrs...))
}
