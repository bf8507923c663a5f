// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/pdiddy/paper-thread/internal/logging"
	"github.com/pdiddy/paper-thread/pkg/types"
)

const (
	defaultMaxTokens  = 4096
	defaultMaxRetries = 3
)

// Anthropic calls the Claude Messages API through a circuit breaker, retrying
// failed calls with exponential backoff.
type Anthropic struct {
	client     anthropic.Client
	breaker    *gobreaker.CircuitBreaker
	maxTokens  int
	maxRetries int
	logger     *slog.Logger
}

// NewAnthropic builds a generator from the AI config. Extra request options
// (base URL, HTTP client) are passed through to the SDK.
func NewAnthropic(cfg types.AIConfig, logger *slog.Logger, opts ...option.RequestOption) *Anthropic {
	logger = logging.OrDefault(logger)

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	// Retries happen here, not inside the SDK.
	reqOpts := append([]option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}, opts...)

	settings := gobreaker.Settings{
		Name:        "anthropic",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}

	return &Anthropic{
		client:     anthropic.NewClient(reqOpts...),
		breaker:    gobreaker.NewCircuitBreaker(settings),
		maxTokens:  maxTokens,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// Generate sends the request and returns the first text block of the reply.
func (a *Anthropic) Generate(ctx context.Context, req Request) (string, error) {
	return callWithRetry(ctx, a.maxRetries, func() (string, error) {
		out, err := a.breaker.Execute(func() (interface{}, error) {
			return a.generate(ctx, req)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return "", permanent{fmt.Errorf("anthropic unavailable: %w", err)}
			}
			if errors.Is(err, ErrEmptyResponse) || ctx.Err() != nil {
				return "", permanent{err}
			}
			return "", err
		}
		return out.(string), nil
	})
}

func (a *Anthropic) generate(ctx context.Context, req Request) (string, error) {
	requestID := uuid.New().String()

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = a.maxTokens
	}

	var blocks []anthropic.ContentBlockParamUnion
	if len(req.Document) > 0 {
		blocks = append(blocks, anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{
			Data: base64.StdEncoding.EncodeToString(req.Document),
		}))
	}
	blocks = append(blocks, anthropic.NewTextBlock(req.Prompt))

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: int64(maxTokens),
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(blocks...)},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	start := time.Now()
	message, err := a.client.Messages.New(ctx, params)
	duration := time.Since(start)
	if err != nil {
		a.logger.ErrorContext(ctx, "generation failed",
			slog.String("request_id", requestID),
			slog.String("model", req.Model),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			a.logger.DebugContext(ctx, "generation completed",
				slog.String("request_id", requestID),
				slog.String("model", req.Model),
				slog.Int("response_size", len(block.Text)),
				slog.Int64("tokens_in", message.Usage.InputTokens),
				slog.Int64("tokens_out", message.Usage.OutputTokens),
				slog.Duration("duration", duration))
			return block.Text, nil
		}
	}
	return "", ErrEmptyResponse
}
