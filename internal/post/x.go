// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package post

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/paper-thread/internal/httputil"
	"github.com/pdiddy/paper-thread/internal/logging"
	"github.com/pdiddy/paper-thread/pkg/types"
)

// xAPIBase is the X API v2 root. Package-level var for test substitution.
var xAPIBase = "https://api.x.com/2"

const defaultMinInterval = 2 * time.Second

// XClient posts through the X API v2 with an OAuth 2.0 user-context token.
// Requests are paced by a limiter and retried on HTTP 429.
type XClient struct {
	client    *http.Client
	token     string
	userAgent string
	limiter   *rate.Limiter
	logger    *slog.Logger
}

// NewXClient builds a client from the post config. A nil http.Client uses
// one with the configured timeout.
func NewXClient(cfg types.PostConfig, client *http.Client, logger *slog.Logger) *XClient {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	interval := cfg.MinInterval
	if interval <= 0 {
		interval = defaultMinInterval
	}
	return &XClient{
		client:    client,
		token:     cfg.AccessToken,
		userAgent: cfg.UserAgent,
		limiter:   rate.NewLimiter(rate.Every(interval), 1),
		logger:    logging.OrDefault(logger),
	}
}

type createPostRequest struct {
	Text  string     `json:"text"`
	Reply *replySpec `json:"reply,omitempty"`
}

type replySpec struct {
	InReplyToTweetID string `json:"in_reply_to_tweet_id"`
}

type createPostResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

type meResponse struct {
	Data struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"data"`
}

// CreatePost implements Client.
func (c *XClient) CreatePost(ctx context.Context, text, replyTo string) (string, error) {
	body := createPostRequest{Text: text}
	if replyTo != "" {
		body.Reply = &replySpec{InReplyToTweetID: replyTo}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encoding post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, xAPIBase+"/tweets", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out createPostResponse
	if err := c.do(ctx, req, &out); err != nil {
		return "", err
	}
	if out.Data.ID == "" {
		return "", fmt.Errorf("X API returned no post id")
	}
	c.logger.Debug("post created", slog.String("id", out.Data.ID), slog.String("reply_to", replyTo))
	return out.Data.ID, nil
}

// Verify checks the token by fetching the authenticated user and returns
// its username.
func (c *XClient) Verify(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, xAPIBase+"/users/me", nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	var out meResponse
	if err := c.do(ctx, req, &out); err != nil {
		return "", fmt.Errorf("verifying credentials: %w", err)
	}
	return out.Data.Username, nil
}

func (c *XClient) do(ctx context.Context, req *http.Request, out any) error {
	if c.token == "" {
		return fmt.Errorf("X API: missing access token")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.client, req, 0)
	if err != nil {
		return fmt.Errorf("X API request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading X API response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusForbidden && strings.Contains(strings.ToLower(string(data)), "duplicate") {
			return ErrDuplicate
		}
		return fmt.Errorf("X API returned HTTP %d: %s", resp.StatusCode, excerpt(data))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding X API response: %w", err)
	}
	return nil
}

func excerpt(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
