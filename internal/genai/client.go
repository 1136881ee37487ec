// Package genai drives use-case generation through an OpenAI-compatible
// chat-completions API, with bounded retries and a bounded-parallelism
// batch orchestrator.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/huangsam/casemap/internal/contract"
	"github.com/huangsam/casemap/schema"
)

// maxResponseSize limits the response body to prevent memory exhaustion.
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// ErrEmptyResult is returned when the model produced no usable content.
var ErrEmptyResult = errors.New("generation returned no usable content")

// GenerationError wraps a failure of the external generation service.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation %s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
	retry      RetryConfig
}

var _ contract.Generator = &Client{} // Compile-time check

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithRetryConfig sets the retry configuration.
func WithRetryConfig(cfg RetryConfig) ClientOption {
	return func(client *Client) {
		client.retry = cfg
	}
}

// NewClient creates a generation client for the given endpoint.
func NewClient(baseURL, model, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		retry:      DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// chatMessage is one chat turn.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the wire request for /chat/completions.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatResponse is the wire response for /chat/completions.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// complete sends one chat request and returns the raw model content,
// retrying transient failures with exponential backoff.
func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		if wait := c.retry.backoffFor(attempt); wait > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(wait):
			}
		}

		content, retryable, err := c.completeOnce(ctx, payload)
		if err == nil {
			return content, nil
		}
		lastErr = err
		if !retryable || ctx.Err() != nil {
			break
		}
		contract.LogDebug("generation attempt %d/%d failed: %v", attempt, c.retry.MaxAttempts, err)
	}
	return "", lastErr
}

// completeOnce performs a single HTTP round trip. The boolean reports
// whether the failure is worth retrying.
func (c *Client) completeOnce(ctx context.Context, payload []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", true, fmt.Errorf("read response: %w", err)
	}

	// Retry on rate limiting and server-side errors only.
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", true, fmt.Errorf("endpoint returned status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("endpoint returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", false, fmt.Errorf("decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", false, fmt.Errorf("endpoint error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", false, ErrEmptyResult
	}
	return parsed.Choices[0].Message.Content, false, nil
}

// GenerateList proposes candidate use-case names for the free-text input.
func (c *Client) GenerateList(ctx context.Context, freeText string, company *schema.Company) ([]string, error) {
	content, err := c.complete(ctx, listSystemPrompt, listUserPrompt(freeText, company))
	if err != nil {
		return nil, &GenerationError{Op: "list", Err: err}
	}
	names, err := parseNameList(content)
	if err != nil {
		return nil, &GenerationError{Op: "list", Err: err}
	}
	if len(names) == 0 {
		return nil, &GenerationError{Op: "list", Err: ErrEmptyResult}
	}
	return names, nil
}

// GenerateDetail fills in the full use-case fields for one candidate,
// including 1-5 ratings for every configured axis. Ratings for axis
// names absent from the config are dropped downstream by the scoring
// engine, not here.
func (c *Client) GenerateDetail(ctx context.Context, name, freeText string, cfg *schema.MatrixConfig, company *schema.Company) (*schema.UseCase, error) {
	content, err := c.complete(ctx, detailSystemPrompt, detailUserPrompt(name, freeText, cfg, company))
	if err != nil {
		return nil, &GenerationError{Op: "detail", Err: err}
	}
	uc, err := parseDetail(content, name, cfg)
	if err != nil {
		return nil, &GenerationError{Op: "detail", Err: err}
	}
	return uc, nil
}
