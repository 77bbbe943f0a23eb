// Package client talks to a running careerpath server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/abhisek/careerpath/internal/advice"
	"github.com/abhisek/careerpath/internal/gateway"
	"github.com/abhisek/careerpath/internal/skillmatch"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StatusError is a non-2xx response from the server.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Client calls the careerpath HTTP API. It satisfies the same advisor
// contract as *gateway.Gateway.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New creates a Client. A nil httpClient uses one with a 90s timeout.
func New(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 90 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// RequestCareerAdvice posts skills to /api/advice.
func (c *Client) RequestCareerAdvice(ctx context.Context, skills []string) (*advice.Advice, error) {
	return c.RequestWithPrompt(ctx, "", skills)
}

// RequestWithPrompt posts a prompt and skills to /api/advice. Server-side
// failures come back wrapped in gateway.ErrConfiguration or
// gateway.ErrRequest so callers handle local and remote advisors alike.
func (c *Client) RequestWithPrompt(ctx context.Context, prompt string, skills []string) (*advice.Advice, error) {
	body, err := json.Marshal(struct {
		Prompt string   `json:"prompt,omitempty"`
		Skills []string `json:"skills"`
	}{prompt, skills})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	var adv advice.Advice
	if err := c.do(ctx, http.MethodPost, "/api/advice", body, &adv); err != nil {
		return nil, err
	}
	return &adv, nil
}

// Match calls /api/match.
func (c *Client) Match(ctx context.Context, skills []string) ([]skillmatch.DomainMatch, error) {
	var out struct {
		Domains []skillmatch.DomainMatch `json:"domains"`
	}
	path := "/api/match?skills=" + url.QueryEscape(strings.Join(skills, ","))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Domains, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.New().String()
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("careerpath server unreachable", zap.String("url", c.baseURL), zap.Error(err))
		return fmt.Errorf("%w: %w", gateway.ErrRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		serr := &StatusError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
		c.logger.Warn("careerpath server error",
			zap.String("request_id", reqID),
			zap.Int("status", serr.StatusCode),
			zap.String("message", serr.Message),
		)
		if serr.Message == gateway.ErrConfiguration.Error() {
			return fmt.Errorf("%w: %w", gateway.ErrConfiguration, serr)
		}
		return fmt.Errorf("%w: %w", gateway.ErrRequest, serr)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", gateway.ErrRequest, err)
	}
	return nil
}

func readErrorMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 4096))
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(raw))
}
