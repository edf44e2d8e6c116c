package whatsapp

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

	"github.com/sony/gobreaker/v2"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

const (
	DefaultBaseURL             = "https://graph.facebook.com/v21.0"
	responseBodyReadLimit int64 = 4096
	defaultTimeout              = 10 * time.Second

	// The breaker opens after this many consecutive transport or 5xx
	// failures and probes again after breakerCooldown.
	breakerFailures = 5
	breakerCooldown = 30 * time.Second
)

// Client sends messages through the WhatsApp Business Cloud API.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	phoneNumberID string
	accessToken   string
	breaker       *gobreaker.CircuitBreaker[*SendResult]
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the Graph API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithTimeout sets the timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewClient builds a client. Missing credentials produce an unconfigured client
// whose sends are skipped rather than an error.
func NewClient(phoneNumberID, accessToken string, opts ...Option) *Client {
	client := &Client{
		phoneNumberID: strings.TrimSpace(phoneNumberID),
		accessToken:   strings.TrimSpace(accessToken),
		baseURL:       DefaultBaseURL,
		httpClient:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	client.breaker = gobreaker.NewCircuitBreaker[*SendResult](gobreaker.Settings{
		Name:        "whatsapp",
		MaxRequests: 1,
		Timeout:     breakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailures
		},
		IsSuccessful: countsAsHealthy,
	})
	return client
}

// BreakerState exposes the circuit state for health reporting and tests.
func (c *Client) BreakerState() string {
	if c == nil || c.breaker == nil {
		return gobreaker.StateClosed.String()
	}
	return c.breaker.State().String()
}

// statusError is a non-2xx answer from the Graph API.
type statusError struct {
	status  int
	message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.status, e.message)
}

// countsAsHealthy keeps caller mistakes such as an invalid recipient from
// tripping the breaker. Only transport errors, throttling and 5xx count.
func countsAsHealthy(err error) bool {
	if err == nil {
		return true
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.status < http.StatusInternalServerError && se.status != http.StatusTooManyRequests
	}
	return errors.Is(err, context.Canceled)
}

// Configured reports whether both credentials are present.
func (c *Client) Configured() bool {
	return c != nil && c.phoneNumberID != "" && c.accessToken != ""
}

// NormalizeNumber strips everything except digits.
func NormalizeNumber(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type textMessage struct {
	MessagingProduct string `json:"messaging_product"`
	RecipientType    string `json:"recipient_type"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body string `json:"body"`
	} `json:"text"`
}

// SendResult carries the message id assigned by the API.
type SendResult struct {
	MessageID string
}

// SendText delivers a plain text message. Text messages only reach recipients
// with an open conversation window.
func (c *Client) SendText(ctx context.Context, to, body string) (*SendResult, error) {
	if !c.Configured() {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "whatsapp client not configured")
	}
	recipient := NormalizeNumber(to)
	if recipient == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipient number is required")
	}
	if strings.TrimSpace(body) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message body is required")
	}

	msg := textMessage{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               recipient,
		Type:             "text",
	}
	msg.Text.Body = body

	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal whatsapp message")
	}

	result, err := c.breaker.Execute(func() (*SendResult, error) {
		return c.post(ctx, payload)
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "whatsapp temporarily unavailable")
	case err != nil:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "whatsapp send failed")
	}
	return result, nil
}

func (c *Client) post(ctx context.Context, payload []byte) (*SendResult, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(c.phoneNumberID, "messages"), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build whatsapp request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute whatsapp request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return nil, &statusError{status: resp.StatusCode, message: apiErrorMessage(raw)}
	}

	var apiResp struct {
		Messages []struct {
			ID string `json:"id"`
		} `json:"messages"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, responseBodyReadLimit)).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode whatsapp response: %w", err)
	}

	result := &SendResult{}
	if len(apiResp.Messages) > 0 {
		result.MessageID = apiResp.Messages[0].ID
	}
	return result, nil
}

func apiErrorMessage(raw []byte) string {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error.Message != "" {
		return body.Error.Message
	}
	return strings.TrimSpace(string(raw))
}

func (c *Client) buildURL(parts ...string) string {
	trimmed := strings.TrimRight(c.baseURL, "/")
	for i := range parts {
		parts[i] = strings.Trim(parts[i], "/")
	}
	return fmt.Sprintf("%s/%s", trimmed, strings.Join(parts, "/"))
}
