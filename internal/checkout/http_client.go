package checkout

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
)

const (
	ordersPath                   = "/api/orders"
	responseBodyReadLimit  int64 = 64 * 1024
	defaultRequestTimeout        = 15 * time.Second
	idempotencyKeyHeader         = "Idempotency-Key"
)

var errBaseURLRequired = errors.New("order api base url is required")

// BackendError is a non-2xx answer from the order backend.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("order backend status %d", e.Status)
	}
	return fmt.Sprintf("order backend status %d: %s", e.Status, e.Message)
}

// HTTPOrderClient posts orders to a remote order backend.
type HTTPOrderClient struct {
	httpClient *http.Client
	baseURL    string
	keyFunc    func() string
}

// Option configures optional client behavior.
type Option func(*HTTPOrderClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPOrderClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithIdempotencyKeys sends a fresh key from fn with every request.
func WithIdempotencyKeys(fn func() string) Option {
	return func(c *HTTPOrderClient) {
		c.keyFunc = fn
	}
}

func NewHTTPOrderClient(baseURL string, opts ...Option) (*HTTPOrderClient, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}
	client := &HTTPOrderClient{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

func (c *HTTPOrderClient) CreateOrder(ctx context.Context, req OrderRequest) (OrderResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return OrderResult{}, fmt.Errorf("marshal order request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ordersPath, bytes.NewReader(payload))
	if err != nil {
		return OrderResult{}, fmt.Errorf("build order request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.keyFunc != nil {
		if key := c.keyFunc(); key != "" {
			httpReq.Header.Set(idempotencyKeyHeader, key)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return OrderResult{}, fmt.Errorf("execute order request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if err != nil {
		return OrderResult{}, fmt.Errorf("read order response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return OrderResult{}, &BackendError{Status: resp.StatusCode, Message: errorMessage(body)}
	}

	var result OrderResult
	if err := json.Unmarshal(unwrapData(body), &result); err != nil {
		return OrderResult{}, fmt.Errorf("decode order response: %w", err)
	}
	if result.OrderID == "" || result.OrderNumber == "" {
		return OrderResult{}, errors.New("order response missing order id or number")
	}
	return result, nil
}

// errorMessage reads {"message"} or the {"error":{"message"}} envelope.
func errorMessage(body []byte) string {
	var flat struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if err := json.Unmarshal(body, &flat); err != nil {
		return ""
	}
	if flat.Message != "" {
		return flat.Message
	}
	switch e := flat.Error.(type) {
	case string:
		return e
	case map[string]any:
		if msg, ok := e["message"].(string); ok {
			return msg
		}
	}
	return ""
}

// unwrapData accepts both a bare result and the {"data": ...} envelope.
func unwrapData(body []byte) []byte {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
		return env.Data
	}
	return body
}
