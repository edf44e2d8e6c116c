package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-backend/pkg/money"
)

func sampleRequest() OrderRequest {
	return OrderRequest{
		TenantID: "T",
		Items: []OrderItem{
			{ProductID: "p1", Name: "Mango", Price: money.Amount(4550), Quantity: 2, Unit: "kg"},
		},
		CustomerDetails: CustomerDetails{Name: "Asha", WhatsAppNumber: "9000000002", Address: "12 Market Road"},
	}
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestHTTPOrderClientPostsContract(t *testing.T) {
	var capturedURL string
	var capturedHeaders http.Header
	var payload map[string]any

	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		capturedHeaders = req.Header.Clone()
		raw, err := io.ReadAll(req.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		return jsonResponse(http.StatusOK, `{"orderId":"o1","orderNumber":"1001","message":"Order placed successfully"}`), nil
	})

	client, err := NewHTTPOrderClient("http://orders.test/", WithHTTPClient(&http.Client{Transport: rt}), WithIdempotencyKeys(func() string { return "key-1" }))
	require.NoError(t, err)

	result, err := client.CreateOrder(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "o1", result.OrderID)
	assert.Equal(t, "1001", result.OrderNumber)

	assert.Equal(t, "http://orders.test/api/orders", capturedURL)
	assert.Equal(t, "key-1", capturedHeaders.Get("Idempotency-Key"))
	assert.Equal(t, "application/json", capturedHeaders.Get("Content-Type"))

	assert.Equal(t, "T", payload["tenantId"])
	items := payload["items"].([]any)
	first := items[0].(map[string]any)
	assert.Equal(t, 45.5, first["price"])
	assert.Equal(t, "p1", first["productId"])
	customer := payload["customerDetails"].(map[string]any)
	assert.Equal(t, "9000000002", customer["whatsappNumber"])
	_, hasNotes := customer["notes"]
	assert.False(t, hasNotes)
}

func TestHTTPOrderClientAcceptsDataEnvelope(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusCreated, `{"data":{"orderId":"o2","orderNumber":"1002"}}`), nil
	})
	client, err := NewHTTPOrderClient("http://orders.test", WithHTTPClient(&http.Client{Transport: rt}))
	require.NoError(t, err)

	result, err := client.CreateOrder(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "1002", result.OrderNumber)
}

func TestHTTPOrderClientBackendErrors(t *testing.T) {
	cases := []struct {
		status  int
		body    string
		message string
	}{
		{http.StatusBadRequest, `{"message":"Missing required fields"}`, "Missing required fields"},
		{http.StatusNotFound, `{"error":{"code":"NOT_FOUND","message":"Store not found"}}`, "Store not found"},
		{http.StatusInternalServerError, `{"error":"Failed to create order"}`, "Failed to create order"},
		{http.StatusBadGateway, `<html>bad gateway</html>`, ""},
	}
	for _, tc := range cases {
		rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(tc.status, tc.body), nil
		})
		client, err := NewHTTPOrderClient("http://orders.test", WithHTTPClient(&http.Client{Transport: rt}))
		require.NoError(t, err)

		_, err = client.CreateOrder(context.Background(), sampleRequest())
		var backendErr *BackendError
		require.True(t, errors.As(err, &backendErr), "status %d", tc.status)
		assert.Equal(t, tc.status, backendErr.Status)
		assert.Equal(t, tc.message, backendErr.Message)
	}
}

func TestHTTPOrderClientRejectsIncompleteSuccess(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"orderId":"o1"}`), nil
	})
	client, err := NewHTTPOrderClient("http://orders.test", WithHTTPClient(&http.Client{Transport: rt}))
	require.NoError(t, err)
	_, err = client.CreateOrder(context.Background(), sampleRequest())
	require.Error(t, err)
}

func TestHTTPOrderClientTransportError(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})
	client, err := NewHTTPOrderClient("http://orders.test", WithHTTPClient(&http.Client{Transport: rt}))
	require.NoError(t, err)
	_, err = client.CreateOrder(context.Background(), sampleRequest())
	require.Error(t, err)
	var backendErr *BackendError
	assert.False(t, errors.As(err, &backendErr))
}

func TestNewHTTPOrderClientRequiresBaseURL(t *testing.T) {
	_, err := NewHTTPOrderClient("   ")
	require.ErrorIs(t, err, errBaseURLRequired)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
