package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

type contactPayload struct {
	Name string `json:"name" validate:"required"`
}

type checkoutPayload struct {
	TenantID string         `json:"tenantId" validate:"required"`
	Quantity int            `json:"quantity" validate:"gte=1"`
	Customer contactPayload `json:"customerDetails"`
}

func decode(t *testing.T, body string) (checkoutPayload, *pkgerrors.Error) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var payload checkoutPayload
	err := DecodeJSONBody(req, &payload)
	if err == nil {
		return payload, nil
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	return payload, typed
}

func TestDecodeJSONBodyAcceptsValidPayload(t *testing.T) {
	payload, err := decode(t, `{"tenantId":"t1","quantity":2,"customerDetails":{"name":"Asha"}}`)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if payload.TenantID != "t1" || payload.Quantity != 2 || payload.Customer.Name != "Asha" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestDecodeJSONBodyReportsNestedFieldPaths(t *testing.T) {
	_, err := decode(t, `{"tenantId":"","quantity":0,"customerDetails":{}}`)
	if err == nil {
		t.Fatal("expected error")
	}
	details, ok := err.Details().(map[string]string)
	if !ok {
		t.Fatalf("unexpected details %#v", err.Details())
	}
	want := map[string]string{
		"tenantId":             "is required",
		"quantity":             "must be 1 or more",
		"customerDetails.name": "is required",
	}
	for field, msg := range want {
		if details[field] != msg {
			t.Fatalf("details[%q] = %q want %q (all: %v)", field, details[field], msg, details)
		}
	}
}

func TestDecodeJSONBodyRejectsMalformedBodies(t *testing.T) {
	cases := map[string]string{
		"empty":    ``,
		"unknown":  `{"tenantId":"t1","quantity":1,"customerDetails":{"name":"A"},"coupon":"FREE"}`,
		"trailing": `{"tenantId":"t1","quantity":1,"customerDetails":{"name":"A"}} {}`,
		"type":     `{"tenantId":"t1","quantity":"two","customerDetails":{"name":"A"}}`,
		"oversize": `{"tenantId":"` + strings.Repeat("x", MaxBodyBytes) + `"}`,
	}
	for name, body := range cases {
		if _, err := decode(t, body); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestDecodeJSONBodyNamesMistypedField(t *testing.T) {
	_, err := decode(t, `{"tenantId":"t1","quantity":"two"}`)
	details, _ := err.Details().(map[string]string)
	if details["quantity"] != "must be of type int" {
		t.Fatalf("unexpected details %v", err.Details())
	}
}
