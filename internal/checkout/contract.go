package checkout

import (
	"context"

	"github.com/angelmondragon/storefront-backend/pkg/money"
)

// OrderCreator is the order backend. It is the sole authority for the order
// id and number; a nil error means the order was persisted.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req OrderRequest) (OrderResult, error)
}

// OrderRequest is the order creation payload.
type OrderRequest struct {
	TenantID        string          `json:"tenantId"`
	Items           []OrderItem     `json:"items"`
	CustomerDetails CustomerDetails `json:"customerDetails"`
}

type OrderItem struct {
	ProductID string       `json:"productId"`
	Name      string       `json:"name"`
	Price     money.Amount `json:"price"`
	Quantity  int          `json:"quantity"`
	Unit      string       `json:"unit"`
}

type CustomerDetails struct {
	Name           string `json:"name"`
	WhatsAppNumber string `json:"whatsappNumber"`
	Address        string `json:"address"`
	Notes          string `json:"notes,omitempty"`
}

// OrderResult is the backend's success response.
type OrderResult struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	Message     string `json:"message,omitempty"`
}
