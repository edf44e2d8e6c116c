package checkout

import (
	"context"
	"errors"

	"github.com/angelmondragon/storefront-backend/internal/orders"
)

const orderPlacedMessage = "Order placed successfully"

type orderPlacer interface {
	Create(ctx context.Context, input orders.CreateInput) (*orders.Created, error)
}

// LocalOrderCreator places orders through the in-process orders service.
type LocalOrderCreator struct {
	orders orderPlacer
}

func NewLocalOrderCreator(svc orderPlacer) (*LocalOrderCreator, error) {
	if svc == nil {
		return nil, errors.New("orders service required")
	}
	return &LocalOrderCreator{orders: svc}, nil
}

func (c *LocalOrderCreator) CreateOrder(ctx context.Context, req OrderRequest) (OrderResult, error) {
	created, err := c.orders.Create(ctx, ToCreateInput(req))
	if err != nil {
		return OrderResult{}, err
	}
	return ResultFromCreated(created), nil
}

// ToCreateInput maps the wire request onto the orders service input.
func ToCreateInput(req OrderRequest) orders.CreateInput {
	items := make([]orders.CreateItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, orders.CreateItem{
			ProductID:  it.ProductID,
			Name:       it.Name,
			PriceCents: it.Price.Cents(),
			Quantity:   it.Quantity,
			Unit:       it.Unit,
		})
	}
	return orders.CreateInput{
		TenantID: req.TenantID,
		Items:    items,
		Customer: &orders.Customer{
			Name:           req.CustomerDetails.Name,
			WhatsAppNumber: req.CustomerDetails.WhatsAppNumber,
			Address:        req.CustomerDetails.Address,
			Notes:          req.CustomerDetails.Notes,
		},
	}
}

// ResultFromCreated renders the service result as the wire response.
func ResultFromCreated(created *orders.Created) OrderResult {
	return OrderResult{
		OrderID:     created.OrderID.String(),
		OrderNumber: created.OrderNumber,
		Message:     orderPlacedMessage,
	}
}
