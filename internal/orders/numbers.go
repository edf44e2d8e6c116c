package orders

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// orderNumberBase offsets counters so the first order of a store is 1001.
const orderNumberBase = 1000

type counterStore interface {
	Incr(ctx context.Context, key string) (int64, error)
	OrderNumberKey(tenantID string) string
}

type redisNumbers struct {
	store counterStore
}

// NewRedisNumbers allocates order numbers from a per-tenant Redis counter.
func NewRedisNumbers(store counterStore) (NumberAllocator, error) {
	if store == nil {
		return nil, fmt.Errorf("counter store required")
	}
	return &redisNumbers{store: store}, nil
}

func (n *redisNumbers) Next(ctx context.Context, tenantID uuid.UUID) (string, error) {
	seq, err := n.store.Incr(ctx, n.store.OrderNumberKey(tenantID.String()))
	if err != nil {
		return "", fmt.Errorf("increment order number: %w", err)
	}
	return strconv.FormatInt(orderNumberBase+seq, 10), nil
}
