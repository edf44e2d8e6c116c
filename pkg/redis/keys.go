package redis

import "strings"

const keyNamespace = "sf"

// Keyspace builds the "sf:<kind>:..." keys shared by the API and the workers.
// The zero value is ready to use.
type Keyspace struct{}

func (Keyspace) IdempotencyKey(scope, id string) string {
	return buildKey("idempotency", scope, id)
}

// OrderNumberKey holds the per-tenant order sequence consumed by INCR.
func (Keyspace) OrderNumberKey(tenantID string) string {
	return buildKey("counter", "order_number", tenantID)
}

func (Keyspace) CartKey(name string) string {
	return buildKey("cart", name)
}

func (Keyspace) LockKey(name string) string {
	return buildKey("lock", name)
}

func buildKey(parts ...string) string {
	key := []string{keyNamespace}
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			key = append(key, part)
		}
	}
	return strings.Join(key, ":")
}
