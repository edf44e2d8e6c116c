package middleware

import "context"

type contextKey string

const (
	ctxUserID      contextKey = "user_id"
	ctxRole        contextKey = "actor_role"
	ctxTenantID    contextKey = "tenant_id"
	ctxCartSession contextKey = "cart_session"
	ctxTrace       contextKey = "request_trace"
)

func stringFromContext(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

func UserIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxUserID)
}

func RoleFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxRole)
}

func TenantIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxTenantID)
}

func CartSessionFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxCartSession)
}

func withValue(ctx context.Context, key contextKey, value string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if trace := traceFromContext(ctx); trace != nil {
		trace.set(key, value)
	}
	return context.WithValue(ctx, key, value)
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return withValue(ctx, ctxUserID, userID)
}

// WithRole injects the profile role into the context.
func WithRole(ctx context.Context, role string) context.Context {
	return withValue(ctx, ctxRole, role)
}

// WithTenantID injects the tenant the actor administers.
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	return withValue(ctx, ctxTenantID, tenantID)
}

// WithCartSession injects the anonymous cart session id.
func WithCartSession(ctx context.Context, sessionID string) context.Context {
	return withValue(ctx, ctxCartSession, sessionID)
}
