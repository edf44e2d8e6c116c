package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/internal/profiles"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type profileLoader interface {
	Ensure(ctx context.Context, userID uuid.UUID) (*profiles.ProfileDTO, error)
}

// ProfileContext loads the caller's profile and exposes its role and tenant. Must run after Auth.
func ProfileContext(loader profileLoader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := uuid.Parse(UserIDFromContext(r.Context()))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user"))
				return
			}

			profile, err := loader.Ensure(r.Context(), userID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithRole(r.Context(), string(profile.Role))
			fields := map[string]any{"actor_role": string(profile.Role)}
			if profile.TenantID != nil {
				ctx = WithTenantID(ctx, profile.TenantID.String())
				fields["tenant_id"] = profile.TenantID.String()
			}
			if logg != nil {
				ctx = logg.WithFields(ctx, fields)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
