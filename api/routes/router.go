package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	admincontrollers "github.com/angelmondragon/storefront-backend/api/controllers/admin"
	cartcontrollers "github.com/angelmondragon/storefront-backend/api/controllers/cart"
	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/internal/profiles"
	"github.com/angelmondragon/storefront-backend/internal/tenants"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	pkgredis "github.com/angelmondragon/storefront-backend/pkg/redis"
)

// RedisStore is the Redis surface the HTTP layer needs.
type RedisStore interface {
	pkgredis.IdempotencyStore
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Ping(ctx context.Context) error
}

// Services groups the domain services mounted by the router.
type Services struct {
	Tenants  tenants.Service
	Catalog  catalog.Service
	Orders   orders.Service
	Profiles profiles.Service
	Carts    cartcontrollers.Opener
	Checkout cartcontrollers.CheckoutDeps
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisStore RedisStore,
	metricsHandler http.Handler,
	svc Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.AllowedOrigins),
	)

	var (
		idempotencyStore pkgredis.IdempotencyStore
		rateStore        interface {
			IncrWithTTL(context.Context, string, time.Duration) (int64, error)
		}
		ready = map[string]controllers.Pinger{}
	)
	if dbP != nil {
		ready["db"] = dbP
	}
	if redisStore != nil {
		idempotencyStore = redisStore
		rateStore = redisStore
		ready["redis"] = redisStore
	}
	orderIdem := middleware.Idempotency(idempotencyStore, middleware.OrderIdempotency, logg)
	checkoutIdem := middleware.Idempotency(idempotencyStore, middleware.CheckoutIdempotency, logg)
	adminIdem := middleware.Idempotency(idempotencyStore, middleware.AdminIdempotency, logg)
	orderPolicy := middleware.NewRateLimitPolicy(
		"orders",
		cfg.Checkout.RateLimitWindow,
		cfg.Checkout.RateLimitIPLimit,
		cfg.Checkout.RateLimitContactLimit,
	)
	orderLimit := middleware.RateLimit(orderPolicy, rateStore, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, ready))
	})
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/storefront/{slug}", func(r chi.Router) {
		r.Get("/", controllers.Storefront(svc.Tenants, logg))
		r.Get("/orders/{orderNumber}", controllers.OrderConfirmation(svc.Tenants, svc.Orders, logg))
	})

	// Order backend used by remote storefront clients.
	r.With(orderLimit, orderIdem).Post("/api/orders", controllers.CreateOrder(svc.Orders, logg))

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(middleware.CartSession(logg))
		r.Get("/", cartcontrollers.Get(svc.Carts, logg))
		r.Delete("/", cartcontrollers.Clear(svc.Carts, logg))
		r.Post("/items", cartcontrollers.AddItem(svc.Carts, logg))
		r.Patch("/items/{tenantId}/{productId}", cartcontrollers.UpdateQuantity(svc.Carts, logg))
		r.Delete("/items/{tenantId}/{productId}", cartcontrollers.RemoveItem(svc.Carts, logg))
		r.Put("/profile", cartcontrollers.SaveProfile(svc.Carts, logg))
		r.Delete("/profile", cartcontrollers.ClearProfile(svc.Carts, logg))
		r.With(orderLimit, checkoutIdem).Post("/checkout", cartcontrollers.Checkout(svc.Carts, svc.Checkout, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Auth, logg))
		r.Get("/me", controllers.MeProfile(svc.Profiles, logg))
		r.Put("/me", controllers.MeUpdate(svc.Profiles, logg))
		r.With(adminIdem).Post("/onboarding", controllers.Onboard(svc.Tenants, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(
			middleware.Auth(cfg.Auth, logg),
			middleware.ProfileContext(svc.Profiles, logg),
		)

		r.Group(func(r chi.Router) {
			r.Use(
				middleware.RequireRole(logg, enums.UserRoleAdmin, enums.UserRoleSuperAdmin),
				middleware.RequireTenant(logg),
			)

			r.Get("/dashboard", admincontrollers.Dashboard(svc.Catalog, svc.Orders, logg))

			r.Get("/store", admincontrollers.StoreSettings(svc.Tenants, logg))
			r.Put("/store", admincontrollers.UpdateStoreSettings(svc.Tenants, logg))

			r.Get("/categories", admincontrollers.ListCategories(svc.Catalog, logg))
			r.Post("/categories", admincontrollers.CreateCategory(svc.Catalog, logg))
			r.Patch("/categories/{categoryId}", admincontrollers.UpdateCategory(svc.Catalog, logg))
			r.Delete("/categories/{categoryId}", admincontrollers.DeleteCategory(svc.Catalog, logg))

			r.Get("/products", admincontrollers.ListProducts(svc.Catalog, logg))
			r.Post("/products", admincontrollers.CreateProduct(svc.Catalog, logg))
			r.Get("/products/{productId}", admincontrollers.GetProduct(svc.Catalog, logg))
			r.Patch("/products/{productId}", admincontrollers.UpdateProduct(svc.Catalog, logg))
			r.Delete("/products/{productId}", admincontrollers.DeleteProduct(svc.Catalog, logg))

			r.Get("/orders", admincontrollers.ListOrders(svc.Orders, logg))
			r.Get("/orders/{orderId}", admincontrollers.GetOrder(svc.Orders, logg))
			r.Patch("/orders/{orderId}/status", admincontrollers.UpdateOrderStatus(svc.Orders, logg))
		})

		r.Route("/stores", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.UserRoleSuperAdmin))
			r.Get("/", admincontrollers.ListStores(svc.Tenants, logg))
			r.With(adminIdem).Post("/", admincontrollers.CreateStore(svc.Tenants, logg))
			r.Delete("/{tenantId}", admincontrollers.DeleteStore(svc.Tenants, logg))
			r.Post("/{tenantId}/vendor", admincontrollers.AssignVendor(svc.Tenants, logg))
			r.With(adminIdem).Post("/{tenantId}/seed", admincontrollers.SeedStore(svc.Tenants, svc.Catalog, logg))
		})
	})

	return r
}
