package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/javiortega/techdepot-backend/api/controllers"
	"github.com/javiortega/techdepot-backend/api/middleware"
	"github.com/javiortega/techdepot-backend/internal/addresses"
	"github.com/javiortega/techdepot-backend/internal/auth"
	"github.com/javiortega/techdepot-backend/internal/basket"
	"github.com/javiortega/techdepot-backend/internal/cards"
	"github.com/javiortega/techdepot-backend/internal/catalog"
	checkoutsvc "github.com/javiortega/techdepot-backend/internal/checkout"
	"github.com/javiortega/techdepot-backend/internal/customers"
	"github.com/javiortega/techdepot-backend/internal/orders"
	"github.com/javiortega/techdepot-backend/internal/statistics"
	"github.com/javiortega/techdepot-backend/pkg/auth/session"
	"github.com/javiortega/techdepot-backend/pkg/config"
	"github.com/javiortega/techdepot-backend/pkg/logger"
	"github.com/javiortega/techdepot-backend/pkg/metrics"
	"github.com/javiortega/techdepot-backend/pkg/redis"
)

// Services bundles everything the HTTP layer depends on. Nil entries are
// tolerated; the affected controllers answer 500 instead of panicking.
type Services struct {
	Auth       auth.Service
	Customers  customers.Service
	Catalog    catalog.Service
	Basket     basket.Service
	Checkout   checkoutsvc.Service
	Orders     orders.Service
	Addresses  addresses.Service
	Cards      cards.Service
	Statistics statistics.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	sessionChecker session.AccessSessionChecker,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(
			middleware.AuthRateLimit(registerPolicy, redisClient, logg),
			middleware.Idempotency(redisClient, logg),
		).Post("/register", controllers.AuthRegister(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(svcs.Auth, cfg.JWT, logg))
		r.Post("/validate", controllers.AuthValidate(cfg.JWT, logg))
	})

	// Catalog browsing is open to anonymous shoppers.
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(svcs.Catalog, logg))
		r.Get("/offers", controllers.ProductOffers(svcs.Catalog, logg))
		r.Get("/{productId}", controllers.ProductDetail(svcs.Catalog, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/me", func(r chi.Router) {
			r.Get("/", controllers.CustomerProfile(svcs.Customers, logg))
			r.Put("/", controllers.CustomerUpdateProfile(svcs.Customers, logg))
		})

		r.Route("/basket", func(r chi.Router) {
			r.Get("/", controllers.BasketFetch(svcs.Basket, logg))
			r.Delete("/", controllers.BasketClear(svcs.Basket, logg))
			r.Post("/items", controllers.BasketAddItem(svcs.Basket, logg))
			r.Put("/items/{productId}", controllers.BasketUpdateItem(svcs.Basket, logg))
			r.Delete("/items/{productId}", controllers.BasketRemoveItem(svcs.Basket, logg))
		})

		r.Post("/checkout", controllers.Checkout(svcs.Checkout, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderHistory(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(svcs.Orders, logg))
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Get("/", controllers.AddressList(svcs.Addresses, logg))
			r.Post("/", controllers.AddressCreate(svcs.Addresses, logg))
			r.Put("/{addressId}", controllers.AddressUpdate(svcs.Addresses, logg))
			r.Delete("/{addressId}", controllers.AddressDelete(svcs.Addresses, logg))
		})

		r.Route("/cards", func(r chi.Router) {
			r.Get("/", controllers.CardList(svcs.Cards, logg))
			r.Post("/", controllers.CardSave(svcs.Cards, logg))
			r.Delete("/{cardId}", controllers.CardDelete(svcs.Cards, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Route("/products", func(r chi.Router) {
				r.Post("/", controllers.AdminCreateProduct(svcs.Catalog, logg))
				r.Patch("/{productId}", controllers.AdminUpdateProduct(svcs.Catalog, logg))
				r.Delete("/{productId}", controllers.AdminDeactivateProduct(svcs.Catalog, logg))
			})
			r.Post("/orders/{orderId}/delivery-status", controllers.AdminUpdateDeliveryStatus(svcs.Orders, logg))
		})

		r.Route("/statistics", func(r chi.Router) {
			r.Get("/card-totals", controllers.StatsCardTotals(svcs.Statistics, logg))
			r.Get("/top-customers", controllers.StatsTopCustomers(svcs.Statistics, logg))
			r.Get("/top-products", controllers.StatsTopProducts(svcs.Statistics, logg))
			r.Get("/open-baskets", controllers.StatsOpenBaskets(svcs.Statistics, logg))
			r.Get("/category-averages", controllers.StatsCategoryAverages(svcs.Statistics, logg))
		})
	})

	return r
}
