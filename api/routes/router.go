package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/verdantloop/verdantloop-backend/api/controllers"
	cartcontrollers "github.com/verdantloop/verdantloop-backend/api/controllers/cart"
	catalogcontrollers "github.com/verdantloop/verdantloop-backend/api/controllers/catalog"
	ordercontrollers "github.com/verdantloop/verdantloop-backend/api/controllers/orders"
	paymentcontrollers "github.com/verdantloop/verdantloop-backend/api/controllers/payments"
	quizcontrollers "github.com/verdantloop/verdantloop-backend/api/controllers/quiz"
	"github.com/verdantloop/verdantloop-backend/api/middleware"
	cartsvc "github.com/verdantloop/verdantloop-backend/internal/cart"
	catalogsvc "github.com/verdantloop/verdantloop-backend/internal/catalog"
	ordersvc "github.com/verdantloop/verdantloop-backend/internal/orders"
	paymentsvc "github.com/verdantloop/verdantloop-backend/internal/payments"
	quizsvc "github.com/verdantloop/verdantloop-backend/internal/quiz"
	"github.com/verdantloop/verdantloop-backend/pkg/config"
	"github.com/verdantloop/verdantloop-backend/pkg/logger"
	"github.com/verdantloop/verdantloop-backend/pkg/metrics"
	"github.com/verdantloop/verdantloop-backend/pkg/session"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Database controllers.Pinger
	Cache    controllers.Pinger
	Sessions *session.Manager
	Metrics  *metrics.HTTPMetrics
	Registry *prometheus.Registry

	Cart     cartsvc.Service
	Catalog  catalogsvc.Service
	Orders   ordersvc.Service
	Payments paymentsvc.Service
	Quiz     quizsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Database, deps.Cache))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Shopper(cfg.Session, deps.Sessions, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(deps.Cart, logg))
			r.Delete("/", cartcontrollers.CartClear(deps.Cart, logg))
			r.Route("/items", func(r chi.Router) {
				r.Post("/", cartcontrollers.CartAddItem(deps.Cart, logg))
				r.Put("/{itemId}", cartcontrollers.CartUpdateItem(deps.Cart, logg))
				r.Delete("/{itemId}", cartcontrollers.CartRemoveItem(deps.Cart, logg))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", ordercontrollers.OrderCreate(deps.Orders, logg))
			r.Get("/", ordercontrollers.OrderList(deps.Orders, logg))
			r.Route("/{orderId}", func(r chi.Router) {
				r.Get("/", ordercontrollers.OrderFetch(deps.Orders, logg))
				r.Get("/status", ordercontrollers.OrderStatusFetch(deps.Orders, logg))
				r.Put("/status", ordercontrollers.OrderStatusUpdate(deps.Orders, logg))
			})
		})

		r.Post("/payments", paymentcontrollers.PaymentProcess(deps.Payments, deps.Orders, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogcontrollers.ProductList(deps.Catalog, logg))
			r.Get("/{productId}", catalogcontrollers.ProductFetch(deps.Catalog, logg))
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", catalogcontrollers.CategoryList(deps.Catalog, logg))
			r.Get("/{categoryId}", catalogcontrollers.CategoryFetch(deps.Catalog, logg))
		})

		r.Route("/quiz", func(r chi.Router) {
			r.Get("/questions", quizcontrollers.QuizQuestions(deps.Quiz, logg))
			r.Post("/submit", quizcontrollers.QuizSubmit(deps.Quiz, logg))
		})
	})

	return r
}
