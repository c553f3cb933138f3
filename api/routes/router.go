package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cafev2/storefront-backend/api/controllers"
	"github.com/cafev2/storefront-backend/api/middleware"
	"github.com/cafev2/storefront-backend/internal/adminauth"
	"github.com/cafev2/storefront-backend/internal/availability"
	cartsvc "github.com/cafev2/storefront-backend/internal/cart"
	checkoutsvc "github.com/cafev2/storefront-backend/internal/checkout"
	menusvc "github.com/cafev2/storefront-backend/internal/menu"
	settingssvc "github.com/cafev2/storefront-backend/internal/settings"
	"github.com/cafev2/storefront-backend/pkg/config"
	"github.com/cafev2/storefront-backend/pkg/logger"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	ReadyChecks  map[string]func() error
	Availability *availability.Service
	Menu         menusvc.Service
	Cart         cartsvc.Service
	Checkout     checkoutsvc.Service
	Settings     settingssvc.Service
	AdminAuth    adminauth.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.ReadyChecks))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/menu", controllers.MenuList(deps.Menu, logg))
		r.Get("/store/status", controllers.StoreStatus(deps.Availability))

		r.Route("/carts", func(r chi.Router) {
			r.Post("/", controllers.CartCreate(logg))
			r.Route("/{cartID}", func(r chi.Router) {
				r.Get("/", controllers.CartGet(deps.Cart, logg))
				r.Delete("/", controllers.CartClear(deps.Cart, logg))
				r.Post("/items", controllers.CartAddItem(deps.Cart, logg))
				r.Patch("/items/{productID}", controllers.CartUpdateItem(deps.Cart, logg))
				r.Delete("/items/{productID}", controllers.CartRemoveItem(deps.Cart, logg))
				r.Post("/checkout", controllers.Checkout(deps.Checkout, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Post("/auth/login", controllers.AdminLogin(deps.AdminAuth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.JWT, logg))

			r.Route("/menu", func(r chi.Router) {
				r.Post("/", controllers.AdminMenuCreate(deps.Menu, logg))
				r.Post("/import", controllers.AdminMenuImport(deps.Menu, logg))
				r.Get("/export", controllers.AdminMenuExport(deps.Menu, logg))
				r.Put("/{itemID}", controllers.AdminMenuUpdate(deps.Menu, logg))
				r.Delete("/{itemID}", controllers.AdminMenuDelete(deps.Menu, logg))
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", controllers.AdminSettingsGet(deps.Settings, logg))
				r.Patch("/", controllers.AdminSettingsUpdate(deps.Settings, logg))
			})
		})
	})

	return r
}
