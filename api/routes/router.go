package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prismqdev/foodler-backend/api/controllers"
	"github.com/prismqdev/foodler-backend/api/middleware"
	"github.com/prismqdev/foodler-backend/internal/discounts"
	"github.com/prismqdev/foodler-backend/internal/fridge"
	"github.com/prismqdev/foodler-backend/internal/nutrition"
	"github.com/prismqdev/foodler-backend/pkg/config"
	"github.com/prismqdev/foodler-backend/pkg/db"
	"github.com/prismqdev/foodler-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	fridgeService fridge.Service,
	aggregator *nutrition.Aggregator,
	discountsService discounts.Service,
	metricsRegistry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if metricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/fridge", func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Post("/", controllers.FridgeAddItem(fridgeService, logg))
			r.Get("/", controllers.FridgeListItems(fridgeService, logg))
			r.Get("/rotation", controllers.FridgeRotation(fridgeService, logg))
			r.Get("/expiring", controllers.FridgeExpiring(fridgeService, logg))
			r.Patch("/{id}/quantity", controllers.FridgeUpdateQuantity(fridgeService, logg))
			r.Post("/{id}/used", controllers.FridgeMarkUsed(fridgeService, logg))
			r.Delete("/{id}", controllers.FridgeDeleteItem(fridgeService, logg))
		})
		r.Post("/rotation/advance", controllers.FridgeAdvanceRotation(fridgeService, logg))
	})

	r.Route("/api/v1/nutrition", func(r chi.Router) {
		r.Get("/lookup", controllers.NutritionLookup(aggregator, logg))
		r.Get("/detailed", controllers.NutritionDetailed(aggregator, logg))
		r.Get("/search", controllers.NutritionSearch(aggregator, logg))
		r.Get("/barcode/{code}", controllers.NutritionBarcode(aggregator, logg))
	})

	r.Route("/api/v1/discounts", func(r chi.Router) {
		r.Get("/", controllers.DiscountsList(discountsService, logg))
		r.Get("/shops/{shop}", controllers.DiscountsByShop(discountsService, logg))
		r.Get("/search", controllers.DiscountsSearch(discountsService, logg))
		r.Get("/best", controllers.DiscountsBest(discountsService, logg))
	})

	r.Route("/api/v1/calculator", func(r chi.Router) {
		r.Post("/needs", controllers.CalculatorNeeds(logg))
		r.Post("/meal-balance", controllers.CalculatorMealBalance(logg))
		r.Post("/suggestions", controllers.CalculatorSuggestions(logg))
		r.Post("/shopping-list", controllers.CalculatorShoppingList(fridgeService, logg))
	})

	return r
}
