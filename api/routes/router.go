package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eurenemendes/ecofeira-backend/api/controllers"
	"github.com/eurenemendes/ecofeira-backend/api/middleware"
	"github.com/eurenemendes/ecofeira-backend/internal/catalog"
	"github.com/eurenemendes/ecofeira-backend/internal/comparison"
	"github.com/eurenemendes/ecofeira-backend/internal/content"
	"github.com/eurenemendes/ecofeira-backend/internal/favorites"
	"github.com/eurenemendes/ecofeira-backend/internal/shoppinglist"
	"github.com/eurenemendes/ecofeira-backend/internal/stores"
	"github.com/eurenemendes/ecofeira-backend/internal/strategy"
	"github.com/eurenemendes/ecofeira-backend/pkg/config"
	"github.com/eurenemendes/ecofeira-backend/pkg/db"
	"github.com/eurenemendes/ecofeira-backend/pkg/logger"
	"github.com/eurenemendes/ecofeira-backend/pkg/metrics"
	"github.com/eurenemendes/ecofeira-backend/pkg/redis"
)

// RouterParams carries everything the HTTP surface needs.
type RouterParams struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    redis.Pinger
	Metrics  *metrics.HTTPMetrics
	Gatherer prometheus.Gatherer

	CatalogService    catalog.Service
	StoreService      stores.Service
	ContentService    content.Service
	ListService       shoppinglist.Service
	FavoritesService  favorites.Service
	ComparisonService comparison.Service
	StrategyService   strategy.Service
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(p.Metrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})

	if p.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.CatalogProducts(p.CatalogService, logg))
			r.Get("/listings", controllers.CatalogListings(p.CatalogService, logg))
			r.Get("/suggestions", controllers.CatalogSuggestions(p.CatalogService, logg))
			r.Get("/categories", controllers.CatalogCategories(p.CatalogService, logg))
			r.Get("/{productId}", controllers.CatalogProduct(p.CatalogService, logg))
		})

		r.Route("/stores", func(r chi.Router) {
			r.Get("/", controllers.StoreList(p.StoreService, logg))
			r.Get("/suggestions", controllers.StoreSuggestions(p.StoreService, logg))
			r.Get("/{storeName}", controllers.StoreDetail(p.StoreService, logg))
		})

		r.Route("/content", func(r chi.Router) {
			r.Get("/banners", controllers.ContentBanners(p.ContentService, logg))
			r.Get("/suggestions", controllers.ContentSuggestions(p.ContentService, logg))
		})

		r.Route("/list", func(r chi.Router) {
			r.Get("/", controllers.ListFetch(p.ListService, logg))
			r.Post("/items", controllers.ListAddItem(p.ListService, logg))
			r.Patch("/items/{itemId}", controllers.ListUpdateQuantity(p.ListService, logg))
			r.Post("/items/{itemId}/toggle", controllers.ListToggleChecked(p.ListService, logg))
			r.Delete("/items/{itemId}", controllers.ListRemoveItem(p.ListService, logg))
			r.Delete("/", controllers.ListClear(p.ListService, logg))

			r.Get("/comparison", controllers.ListComparison(p.ComparisonService, logg))
			r.Get("/comparison/{storeName}", controllers.ComparisonStore(p.ComparisonService, logg))
			r.Get("/strategy", controllers.ListStrategy(p.StrategyService, logg))
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", controllers.FavoritesList(p.FavoritesService, logg))
			r.Get("/ids", controllers.FavoritesIDs(p.FavoritesService, logg))
			r.Delete("/", controllers.FavoritesClear(p.FavoritesService, logg))
			r.Put("/{productId}", controllers.FavoritesAdd(p.FavoritesService, logg))
			r.Delete("/{productId}", controllers.FavoritesRemove(p.FavoritesService, logg))
		})
	})

	return r
}
