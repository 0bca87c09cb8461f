package server

import (
	"net/http"
	"time"

	"github.com/mytheresa/go-configurable-catalog/app/api"
	"github.com/mytheresa/go-configurable-catalog/app/cache"
	"github.com/mytheresa/go-configurable-catalog/app/catalog"
	"github.com/mytheresa/go-configurable-catalog/app/categories"
	"github.com/mytheresa/go-configurable-catalog/app/configurable"
	"github.com/mytheresa/go-configurable-catalog/models"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	// Redis is optional.
	Redis            *redis.Client
	CacheSize        int
	CacheTTL         time.Duration
	PriceScopeGlobal bool
}

// NewHandler wires repositories, the variant cache and every route.
func NewHandler(db *gorm.DB, opts Options, logger *zap.SugaredLogger) http.Handler {
	products := models.NewProductsRepository(db)
	cats := models.NewCategoriesRepository(db)
	attributes := models.NewAttributesRepository(db)
	links := models.NewConfigurableRepository(db)

	variants := cache.NewVariants(
		configurable.NewVariantAggregator(links),
		opts.Redis, opts.CacheSize, opts.CacheTTL, logger,
	)

	catalogHandler := catalog.NewCatalogHandler(products, variants, logger)
	categoryHandler := categories.NewCategoryHandler(cats, logger)
	adminHandler := configurable.NewAdminHandler(
		configurable.NewProductFilter(links),
		configurable.NewService(products, attributes, links, variants, opts.PriceScopeGlobal, logger),
		logger,
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /catalog", catalogHandler.HandleGet)
	mux.HandleFunc("GET /catalog/{sku}", catalogHandler.HandleGetProduct)
	mux.HandleFunc("GET /categories", categoryHandler.HandleGetAll)
	mux.HandleFunc("POST /categories", categoryHandler.HandleCreate)
	adminHandler.Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			api.ErrorResponse(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
		api.OKResponse(w, map[string]string{"status": "ok"})
	})

	return api.WithRequestLogging(mux, logger)
}
