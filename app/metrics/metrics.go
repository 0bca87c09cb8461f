package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	VariantMapBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_variant_map_builds_total",
			Help: "Total number of variant maps built from the store",
		},
		[]string{"result"},
	)

	VariantMapDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_variant_map_build_duration_seconds",
			Help:    "Time taken to build a variant map from the store",
			Buckets: prometheus.DefBuckets,
		},
	)

	ProductFilterCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_product_filter_calls_total",
			Help: "Total number of product type filter calls",
		},
		[]string{"type", "result"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_variant_cache_lookups_total",
			Help: "Variant cache lookups by tier and outcome",
		},
		[]string{"tier", "result"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)
)
