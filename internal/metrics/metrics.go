// Package metrics holds the Prometheus collectors for the catalog service
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// catalogLoads counts catalog snapshot loads by source and outcome.
	catalogLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_loads_total",
		Help: "Total number of catalog loads by source and result",
	}, []string{"source", "result"}) // result: ok, error

	// catalogLoadDuration tracks the time taken to load and normalize the catalog.
	catalogLoadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_load_duration_seconds",
		Help:    "Time taken to load the catalog by source",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	}, []string{"source"})

	// catalogProducts is the size of the current snapshot.
	catalogProducts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_products",
		Help: "Number of products in the current catalog snapshot",
	})

	// catalogSkippedRows counts source rows dropped for lacking a product name.
	catalogSkippedRows = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_skipped_rows_total",
		Help: "Total number of source rows skipped during normalization",
	})

	// filterQueries tracks catalog filter requests and how much they narrowed the result.
	filterQueries = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_filter_result_ratio",
		Help:    "Filtered count divided by total products per catalog query",
		Buckets: []float64{0, 0.1, 0.25, 0.5, 0.75, 1},
	})

	// searchQueries counts site-wide searches by whether any item matched.
	searchQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "site_search_queries_total",
		Help: "Total number of site-wide search queries",
	}, []string{"matched"})

	// contactSubmissions counts contact form submissions by outcome.
	contactSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contact_submissions_total",
		Help: "Total number of contact form submissions by result",
	}, []string{"result"}) // result: created, invalid, error

	// emailFailures counts confirmation emails that could not be delivered.
	emailFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "contact_email_failures_total",
		Help: "Total number of confirmation emails that failed to send",
	})

	// productViews counts product detail views.
	productViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "product_views_total",
		Help: "Total number of product detail views",
	})
)

// Recorder records catalog service metrics
type Recorder struct{}

// NewRecorder creates a new metrics recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// RecordCatalogLoad records the outcome of one catalog load
func (r *Recorder) RecordCatalogLoad(source string, d time.Duration, products, skipped int, err error) {
	catalogLoadDuration.WithLabelValues(source).Observe(d.Seconds())
	if err != nil {
		catalogLoads.WithLabelValues(source, "error").Inc()
		return
	}
	catalogLoads.WithLabelValues(source, "ok").Inc()
	catalogProducts.Set(float64(products))
	catalogSkippedRows.Add(float64(skipped))
}

// RecordFilter records the narrowing ratio of a catalog query
func (r *Recorder) RecordFilter(total, filtered int) {
	if total == 0 {
		filterQueries.Observe(1)
		return
	}
	filterQueries.Observe(float64(filtered) / float64(total))
}

// RecordSearch records a site-wide search
func (r *Recorder) RecordSearch(matches int) {
	if matches > 0 {
		searchQueries.WithLabelValues("true").Inc()
		return
	}
	searchQueries.WithLabelValues("false").Inc()
}

// RecordContact records a contact submission outcome
func (r *Recorder) RecordContact(result string) {
	contactSubmissions.WithLabelValues(result).Inc()
}

// RecordEmailFailure records a failed confirmation email
func (r *Recorder) RecordEmailFailure() {
	emailFailures.Inc()
}

// RecordProductView records a product detail view
func (r *Recorder) RecordProductView() {
	productViews.Inc()
}
