// Package metrics собирает метрики Prometheus для HTTP-слоя, аналитики и ленты событий.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Имена аналитических представлений для AnalyticsDuration.
const (
	ViewPopular        = "popular"
	ViewDirectorFilms  = "director_films"
	ViewRecommendation = "recommendation"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmorate_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "filmorate_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	AnalyticsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "filmorate_analytics_duration_seconds",
			Help:    "Duration of ranking and recommendation computations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"view"},
	)

	AnalyticsErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmorate_analytics_errors_total",
			Help: "Total number of failed ranking and recommendation computations",
		},
		[]string{"view"},
	)

	// Лента событий
	FeedEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmorate_feed_events_published_total",
			Help: "Total number of feed events published",
		},
		[]string{"operation"},
	)

	FeedEventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmorate_feed_events_consumed_total",
			Help: "Total number of feed events handled by the worker",
		},
		[]string{"result"}, // "ack", "requeue", "reject"
	)
)

// RecordHTTPRequest записывает метрику HTTP-запроса
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveAnalytics записывает длительность вычисления представления
func ObserveAnalytics(view string, duration time.Duration, err error) {
	AnalyticsDuration.WithLabelValues(view).Observe(duration.Seconds())
	if err != nil {
		AnalyticsErrors.WithLabelValues(view).Inc()
	}
}

func RecordFeedPublished(operation string) {
	FeedEventsPublished.WithLabelValues(operation).Inc()
}

func RecordFeedConsumed(result string) {
	FeedEventsConsumed.WithLabelValues(result).Inc()
}
