package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	EntriesResolvedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_entries_resolved_total",
			Help: "Entry resolutions by outcome",
		},
		[]string{"outcome"},
	)

	ExperiencesPublishedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "experiences_published_total",
			Help: "Experiences published, manually or by the scheduler",
		},
	)

	MediaUploadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_uploads_total",
			Help: "Successful media uploads",
		},
	)
)
