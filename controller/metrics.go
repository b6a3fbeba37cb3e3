package controller

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchesTotal counts fetches issued, one per distinct Query.
	FetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listview_fetches_total",
			Help: "Total number of list page fetches issued",
		},
		[]string{"list"},
	)

	// StaleResponsesTotal counts results discarded because a newer Query superseded them.
	StaleResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listview_stale_responses_total",
			Help: "Total number of list page results discarded as stale",
		},
		[]string{"list"},
	)

	// FetchErrorsTotal counts failed fetches of the current Query.
	FetchErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listview_fetch_errors_total",
			Help: "Total number of list page fetches that failed",
		},
		[]string{"list"},
	)

	// FetchDuration tracks fetch latency, stale or not.
	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "listview_fetch_duration_seconds",
			Help:    "List page fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"list"},
	)
)
