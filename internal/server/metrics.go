// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import "github.com/prometheus/client_golang/prometheus"

var (
	// requestsTotal counts API requests by route and status code.
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "litmap_http_requests_total",
			Help: "HTTP requests served, by route and status code.",
		},
		[]string{"route", "code"},
	)

	// requestDuration observes handler latency by route.
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "litmap_http_request_duration_seconds",
			Help:    "HTTP request latency, by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// searchResults observes merged result counts by source.
	searchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "litmap_search_results",
			Help:    "Records returned per search, by source.",
			Buckets: []float64{0, 1, 5, 10, 20, 25},
		},
		[]string{"source"},
	)

	// graphNodes observes citation graph sizes.
	graphNodes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "litmap_graph_nodes",
			Help:    "Nodes per citation graph, main node included.",
			Buckets: []float64{1, 2, 4, 8, 12, 16},
		},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal)
	prometheus.MustRegister(requestDuration)
	prometheus.MustRegister(searchResults)
	prometheus.MustRegister(graphNodes)
}
