// Package middleware provides observability and gating building blocks
// for navigation routers.
//
// # Prometheus
//
// Metrics is a navigation observer recording counters and latency
// histograms per navigation kind and outcome:
//
//	m := middleware.NewMetrics(middleware.WithNamespace("lectern"))
//	router := nav.New(h, v, l, nav.WithObserver(m))
//	http.Handle("/metrics", promhttp.Handler())
//
// # OpenTelemetry
//
// Tracing is a navigation observer emitting one span per navigation
// from the global tracer provider:
//
//	router := nav.New(h, v, l, nav.WithObserver(middleware.NewTracing()))
//
// # Gating
//
// Chain, Only, and Skip compose nav.Middleware values, and Logging
// records every decision through slog.
package middleware
