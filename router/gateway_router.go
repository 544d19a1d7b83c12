package router

import (
	"net/http"

	"incident-hub/handler"
	"incident-hub/metrics"
)

// NewGatewayRouter wires the BFF routes. The aggregation endpoint only
// requires bearer presence here: verification happens downstream, and the
// short-circuit keeps unauthenticated requests from costing any fan-out.
func NewGatewayRouter(gatewayHandler *handler.GatewayHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.Handle("GET /incidents/detailed", handler.RequireBearer(
		handler.ErrorHandlingMiddleware(gatewayHandler.DetailedIncidents),
	))

	return corsMiddleware(metrics.Instrument(handler.RequestIDMiddleware(mux)))
}
