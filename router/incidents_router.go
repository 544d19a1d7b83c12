package router

import (
	"net/http"

	"incident-hub/common"
	"incident-hub/handler"
	"incident-hub/metrics"
)

// NewIncidentsRouter wires the incidents service routes. Every incident
// route sits behind the identity gate; the gate's resolver calls the users
// service with the forwarded bearer token, so a deleted subject is rejected
// here even while its access token is still within its lifetime.
func NewIncidentsRouter(auth *handler.Authenticator, incidentHandler *handler.IncidentHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /metrics", metrics.Handler())

	protected := func(h func(http.ResponseWriter, *http.Request) *common.AppError) http.Handler {
		return auth.Middleware(handler.ErrorHandlingMiddleware(h))
	}

	mux.Handle("POST /incidents", protected(incidentHandler.Create))
	mux.Handle("GET /incidents", protected(incidentHandler.List))
	mux.Handle("GET /incidents/{id}", protected(incidentHandler.Get))
	mux.Handle("PUT /incidents/{id}", protected(incidentHandler.Update))
	mux.Handle("DELETE /incidents/{id}", protected(incidentHandler.Delete))

	return corsMiddleware(metrics.Instrument(mux))
}
