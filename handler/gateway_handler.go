package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"incident-hub/client"
	"incident-hub/common"
	"incident-hub/service"
)

// GatewayHandler serves the BFF aggregation endpoint. The gateway never
// verifies tokens itself: it checks that a bearer header is present, forwards
// it unchanged, and lets the downstream services do their own verification.
type GatewayHandler struct {
	service *service.GatewayService
}

func NewGatewayHandler(service *service.GatewayService) *GatewayHandler {
	return &GatewayHandler{service: service}
}

// RequireBearer rejects requests without a bearer header before any
// downstream call is issued. A request that cannot possibly authenticate
// downstream should not cost a network round-trip.
func RequireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			common.NewAppError(http.StatusUnauthorized, "Authorization header is required", nil).Send(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// DetailedIncidents fans out to the incidents and users services and returns
// incidents hydrated with their owner records.
func (h *GatewayHandler) DetailedIncidents(w http.ResponseWriter, r *http.Request) *common.AppError {
	limit, offset := pagination(r)
	bearer := r.Header.Get("Authorization")

	results, err := h.service.DetailedIncidents(r.Context(), bearer, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, client.ErrDownstreamRejected):
			// A downstream rejection is our rejection; never retried with
			// different credentials.
			return common.NewAppError(http.StatusUnauthorized, "Invalid or expired token", nil)
		case errors.Is(err, client.ErrDownstreamUnavailable):
			return common.NewAppError(http.StatusServiceUnavailable, "Downstream service unavailable", err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not retrieve incidents", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(results)
	return nil
}
