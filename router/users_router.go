package router

import (
	"net/http"

	"incident-hub/common"
	"incident-hub/handler"
	"incident-hub/metrics"

	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/time/rate"
)

// Login gets 5 requests per minute per IP to damp brute forcing.
const loginRatePerMinute = 5

// NewUsersRouter wires the users service routes. Registration and login are
// public; everything else sits behind the identity gate, which re-resolves
// the subject so that tokens of deleted users stop working immediately.
func NewUsersRouter(auth *handler.Authenticator, userHandler *handler.UserHandler, authHandler *handler.AuthHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /swagger/", httpSwagger.Handler())

	mux.Handle("POST /login", handler.RateLimitMiddleware(
		rate.Limit(loginRatePerMinute)/60, loginRatePerMinute,
		handler.ErrorHandlingMiddleware(authHandler.Login),
	))
	mux.Handle("POST /token/refresh", handler.ErrorHandlingMiddleware(authHandler.Refresh))
	mux.Handle("POST /users", handler.ErrorHandlingMiddleware(userHandler.Register))

	protected := func(h func(http.ResponseWriter, *http.Request) *common.AppError) http.Handler {
		return auth.Middleware(handler.ErrorHandlingMiddleware(h))
	}

	mux.Handle("GET /users", protected(userHandler.List))
	mux.Handle("GET /users/me", protected(userHandler.Me))
	mux.Handle("GET /users/{id}", protected(userHandler.Get))
	mux.Handle("DELETE /users/{id}", protected(userHandler.Delete))
	mux.Handle("POST /users/batch", protected(userHandler.Batch))

	return corsMiddleware(metrics.Instrument(mux))
}
