package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"incident-hub/client"
	"incident-hub/common"
	"incident-hub/model"
	"incident-hub/service"
)

type contextKey string

const (
	UserIDKey      contextKey = "userID"
	UserEmailKey   contextKey = "userEmail"
	CurrentUserKey contextKey = "currentUser"
)

// IdentityResolver re-resolves the token subject to a live identity record.
// The users service resolves against its own store; the incidents service
// resolves by calling the users service with the forwarded bearer header.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, bearer string, userID int) (*model.User, error)
}

// Authenticator is the guard in front of protected endpoints. It converts a
// raw Authorization header into an authenticated principal, or rejects the
// request before any backend work happens.
type Authenticator struct {
	auth     *service.AuthService
	resolver IdentityResolver
}

// NewAuthenticator builds a claims-only guard. resolver may be nil; use
// WithResolver for endpoints that need the subject confirmed to still exist.
func NewAuthenticator(auth *service.AuthService) *Authenticator {
	return &Authenticator{auth: auth}
}

// WithResolver returns a copy of the guard that additionally re-resolves the
// identity record on every request and rejects tokens whose subject has been
// deleted.
func (a *Authenticator) WithResolver(resolver IdentityResolver) *Authenticator {
	return &Authenticator{auth: a.auth, resolver: resolver}
}

// Middleware authenticates the request. A missing or malformed header is
// rejected immediately, before any verification or lookup. All token
// failures produce the same 401 body.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			common.NewAppError(http.StatusUnauthorized, "Authorization header is required", nil).Send(w)
			return
		}

		headerParts := strings.Split(header, " ")
		if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
			common.NewAppError(http.StatusUnauthorized, "Invalid authorization header format", nil).Send(w)
			return
		}

		claims, err := a.auth.VerifyToken(headerParts[1], model.TokenTypeAccess)
		if err != nil {
			common.NewAppError(http.StatusUnauthorized, "Invalid or expired token", nil).Send(w)
			return
		}

		userID, err := service.SubjectID(claims)
		if err != nil {
			common.NewAppError(http.StatusUnauthorized, "Invalid or expired token", nil).Send(w)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		ctx = context.WithValue(ctx, UserEmailKey, claims.Email)

		if a.resolver != nil {
			user, err := a.resolver.ResolveIdentity(ctx, header, userID)
			if err != nil {
				if errors.Is(err, client.ErrDownstreamUnavailable) {
					common.NewAppError(http.StatusServiceUnavailable, "Identity service unavailable", err).Send(w)
					return
				}
				// Deleted subject or rejected forwarded token: same 401.
				common.NewAppError(http.StatusUnauthorized, "Invalid or expired token", nil).Send(w)
				return
			}
			ctx = context.WithValue(ctx, CurrentUserKey, user)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the authenticated subject stored by Middleware.
func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(UserIDKey).(int)
	return id, ok
}

// CurrentUserFromContext returns the resolved identity record, when the
// guard was configured with a resolver.
func CurrentUserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(CurrentUserKey).(*model.User)
	return user, ok
}
