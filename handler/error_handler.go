package handler

import (
	"incident-hub/common"
	"net/http"
)

// ErrorHandlingMiddleware lets handlers return an *AppError instead of
// writing error responses inline.
func ErrorHandlingMiddleware(next func(http.ResponseWriter, *http.Request) *common.AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := next(w, r); err != nil {
			err.Send(w)
		}
	}
}
