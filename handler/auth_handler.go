package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"incident-hub/common"
	"incident-hub/logger"
	"incident-hub/model"
	"incident-hub/service"
)

// AuthHandler serves login and token refresh.
type AuthHandler struct {
	users *service.UserService
}

func NewAuthHandler(users *service.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Login godoc
// @Summary      Authenticate with email and password
// @Description  Form-encoded credentials; returns an access/refresh token pair
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Email address"
// @Param        password  formData  string  true  "Password"
// @Success      200  {object}  model.TokenPair
// @Failure      401  {object}  common.AppError
// @Router       /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	if err := r.ParseForm(); err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid form body", err)
	}

	// The OAuth2 password form calls the field "username" even when it
	// carries an email.
	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		return common.NewAppError(http.StatusBadRequest, "username and password are required", nil)
	}

	pair, err := h.users.Login(email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return common.NewAppError(http.StatusUnauthorized, "Invalid email or password", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not log in", err)
	}

	logger.Log.WithField("email", email).Info("Login succeeded")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(pair)
	return nil
}

// Refresh godoc
// @Summary      Exchange a refresh token for a new access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body  model.RefreshRequest  true  "Refresh token"
// @Success      200  {object}  model.AccessTokenResponse
// @Failure      401  {object}  common.AppError
// @Router       /token/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RefreshRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	accessToken, err := h.users.Refresh(req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken),
			errors.Is(err, service.ErrExpiredToken),
			errors.Is(err, service.ErrUserNotFound):
			// One uniform rejection: expired, forged and revoked-by-deletion
			// tokens are indistinguishable to the caller.
			return common.NewAppError(http.StatusUnauthorized, "Invalid or expired token", nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not refresh token", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(model.AccessTokenResponse{
		AccessToken: accessToken,
		TokenType:   model.TokenTypeBearer,
	})
	return nil
}
