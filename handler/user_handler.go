package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"incident-hub/common"
	"incident-hub/model"
	"incident-hub/service"
)

// UserHandler serves the user CRUD surface of the users service.
type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register godoc
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body  model.CreateUserRequest  true  "New user"
// @Success      201  {object}  model.User
// @Failure      400  {object}  common.AppError
// @Router       /users [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateUserRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	user, err := h.service.Register(&req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return common.NewAppError(http.StatusBadRequest, "Email already registered", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not create user", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
	return nil
}

// List godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "Page size (1-1000)"
// @Param        offset  query  int  false  "Page offset"
// @Success      200  {array}  model.User
// @Router       /users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) *common.AppError {
	limit, offset := pagination(r)

	users, err := h.service.List(limit, offset)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not list users", err)
	}
	if users == nil {
		users = []*model.User{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(users)
	return nil
}

// Get godoc
// @Summary      Get one user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "User ID"
// @Success      200  {object}  model.User
// @Failure      404  {object}  common.AppError
// @Router       /users/{id} [get]
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid user ID", nil)
	}

	user, err := h.service.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return common.NewAppError(http.StatusNotFound, "User not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve user", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(user)
	return nil
}

// Delete godoc
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  int  true  "User ID"
// @Success      204
// @Failure      404  {object}  common.AppError
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid user ID", nil)
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return common.NewAppError(http.StatusNotFound, "User not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not delete user", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// Batch godoc
// @Summary      Batch user lookup
// @Description  Internal endpoint used by the gateway to resolve incident owners in one call
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  model.BatchUsersRequest  true  "User IDs"
// @Success      200  {array}  model.User
// @Router       /users/batch [post]
func (h *UserHandler) Batch(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.BatchUsersRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	users, err := h.service.GetByIDs(req.IDs)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve users", err)
	}
	if users == nil {
		users = []*model.User{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(users)
	return nil
}

// Me godoc
// @Summary      Get the authenticated user's own record
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.User
// @Router       /users/me [get]
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, ok := CurrentUserFromContext(r.Context())
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid or expired token", nil)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(user)
	return nil
}

// pagination reads limit/offset query parameters with the service defaults.
func pagination(r *http.Request) (limit, offset int) {
	limit = 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}
	return limit, offset
}
