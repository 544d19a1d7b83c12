package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"incident-hub/common"
	"incident-hub/logger"
	"incident-hub/model"
	"incident-hub/service"

	"github.com/sirupsen/logrus"
)

// IncidentHandler serves the incident CRUD surface of the incidents service.
type IncidentHandler struct {
	service *service.IncidentService
}

func NewIncidentHandler(service *service.IncidentService) *IncidentHandler {
	return &IncidentHandler{service: service}
}

// Create godoc
// @Summary      Open a new incident
// @Tags         incidents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  model.CreateIncidentRequest  true  "New incident"
// @Success      201  {object}  model.Incident
// @Failure      400  {object}  common.AppError
// @Router       /incidents [post]
func (h *IncidentHandler) Create(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateIncidentRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	log := logger.Log.WithFields(logrus.Fields{
		"user_id": userID,
		"title":   req.Title,
	})
	log.Info("Create incident request received")

	incident, err := h.service.Create(userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateTitle) {
			return common.NewAppError(http.StatusBadRequest, "Incident with this title already exists", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not create incident", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(incident)
	return nil
}

// List godoc
// @Summary      List incidents
// @Tags         incidents
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "Page size (1-1000)"
// @Param        offset  query  int  false  "Page offset"
// @Success      200  {array}  model.Incident
// @Router       /incidents [get]
func (h *IncidentHandler) List(w http.ResponseWriter, r *http.Request) *common.AppError {
	limit, offset := pagination(r)

	incidents, err := h.service.List(limit, offset)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not list incidents", err)
	}
	if incidents == nil {
		incidents = []*model.Incident{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(incidents)
	return nil
}

// Get godoc
// @Summary      Get one incident
// @Tags         incidents
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Incident ID"
// @Success      200  {object}  model.Incident
// @Failure      404  {object}  common.AppError
// @Router       /incidents/{id} [get]
func (h *IncidentHandler) Get(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid incident ID", nil)
	}

	incident, err := h.service.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrIncidentNotFound) {
			return common.NewAppError(http.StatusNotFound, "Incident not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve incident", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(incident)
	return nil
}

// Update godoc
// @Summary      Update an incident
// @Description  Partial update; only the owner may modify an incident
// @Tags         incidents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                          true  "Incident ID"
// @Param        request  body  model.UpdateIncidentRequest  true  "Changed fields"
// @Success      200  {object}  model.Incident
// @Failure      403  {object}  common.AppError
// @Failure      404  {object}  common.AppError
// @Router       /incidents/{id} [put]
func (h *IncidentHandler) Update(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid incident ID", nil)
	}

	var req model.UpdateIncidentRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	incident, err := h.service.Update(id, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIncidentNotFound):
			return common.NewAppError(http.StatusNotFound, "Incident not found", nil)
		case errors.Is(err, service.ErrNotOwner):
			return common.NewAppError(http.StatusForbidden, "Only the owner can modify this incident", nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not update incident", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(incident)
	return nil
}

// Delete godoc
// @Summary      Delete an incident
// @Tags         incidents
// @Security     BearerAuth
// @Param        id  path  int  true  "Incident ID"
// @Success      204
// @Failure      403  {object}  common.AppError
// @Failure      404  {object}  common.AppError
// @Router       /incidents/{id} [delete]
func (h *IncidentHandler) Delete(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid incident ID", nil)
	}

	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	if err := h.service.Delete(id, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrIncidentNotFound):
			return common.NewAppError(http.StatusNotFound, "Incident not found", nil)
		case errors.Is(err, service.ErrNotOwner):
			return common.NewAppError(http.StatusForbidden, "Only the owner can delete this incident", nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not delete incident", err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
