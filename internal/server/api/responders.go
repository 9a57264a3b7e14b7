package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/thanawatkee/posewatch/internal/store"
)

// ResponderHandler handles HTTP requests for responder resources.
type ResponderHandler struct {
	store *store.Store
}

// NewResponderHandler creates a new ResponderHandler with the given store.
func NewResponderHandler(s *store.Store) *ResponderHandler {
	return &ResponderHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *ResponderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/responders or /api/responders/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/responders")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/responders
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/responders/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createResponderRequest struct {
	AlertType  string          `json:"alert_type"`
	PluginName string          `json:"plugin_name"`
	ActionName string          `json:"action_name"`
	Config     json.RawMessage `json:"config"`
}

type updateResponderRequest struct {
	AlertType  string          `json:"alert_type"`
	PluginName string          `json:"plugin_name"`
	ActionName string          `json:"action_name"`
	Config     json.RawMessage `json:"config"`
	Enabled    *bool           `json:"enabled"`
}

type responderResponse struct {
	ID         string          `json:"id"`
	AlertType  string          `json:"alert_type"`
	PluginName string          `json:"plugin_name"`
	ActionName string          `json:"action_name"`
	Config     json.RawMessage `json:"config"`
	Enabled    bool            `json:"enabled"`
	CreatedAt  string          `json:"created_at"`
}

type listRespondersResponse struct {
	Responders []responderResponse `json:"responders"`
}

// toResponderResponse converts a store.Responder to a responderResponse.
func toResponderResponse(resp *store.Responder) responderResponse {
	config := resp.Config
	if config == nil {
		config = json.RawMessage("{}")
	}
	return responderResponse{
		ID:         resp.ID,
		AlertType:  string(resp.AlertType),
		PluginName: resp.PluginName,
		ActionName: resp.ActionName,
		Config:     config,
		Enabled:    resp.Enabled,
		CreatedAt:  resp.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// list handles GET /api/responders and returns all responders.
func (h *ResponderHandler) list(w http.ResponseWriter, r *http.Request) {
	responders, err := h.store.Responders().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list responders")
		return
	}

	response := listRespondersResponse{
		Responders: make([]responderResponse, 0, len(responders)),
	}
	for _, resp := range responders {
		response.Responders = append(response.Responders, toResponderResponse(resp))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/responders/{id} and returns a single responder.
func (h *ResponderHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	responder, err := h.store.Responders().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Responder not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get responder")
		return
	}

	writeJSON(w, http.StatusOK, toResponderResponse(responder))
}

// create handles POST /api/responders and creates a new responder.
func (h *ResponderHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createResponderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate required fields
	alertType := store.AlertType(req.AlertType)
	if !alertType.Valid() {
		writeError(w, http.StatusBadRequest, "alert_type must be sit_confirmed or fall_detected")
		return
	}
	if req.PluginName == "" {
		writeError(w, http.StatusBadRequest, "plugin_name is required")
		return
	}
	if req.ActionName == "" {
		writeError(w, http.StatusBadRequest, "action_name is required")
		return
	}

	config := req.Config
	if config == nil {
		config = json.RawMessage("{}")
	}

	responder := &store.Responder{
		ID:         uuid.New().String(),
		AlertType:  alertType,
		PluginName: req.PluginName,
		ActionName: req.ActionName,
		Config:     config,
		Enabled:    true,
	}

	if err := h.store.Responders().Create(responder); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create responder")
		return
	}

	writeJSON(w, http.StatusCreated, toResponderResponse(responder))
}

// update handles PUT /api/responders/{id} and updates an existing responder.
func (h *ResponderHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	responder, err := h.store.Responders().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Responder not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get responder")
		return
	}

	var req updateResponderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Update fields if provided
	if req.AlertType != "" {
		alertType := store.AlertType(req.AlertType)
		if !alertType.Valid() {
			writeError(w, http.StatusBadRequest, "alert_type must be sit_confirmed or fall_detected")
			return
		}
		responder.AlertType = alertType
	}
	if req.PluginName != "" {
		responder.PluginName = req.PluginName
	}
	if req.ActionName != "" {
		responder.ActionName = req.ActionName
	}
	if req.Config != nil {
		responder.Config = req.Config
	}
	if req.Enabled != nil {
		responder.Enabled = *req.Enabled
	}

	if err := h.store.Responders().Update(responder); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update responder")
		return
	}

	writeJSON(w, http.StatusOK, toResponderResponse(responder))
}

// delete handles DELETE /api/responders/{id} and removes a responder.
func (h *ResponderHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Responders().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Responder not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete responder")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
