// Package api provides HTTP API handlers for the posewatch posture monitor.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/thanawatkee/posewatch/internal/store"
)

// AlertHandler handles HTTP requests for alert resources.
type AlertHandler struct {
	store *store.Store
}

// NewAlertHandler creates a new AlertHandler with the given store.
func NewAlertHandler(s *store.Store) *AlertHandler {
	return &AlertHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *AlertHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/alerts, /api/alerts/{id} or /api/alerts/{id}/ack
	path := strings.TrimPrefix(r.URL.Path, "/api/alerts")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/alerts
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.list(w, r)
		return
	}

	if id, ok := strings.CutSuffix(path, "/ack"); ok {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.acknowledge(w, r, id)
		return
	}

	// Item endpoint: /api/alerts/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Response types

type alertResponse struct {
	ID           string `json:"id"`
	SessionID    string `json:"session_id"`
	Type         string `json:"type"`
	Label        string `json:"label"`
	DetectedAt   string `json:"detected_at"`
	Acknowledged bool   `json:"acknowledged"`
}

type listAlertsResponse struct {
	Alerts []alertResponse `json:"alerts"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toAlertResponse converts a store.Alert to an alertResponse.
func toAlertResponse(a *store.Alert) alertResponse {
	return alertResponse{
		ID:           a.ID,
		SessionID:    a.SessionID,
		Type:         string(a.Type),
		Label:        a.Label,
		DetectedAt:   a.DetectedAt.Format("2006-01-02T15:04:05Z07:00"),
		Acknowledged: a.Acknowledged,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/alerts and returns alerts, optionally filtered by ?type=.
func (h *AlertHandler) list(w http.ResponseWriter, r *http.Request) {
	typeFilter := store.AlertType(r.URL.Query().Get("type"))
	if typeFilter != "" && !typeFilter.Valid() {
		writeError(w, http.StatusBadRequest, "Unknown alert type")
		return
	}

	alerts, err := h.store.Alerts().List(typeFilter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list alerts")
		return
	}

	response := listAlertsResponse{
		Alerts: make([]alertResponse, 0, len(alerts)),
	}
	for _, a := range alerts {
		response.Alerts = append(response.Alerts, toAlertResponse(a))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/alerts/{id} and returns a single alert.
func (h *AlertHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	alert, err := h.store.Alerts().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Alert not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get alert")
		return
	}

	writeJSON(w, http.StatusOK, toAlertResponse(alert))
}

// acknowledge handles POST /api/alerts/{id}/ack and marks an alert as seen.
func (h *AlertHandler) acknowledge(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Alerts().Acknowledge(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Alert not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to acknowledge alert")
		return
	}

	alert, err := h.store.Alerts().GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get alert")
		return
	}

	writeJSON(w, http.StatusOK, toAlertResponse(alert))
}

// delete handles DELETE /api/alerts/{id} and removes an alert.
func (h *AlertHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Alerts().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Alert not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete alert")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
