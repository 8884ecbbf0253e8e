package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"nightlife-ticketing-platform/internal/middleware"
	"nightlife-ticketing-platform/internal/models"
	"nightlife-ticketing-platform/internal/services"

	"github.com/go-chi/chi/v5"
)

// EventHandler handles event browsing and management endpoints
type EventHandler struct {
	eventService services.EventServiceInterface
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService services.EventServiceInterface) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// ListEvents handles GET /api/events with optional club and paging filters
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	clubID, _ := strconv.Atoi(r.URL.Query().Get("club_id"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	events, total, err := h.eventService.UpcomingEvents(clubID, page, perPage)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load events")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"total":  total,
	})
}

// GetEvent handles GET /api/events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	event, err := h.eventService.GetEvent(id)
	if err != nil {
		if errors.Is(err, models.ErrEventNotFound) {
			writeError(w, http.StatusNotFound, "Event not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load event")
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// CreateEvent handles POST /api/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.EventCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := h.eventService.CreateEvent(user.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrClubNotFound):
			writeError(w, http.StatusNotFound, "Club not found")
		case errors.Is(err, models.ErrUnauthorized):
			writeError(w, http.StatusForbidden, "You do not own this club")
		case errors.Is(err, models.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to create event")
		}
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// ClubEvents handles GET /api/clubs/{id}/events
func (h *EventHandler) ClubEvents(w http.ResponseWriter, r *http.Request) {
	clubID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid club ID")
		return
	}

	events, err := h.eventService.GetClubEvents(clubID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load events")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}
