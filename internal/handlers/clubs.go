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

// ClubHandler handles club discovery and management endpoints
type ClubHandler struct {
	clubService services.ClubServiceInterface
}

// NewClubHandler creates a new club handler
func NewClubHandler(clubService services.ClubServiceInterface) *ClubHandler {
	return &ClubHandler{clubService: clubService}
}

// ListClubs handles GET /api/clubs
func (h *ClubHandler) ListClubs(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	clubs, total, err := h.clubService.ListClubs(page, perPage)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load clubs")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"clubs": clubs,
		"total": total,
	})
}

// GetClub handles GET /api/clubs/{id}
func (h *ClubHandler) GetClub(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid club ID")
		return
	}

	club, err := h.clubService.GetClub(id)
	if err != nil {
		if errors.Is(err, models.ErrClubNotFound) {
			writeError(w, http.StatusNotFound, "Club not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load club")
		return
	}

	writeJSON(w, http.StatusOK, club)
}

// CreateClub handles POST /api/clubs
func (h *ClubHandler) CreateClub(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.ClubCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	club, err := h.clubService.CreateClub(user.ID, &req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create club")
		return
	}

	writeJSON(w, http.StatusCreated, club)
}

// UpdateClub handles PUT /api/clubs/{id}
func (h *ClubHandler) UpdateClub(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid club ID")
		return
	}

	var req models.ClubUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	club, err := h.clubService.UpdateClub(id, user.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrClubNotFound):
			writeError(w, http.StatusNotFound, "Club not found")
		case errors.Is(err, models.ErrUnauthorized):
			writeError(w, http.StatusForbidden, "You do not own this club")
		case errors.Is(err, models.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to update club")
		}
		return
	}

	writeJSON(w, http.StatusOK, club)
}

// DeleteClub handles DELETE /api/clubs/{id}
func (h *ClubHandler) DeleteClub(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid club ID")
		return
	}

	if err := h.clubService.DeleteClub(id, user.ID); err != nil {
		switch {
		case errors.Is(err, models.ErrClubNotFound):
			writeError(w, http.StatusNotFound, "Club not found")
		case errors.Is(err, models.ErrUnauthorized):
			writeError(w, http.StatusForbidden, "You do not own this club")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to delete club")
		}
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

// MyClubs handles GET /api/my/clubs
func (h *ClubHandler) MyClubs(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	clubs, err := h.clubService.GetOwnedClubs(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load clubs")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"clubs": clubs})
}
