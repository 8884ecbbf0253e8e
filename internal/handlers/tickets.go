package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"nightlife-ticketing-platform/internal/middleware"
	"nightlife-ticketing-platform/internal/models"
	"nightlife-ticketing-platform/internal/services"

	"github.com/go-chi/chi/v5"
)

// TicketHandler handles ticket history endpoints
type TicketHandler struct {
	ticketService services.TicketServiceInterface
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService services.TicketServiceInterface) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// MyTickets handles GET /api/my/tickets
func (h *TicketHandler) MyTickets(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	tickets, err := h.ticketService.GetUserTickets(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load tickets")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"tickets": tickets})
}

// EventAttendance handles GET /api/events/{id}/attendance
func (h *TicketHandler) EventAttendance(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	count, err := h.ticketService.EventAttendance(eventID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load attendance")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"attendance": count})
}

// GetTicket handles GET /api/tickets/{id}
func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ticket, err := h.ticketService.GetTicket(chi.URLParam(r, "id"), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrTicketNotFound):
			writeError(w, http.StatusNotFound, "Ticket not found")
		case errors.Is(err, models.ErrUnauthorized):
			writeError(w, http.StatusForbidden, "This ticket belongs to another user")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to load ticket")
		}
		return
	}

	writeJSON(w, http.StatusOK, ticket)
}
