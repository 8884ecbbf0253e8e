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

// PurchaseHandler handles the ticket purchase flow endpoints
type PurchaseHandler struct {
	purchaseService services.PurchaseServiceInterface
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService services.PurchaseServiceInterface) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// purchaseSessionResponse is the wire shape of a purchase session
type purchaseSessionResponse struct {
	SessionID    string `json:"session_id"`
	EventID      int    `json:"event_id"`
	Quantity     int    `json:"quantity"`
	UnitPrice    int    `json:"unit_price"`
	Total        int    `json:"total"`
	TotalDisplay string `json:"total_display"`
	PaymentReady bool   `json:"payment_ready"`
	PaymentError string `json:"payment_error,omitempty"`
}

func sessionResponse(sess *services.PurchaseSession) purchaseSessionResponse {
	quote := sess.Quote()
	return purchaseSessionResponse{
		SessionID:    sess.ID,
		EventID:      sess.EventID,
		Quantity:     quote.Quantity,
		UnitPrice:    quote.UnitPrice,
		Total:        quote.Total(),
		TotalDisplay: quote.TotalDisplay(),
		PaymentReady: sess.PaymentReady(),
		PaymentError: sess.InitError(),
	}
}

// StartPurchase handles POST /api/events/{id}/purchase
func (h *PurchaseHandler) StartPurchase(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	eventID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	sess, err := h.purchaseService.Begin(r.Context(), eventID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEventNotFound):
			writeError(w, http.StatusNotFound, "Event not found")
		case errors.Is(err, models.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to start purchase")
		}
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse(sess))
}

// GetPurchase handles GET /api/purchase/{sessionID}
func (h *PurchaseHandler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	sess, err := h.purchaseService.Get(chi.URLParam(r, "sessionID"), user.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Purchase session not found")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse(sess))
}

// SetQuantity handles PUT /api/purchase/{sessionID}/quantity
func (h *PurchaseHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess, err := h.purchaseService.SetQuantity(r.Context(), chi.URLParam(r, "sessionID"), user.ID, req.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrPurchaseSessionNotFound) {
			writeError(w, http.StatusNotFound, "Purchase session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update quantity")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse(sess))
}

// ConfirmPurchase handles POST /api/purchase/{sessionID}/confirm
func (h *PurchaseHandler) ConfirmPurchase(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ticket, err := h.purchaseService.Purchase(r.Context(), chi.URLParam(r, "sessionID"), user.ID)
	if err != nil {
		var paymentErr *models.PaymentError
		var capturedErr *models.PaymentCapturedError
		switch {
		case errors.Is(err, services.ErrPurchaseSessionNotFound):
			writeError(w, http.StatusNotFound, "Purchase session not found")
		case errors.Is(err, services.ErrPurchaseInProgress):
			writeError(w, http.StatusConflict, "A purchase is already in progress for this session")
		case errors.Is(err, services.ErrPaymentNotReady):
			writeError(w, http.StatusConflict, services.ErrPaymentNotReady.Error())
		case errors.As(err, &paymentErr):
			// Payment was declined or could not complete; nothing was charged
			writeError(w, http.StatusPaymentRequired, paymentErr.Error())
		case errors.As(err, &capturedErr):
			// Payment captured but the ticket write failed; the divergence
			// is recorded for reconciliation
			writeError(w, http.StatusInternalServerError, capturedErr.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to complete purchase")
		}
		return
	}

	writeJSON(w, http.StatusCreated, ticket)
}
