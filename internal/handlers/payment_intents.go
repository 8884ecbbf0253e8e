package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"nightlife-ticketing-platform/internal/services"
)

// PaymentIntentHandler exposes payment intent creation for clients that
// drive their own payment sheet
type PaymentIntentHandler struct {
	intents services.IntentRequester
}

// NewPaymentIntentHandler creates a new payment intent handler
func NewPaymentIntentHandler(intents services.IntentRequester) *PaymentIntentHandler {
	return &PaymentIntentHandler{intents: intents}
}

// CreateIntent handles POST /api/payment-intents
func (h *PaymentIntentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount   int    `json:"amount"`
		Currency string `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "Amount must be positive")
		return
	}
	if req.Currency == "" {
		req.Currency = "usd"
	}

	intent, err := h.intents.CreateIntent(r.Context(), req.Amount, req.Currency)
	if err != nil {
		log.Printf("Payment intent creation failed: %v", err)
		if errors.Is(err, services.ErrPaymentBackendRejected) {
			writeError(w, http.StatusBadGateway, "Payment provider rejected the request")
			return
		}
		writeError(w, http.StatusBadGateway, "Payment provider is unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"clientSecret": intent.ClientSecret})
}
