package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"nightlife-ticketing-platform/internal/models"
)

// PaymentConfirmer collects and confirms payment for a client secret. It is
// the counterpart of the mobile payment sheet: success means the payment was
// captured, any error is terminal for the attempt.
type PaymentConfirmer interface {
	Confirm(ctx context.Context, clientSecret string) error
}

// BackendPaymentConfirmer confirms payment intents against the payment
// backend
type BackendPaymentConfirmer struct {
	config PaymentBackendConfig
	client *http.Client
}

// NewBackendPaymentConfirmer creates a new backend payment confirmer
func NewBackendPaymentConfirmer(config PaymentBackendConfig) *BackendPaymentConfirmer {
	return &BackendPaymentConfirmer{
		config: config,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// confirmRequest is the wire shape of a confirmation request
type confirmRequest struct {
	ClientSecret string `json:"client_secret"`
	ReturnURL    string `json:"return_url"`
}

// confirmResponse is the wire shape of a confirmation response
type confirmResponse struct {
	Status string `json:"status"`
	Error  *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Confirm confirms the payment intent behind the given client secret. A
// provider decline is returned as *models.PaymentError with the provider's
// code and message.
func (c *BackendPaymentConfirmer) Confirm(ctx context.Context, clientSecret string) error {
	intentID := IntentIDFromSecret(clientSecret)

	jsonData, err := json.Marshal(confirmRequest{
		ClientSecret: clientSecret,
		ReturnURL:    c.config.ReturnURL,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal confirm request: %w", err)
	}

	confirmURL := fmt.Sprintf("%s/v1/payment-intents/%s/confirm", strings.TrimRight(c.config.BaseURL, "/"), intentID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, confirmURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create confirm request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.config.SecretKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPaymentBackendUnreachable, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read confirm response body: %w", err)
	}

	var confirmResp confirmResponse
	if err := json.Unmarshal(bodyBytes, &confirmResp); err != nil {
		return fmt.Errorf("failed to decode confirm response: %w", err)
	}

	if confirmResp.Error != nil {
		return &models.PaymentError{
			Code:    confirmResp.Error.Code,
			Message: confirmResp.Error.Message,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d: %s", ErrPaymentBackendRejected, resp.StatusCode, string(bodyBytes))
	}

	if confirmResp.Status != "succeeded" {
		return &models.PaymentError{
			Code:    "payment-incomplete",
			Message: fmt.Sprintf("payment is %s", confirmResp.Status),
		}
	}

	return nil
}

// MockPaymentConfirmer provides a mock confirmer that can optionally
// delegate to a real backend confirmer
type MockPaymentConfirmer struct {
	backend    *BackendPaymentConfirmer
	useBackend bool
}

// NewMockPaymentConfirmer creates a new mock confirmer with optional
// backend support
func NewMockPaymentConfirmer(config *PaymentBackendConfig) *MockPaymentConfirmer {
	confirmer := &MockPaymentConfirmer{}

	if config != nil && config.BaseURL != "" && config.SecretKey != "" {
		confirmer.backend = NewBackendPaymentConfirmer(*config)
		confirmer.useBackend = true
		log.Printf("Payment confirmer: using payment backend at %s", config.BaseURL)
	} else {
		log.Println("Payment confirmer: using mock (no payment backend credentials provided)")
	}

	return confirmer
}

// Confirm confirms a payment
func (m *MockPaymentConfirmer) Confirm(ctx context.Context, clientSecret string) error {
	if m.useBackend && m.backend != nil {
		return m.backend.Confirm(ctx, clientSecret)
	}

	// Mock implementation - simulate successful payment
	log.Printf("Mock Payment: confirming intent %s", IntentIDFromSecret(clientSecret))
	return nil
}
