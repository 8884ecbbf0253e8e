package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// PaymentBackendConfig represents payment backend configuration
type PaymentBackendConfig struct {
	BaseURL      string
	SecretKey    string
	MerchantName string
	ReturnURL    string
}

// Payment intent acquisition failures. The orchestrator maps all of them to
// a generic "unable to initialize payment" user message, but they are kept
// distinct for logging and tests.
var (
	ErrPaymentBackendUnreachable = errors.New("payment backend unreachable")
	ErrPaymentBackendRejected    = errors.New("payment backend rejected request")
	ErrMissingClientSecret       = errors.New("payment backend response missing client secret")
)

// PaymentIntent is an opaque handle for one payable amount. The client
// secret is scoped to a single total and must never be reused across totals.
type PaymentIntent struct {
	ClientSecret string `json:"clientSecret"`
}

// PaymentIntentClient requests payment intents from the payment backend
type PaymentIntentClient struct {
	config PaymentBackendConfig
	client *http.Client
}

// NewPaymentIntentClient creates a new payment intent client
func NewPaymentIntentClient(config PaymentBackendConfig) *PaymentIntentClient {
	return &PaymentIntentClient{
		config: config,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// intentRequest is the wire shape of an intent creation request
type intentRequest struct {
	Amount   int    `json:"amount"`   // Smallest currency unit
	Currency string `json:"currency"` // Lowercase ISO code
}

// backendError represents an error response from the payment backend
type backendError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateIntent requests a payment intent for the given amount. Amount is in
// the smallest currency unit and must be positive.
func (c *PaymentIntentClient) CreateIntent(ctx context.Context, amount int, currency string) (*PaymentIntent, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("intent amount must be positive, got %d", amount)
	}

	if currency == "" {
		return nil, errors.New("intent currency is required")
	}

	jsonData, err := json.Marshal(intentRequest{
		Amount:   amount,
		Currency: strings.ToLower(currency),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal intent request: %w", err)
	}

	intentURL := strings.TrimRight(c.config.BaseURL, "/") + "/v1/payment-intents"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, intentURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create intent request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.config.SecretKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentBackendUnreachable, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read intent response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.handleAPIError(resp.StatusCode, bodyBytes)
	}

	var intent PaymentIntent
	if err := json.Unmarshal(bodyBytes, &intent); err != nil {
		return nil, fmt.Errorf("failed to decode intent response: %w", err)
	}

	if intent.ClientSecret == "" {
		return nil, ErrMissingClientSecret
	}

	return &intent, nil
}

// handleAPIError handles payment backend error responses
func (c *PaymentIntentClient) handleAPIError(statusCode int, body []byte) error {
	var backendErr backendError
	if err := json.Unmarshal(body, &backendErr); err != nil || backendErr.Error.Message == "" {
		return fmt.Errorf("%w: status %d: %s", ErrPaymentBackendRejected, statusCode, string(body))
	}

	return fmt.Errorf("%w: status %d: %s %s", ErrPaymentBackendRejected, statusCode, backendErr.Error.Code, backendErr.Error.Message)
}

// IntentIDFromSecret extracts the intent identifier from a client secret of
// the form "pi_<id>_secret_<nonce>". Secrets that do not match the form are
// returned unchanged so they can still serve as a reconciliation reference.
func IntentIDFromSecret(clientSecret string) string {
	if idx := strings.Index(clientSecret, "_secret_"); idx > 0 {
		return clientSecret[:idx]
	}
	return clientSecret
}
