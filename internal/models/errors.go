package models

import (
	"errors"
	"fmt"
)

// Common errors used throughout the application
var (
	ErrClubNotFound   = errors.New("club not found")
	ErrEventNotFound  = errors.New("event not found")
	ErrTicketNotFound = errors.New("ticket not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrInvalidInput   = errors.New("invalid input")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// PaymentError is a terminal payment-provider failure for one purchase
// attempt. It carries the provider's error code and message so the caller
// can show them verbatim.
type PaymentError struct {
	Code    string
	Message string
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("Payment Error: %s %s", e.Code, e.Message)
}

// PaymentCapturedError reports the divergent state where a payment was
// captured but the ticket write did not durably occur. Money has moved with
// no product record; the divergence must be recorded for manual
// reconciliation, never retried.
type PaymentCapturedError struct {
	PaymentRef string
	Reason     error
}

func (e *PaymentCapturedError) Error() string {
	return fmt.Sprintf("Failed to process payment or create ticket: %v", e.Reason)
}

func (e *PaymentCapturedError) Unwrap() error {
	return e.Reason
}
