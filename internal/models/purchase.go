package models

import "fmt"

// PurchaseQuote is the ephemeral client-side state of one purchase: the
// selected event, the chosen quantity and the derived total. It lives only
// for the duration of a purchase session.
type PurchaseQuote struct {
	EventID   int    `json:"event_id"`
	UnitPrice int    `json:"unit_price"` // In cents
	Quantity  int    `json:"quantity"`
	Currency  string `json:"currency"` // Lowercase ISO code, e.g. "usd"
}

// NewPurchaseQuote creates a quote for one ticket of the given event
func NewPurchaseQuote(event *Event, currency string) PurchaseQuote {
	return PurchaseQuote{
		EventID:   event.ID,
		UnitPrice: event.Price,
		Quantity:  MinQuantity,
		Currency:  currency,
	}
}

// SetQuantity applies a quantity change. Values outside [1,10] and values
// equal to the current quantity are no-ops. Returns true if the quantity
// actually changed, which means the derived total changed too.
func (q *PurchaseQuote) SetQuantity(n int) bool {
	if n < MinQuantity || n > MaxQuantity {
		return false
	}

	if n == q.Quantity {
		return false
	}

	q.Quantity = n
	return true
}

// Total returns the total amount in cents
func (q *PurchaseQuote) Total() int {
	return q.Quantity * q.UnitPrice
}

// TotalDisplay returns the total formatted for display, e.g. "$100.00"
func (q *PurchaseQuote) TotalDisplay() string {
	return fmt.Sprintf("%s%.2f", currencySymbol(q.Currency), float64(q.Total())/100.0)
}

// currencySymbol maps an ISO currency code to its display symbol
func currencySymbol(code string) string {
	switch code {
	case "usd":
		return "$"
	case "eur":
		return "€"
	case "gbp":
		return "£"
	default:
		return ""
	}
}
