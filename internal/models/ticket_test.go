package models

import (
	"testing"
	"time"
)

func validTicket() *Ticket {
	return &Ticket{
		ID:          "2a7f5b3e-0000-0000-0000-000000000000",
		UserID:      1,
		ClubID:      7,
		EventID:     42,
		PurchasedAt: time.Now(),
		TotalPrice:  10000,
		EventDate:   time.Now().Add(48 * time.Hour),
		Quantity:    2,
	}
}

func TestTicket_Validate(t *testing.T) {
	t.Run("valid ticket", func(t *testing.T) {
		if err := validTicket().Validate(); err != nil {
			t.Errorf("Expected valid ticket, got %v", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*Ticket)
	}{
		{"missing id", func(tk *Ticket) { tk.ID = "" }},
		{"missing user", func(tk *Ticket) { tk.UserID = 0 }},
		{"missing club", func(tk *Ticket) { tk.ClubID = 0 }},
		{"missing event", func(tk *Ticket) { tk.EventID = 0 }},
		{"zero quantity", func(tk *Ticket) { tk.Quantity = 0 }},
		{"quantity above maximum", func(tk *Ticket) { tk.Quantity = 11 }},
		{"negative total price", func(tk *Ticket) { tk.TotalPrice = -1 }},
		{"missing event date", func(tk *Ticket) { tk.EventDate = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := validTicket()
			tt.mutate(ticket)

			if err := ticket.Validate(); err == nil {
				t.Error("Expected validation to fail")
			}
		})
	}
}

func TestTicket_TotalPriceInCurrency(t *testing.T) {
	ticket := validTicket()

	if got := ticket.TotalPriceInCurrency(); got != 100.0 {
		t.Errorf("Expected 100.0, got %v", got)
	}
}
