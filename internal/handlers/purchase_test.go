package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nightlife-ticketing-platform/internal/middleware"
	"nightlife-ticketing-platform/internal/models"
	"nightlife-ticketing-platform/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEvents struct{ event *models.Event }

func (f *fakeEvents) GetByID(id int) (*models.Event, error) {
	if f.event != nil && f.event.ID == id {
		return f.event, nil
	}
	return nil, models.ErrEventNotFound
}

type fakeTickets struct{}

func (f *fakeTickets) Create(ticket *models.Ticket) (*models.Ticket, error) { return ticket, nil }

type fakeUsers struct{}

func (f *fakeUsers) GetByID(id int) (*models.User, error) {
	return &models.User{ID: id, Email: "buyer@example.com"}, nil
}

type fakeIntents struct{}

func (f *fakeIntents) CreateIntent(ctx context.Context, amount int, currency string) (*services.PaymentIntent, error) {
	return &services.PaymentIntent{ClientSecret: "pi_test_secret_abc"}, nil
}

type fakeConfirmer struct{}

func (f *fakeConfirmer) Confirm(ctx context.Context, clientSecret string) error { return nil }

type fakeRecorder struct{}

func (f *fakeRecorder) Record(paymentRef string, userID, eventID, amount, quantity int, reason string) error {
	return nil
}

// newTestSession builds a real purchase session for a $50.00 event
func newTestSession(t *testing.T, eventID, userID int) *services.PurchaseSession {
	t.Helper()

	svc := services.NewPurchaseService(
		&fakeEvents{event: &models.Event{
			ID:        eventID,
			ClubID:    7,
			Name:      "Friday Night",
			EventDate: time.Now().Add(48 * time.Hour),
			Price:     5000,
		}},
		&fakeTickets{},
		&fakeUsers{},
		&fakeIntents{},
		&fakeConfirmer{},
		&fakeRecorder{},
		"usd",
	)

	sess, err := svc.Begin(context.Background(), eventID, userID)
	require.NoError(t, err)
	return sess
}

// stubPurchaseService implements services.PurchaseServiceInterface for tests
type stubPurchaseService struct {
	beginFn       func(ctx context.Context, eventID, userID int) (*services.PurchaseSession, error)
	getFn         func(sessionID string, userID int) (*services.PurchaseSession, error)
	setQuantityFn func(ctx context.Context, sessionID string, userID, quantity int) (*services.PurchaseSession, error)
	purchaseFn    func(ctx context.Context, sessionID string, userID int) (*models.Ticket, error)
}

func (s *stubPurchaseService) Begin(ctx context.Context, eventID, userID int) (*services.PurchaseSession, error) {
	return s.beginFn(ctx, eventID, userID)
}

func (s *stubPurchaseService) Get(sessionID string, userID int) (*services.PurchaseSession, error) {
	return s.getFn(sessionID, userID)
}

func (s *stubPurchaseService) SetQuantity(ctx context.Context, sessionID string, userID, quantity int) (*services.PurchaseSession, error) {
	return s.setQuantityFn(ctx, sessionID, userID, quantity)
}

func (s *stubPurchaseService) Purchase(ctx context.Context, sessionID string, userID int) (*models.Ticket, error) {
	return s.purchaseFn(ctx, sessionID, userID)
}

func purchaseRouter(svc services.PurchaseServiceInterface) *chi.Mux {
	h := NewPurchaseHandler(svc)

	r := chi.NewRouter()
	r.Post("/api/events/{id}/purchase", h.StartPurchase)
	r.Get("/api/purchase/{sessionID}", h.GetPurchase)
	r.Put("/api/purchase/{sessionID}/quantity", h.SetQuantity)
	r.Post("/api/purchase/{sessionID}/confirm", h.ConfirmPurchase)
	return r
}

func authedRequest(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	user := &models.User{ID: 1, Email: "buyer@example.com", DisplayName: "Buyer"}
	return req.WithContext(middleware.SetUserContext(req.Context(), user))
}

func TestPurchaseHandler_StartPurchase(t *testing.T) {
	t.Run("starts a purchase session", func(t *testing.T) {
		svc := &stubPurchaseService{
			beginFn: func(ctx context.Context, eventID, userID int) (*services.PurchaseSession, error) {
				assert.Equal(t, 42, eventID)
				assert.Equal(t, 1, userID)
				return newTestSession(t, 42, 1), nil
			},
		}

		rec := httptest.NewRecorder()
		purchaseRouter(svc).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/events/42/purchase", nil))

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp purchaseSessionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 42, resp.EventID)
		assert.Equal(t, 1, resp.Quantity)
		assert.Equal(t, 5000, resp.Total)
		assert.Equal(t, "$50.00", resp.TotalDisplay)
		assert.True(t, resp.PaymentReady)
	})

	t.Run("unknown event returns 404", func(t *testing.T) {
		svc := &stubPurchaseService{
			beginFn: func(ctx context.Context, eventID, userID int) (*services.PurchaseSession, error) {
				return nil, models.ErrEventNotFound
			},
		}

		rec := httptest.NewRecorder()
		purchaseRouter(svc).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/events/999/purchase", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unauthenticated returns 401", func(t *testing.T) {
		svc := &stubPurchaseService{}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/events/42/purchase", nil)
		purchaseRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestPurchaseHandler_SetQuantity(t *testing.T) {
	t.Run("updates the quantity", func(t *testing.T) {
		svc := &stubPurchaseService{
			setQuantityFn: func(ctx context.Context, sessionID string, userID, quantity int) (*services.PurchaseSession, error) {
				assert.Equal(t, "sess-1", sessionID)
				assert.Equal(t, 2, quantity)
				return newTestSession(t, 42, 1), nil
			},
		}

		body := []byte(`{"quantity":2}`)
		rec := httptest.NewRecorder()
		purchaseRouter(svc).ServeHTTP(rec, authedRequest(http.MethodPut, "/api/purchase/sess-1/quantity", body))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown session returns 404", func(t *testing.T) {
		svc := &stubPurchaseService{
			setQuantityFn: func(ctx context.Context, sessionID string, userID, quantity int) (*services.PurchaseSession, error) {
				return nil, services.ErrPurchaseSessionNotFound
			},
		}

		body := []byte(`{"quantity":2}`)
		rec := httptest.NewRecorder()
		purchaseRouter(svc).ServeHTTP(rec, authedRequest(http.MethodPut, "/api/purchase/nope/quantity", body))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPurchaseHandler_ConfirmPurchase(t *testing.T) {
	t.Run("successful purchase returns the ticket", func(t *testing.T) {
		svc := &stubPurchaseService{
			purchaseFn: func(ctx context.Context, sessionID string, userID int) (*models.Ticket, error) {
				return &models.Ticket{
					ID:          "ticket-1",
					UserID:      1,
					ClubID:      7,
					EventID:     42,
					PurchasedAt: time.Now(),
					TotalPrice:  10000,
					EventDate:   time.Now().Add(48 * time.Hour),
					Quantity:    2,
				}, nil
			},
		}

		rec := httptest.NewRecorder()
		purchaseRouter(svc).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/purchase/sess-1/confirm", nil))

		require.Equal(t, http.StatusCreated, rec.Code)

		var ticket models.Ticket
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ticket))
		assert.Equal(t, "ticket-1", ticket.ID)
		assert.Equal(t, 2, ticket.Quantity)
	})

	t.Run("declined payment returns 402 with the provider message", func(t *testing.T) {
		svc := &stubPurchaseService{
			purchaseFn: func(ctx context.Context, sessionID string, userID int) (*models.Ticket, error) {
				return nil, &models.PaymentError{Code: "card_declined", Message: "Your card was declined."}
			},
		}

		rec := httptest.NewRecorder()
		purchaseRouter(svc).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/purchase/sess-1/confirm", nil))

		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
		assert.Contains(t, rec.Body.String(), "Payment Error: card_declined Your card was declined.")
	})

	t.Run("captured payment without ticket returns 500", func(t *testing.T) {
		svc := &stubPurchaseService{
			purchaseFn: func(ctx context.Context, sessionID string, userID int) (*models.Ticket, error) {
				return nil, &models.PaymentCapturedError{
					PaymentRef: "pi_abc",
					Reason:     assert.AnError,
				}
			},
		}

		rec := httptest.NewRecorder()
		purchaseRouter(svc).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/purchase/sess-1/confirm", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to process payment or create ticket")
	})

	t.Run("purchase in progress returns 409", func(t *testing.T) {
		svc := &stubPurchaseService{
			purchaseFn: func(ctx context.Context, sessionID string, userID int) (*models.Ticket, error) {
				return nil, services.ErrPurchaseInProgress
			},
		}

		rec := httptest.NewRecorder()
		purchaseRouter(svc).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/purchase/sess-1/confirm", nil))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("payment not ready returns 409 with the init message", func(t *testing.T) {
		svc := &stubPurchaseService{
			purchaseFn: func(ctx context.Context, sessionID string, userID int) (*models.Ticket, error) {
				return nil, services.ErrPaymentNotReady
			},
		}

		rec := httptest.NewRecorder()
		purchaseRouter(svc).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/purchase/sess-1/confirm", nil))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "unable to initialize payment")
	})
}
