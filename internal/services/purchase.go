package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"nightlife-ticketing-platform/internal/models"

	"github.com/google/uuid"
)

// Purchase flow errors
var (
	ErrPurchaseSessionNotFound = errors.New("purchase session not found")
	ErrPurchaseInProgress      = errors.New("purchase already in progress")
	ErrPaymentNotReady         = errors.New("unable to initialize payment")
)

// How long an abandoned purchase session is kept before being swept
const purchaseSessionTTL = 30 * time.Minute

// EventReader provides event lookups for the purchase flow
type EventReader interface {
	GetByID(id int) (*models.Event, error)
}

// TicketWriter persists paid tickets
type TicketWriter interface {
	Create(ticket *models.Ticket) (*models.Ticket, error)
}

// UserReader resolves the purchasing user's identity
type UserReader interface {
	GetByID(id int) (*models.User, error)
}

// IntentRequester obtains payment intents for a payable amount
type IntentRequester interface {
	CreateIntent(ctx context.Context, amount int, currency string) (*PaymentIntent, error)
}

// DivergenceRecorder records captured payments whose ticket write failed
type DivergenceRecorder interface {
	Record(paymentRef string, userID, eventID, amount, quantity int, reason string) error
}

// PurchaseSession is the server-side state of one in-progress ticket
// purchase. It is owned by exactly one user and holds the current quote and
// the payment intent handle for the quote's total. A session is discarded
// on successful purchase and swept after purchaseSessionTTL otherwise.
type PurchaseSession struct {
	ID        string
	EventID   int
	ClubID    int
	UserID    int
	EventDate time.Time

	mu           sync.Mutex
	quote        models.PurchaseQuote
	seq          uint64 // Tag of the latest intent request
	clientSecret string // Empty while no valid handle exists
	initErr      string // User-facing message when the last init failed
	inFlight     bool   // A purchase attempt is running
	createdAt    time.Time
}

// Quote returns a snapshot of the session's current quote
func (s *PurchaseSession) Quote() models.PurchaseQuote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quote
}

// PaymentReady reports whether a valid payment intent handle exists
func (s *PurchaseSession) PaymentReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clientSecret != ""
}

// InitError returns the user-facing message of the last failed intent
// acquisition, or "" if none
func (s *PurchaseSession) InitError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initErr
}

// PurchaseService orchestrates the ticket purchase flow: it owns purchase
// sessions and sequences intent acquisition, payment confirmation and
// ticket persistence. Payment confirmation strictly precedes persistence;
// no step is ever retried automatically.
type PurchaseService struct {
	events    EventReader
	tickets   TicketWriter
	users     UserReader
	intents   IntentRequester
	confirmer PaymentConfirmer
	recons    DivergenceRecorder
	currency  string

	mu       sync.Mutex
	sessions map[string]*PurchaseSession
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	events EventReader,
	tickets TicketWriter,
	users UserReader,
	intents IntentRequester,
	confirmer PaymentConfirmer,
	recons DivergenceRecorder,
	currency string,
) *PurchaseService {
	s := &PurchaseService{
		events:    events,
		tickets:   tickets,
		users:     users,
		intents:   intents,
		confirmer: confirmer,
		recons:    recons,
		currency:  currency,
		sessions:  make(map[string]*PurchaseSession),
	}

	// Sweep abandoned sessions
	go s.cleanup()

	return s
}

// Begin opens a purchase session for one ticket of the given event and
// requests a payment intent for the initial total. An intent failure does
// not fail Begin: the session exists with no valid handle and the purchase
// action stays blocked until a quantity change re-acquires one.
func (s *PurchaseService) Begin(ctx context.Context, eventID, userID int) (*PurchaseSession, error) {
	event, err := s.events.GetByID(eventID)
	if err != nil {
		return nil, err
	}

	if !event.IsUpcoming() {
		return nil, fmt.Errorf("%w: event has already started", models.ErrInvalidInput)
	}

	sess := &PurchaseSession{
		ID:        uuid.NewString(),
		EventID:   event.ID,
		ClubID:    event.ClubID,
		UserID:    userID,
		EventDate: event.EventDate,
		quote:     models.NewPurchaseQuote(event, s.currency),
		createdAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	if err := s.refreshIntent(ctx, sess); err != nil {
		log.Printf("Purchase %s: failed to initialize payment: %v", sess.ID, err)
	}

	return sess, nil
}

// Get returns the session with the given id if it belongs to the user
func (s *PurchaseService) Get(sessionID string, userID int) (*PurchaseSession, error) {
	s.mu.Lock()
	sess := s.sessions[sessionID]
	s.mu.Unlock()

	if sess == nil || sess.UserID != userID {
		return nil, ErrPurchaseSessionNotFound
	}

	return sess, nil
}

// SetQuantity applies a quantity change to the session. Out-of-range or
// unchanged values are no-ops with no outbound calls. A real change
// invalidates the current intent handle and requests a new one for the new
// total.
func (s *PurchaseService) SetQuantity(ctx context.Context, sessionID string, userID, quantity int) (*PurchaseSession, error) {
	sess, err := s.Get(sessionID, userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	changed := sess.quote.SetQuantity(quantity)
	sess.mu.Unlock()

	if !changed {
		return sess, nil
	}

	if err := s.refreshIntent(ctx, sess); err != nil {
		log.Printf("Purchase %s: failed to initialize payment: %v", sess.ID, err)
	}

	return sess, nil
}

// refreshIntent invalidates the session's intent handle and requests a new
// one for the current total. Requests are tagged; a response that arrives
// after a newer request started is discarded, so the most recent quantity
// always wins.
func (s *PurchaseService) refreshIntent(ctx context.Context, sess *PurchaseSession) error {
	sess.mu.Lock()
	sess.seq++
	tag := sess.seq
	sess.clientSecret = ""
	sess.initErr = ""
	amount := sess.quote.Total()
	currency := sess.quote.Currency
	sess.mu.Unlock()

	intent, err := s.intents.CreateIntent(ctx, amount, currency)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if tag != sess.seq {
		// Stale response for an older quantity
		return nil
	}

	if err != nil {
		sess.initErr = ErrPaymentNotReady.Error()
		return fmt.Errorf("%w: %v", ErrPaymentNotReady, err)
	}

	sess.clientSecret = intent.ClientSecret
	return nil
}

// Purchase runs one purchase attempt for the session: confirm payment, then
// persist the ticket. A session with a purchase already in flight rejects
// the attempt without side effects. Every failure is terminal; the caller
// must explicitly retry, which re-runs the whole sequence.
func (s *PurchaseService) Purchase(ctx context.Context, sessionID string, userID int) (*models.Ticket, error) {
	sess, err := s.Get(sessionID, userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.inFlight {
		sess.mu.Unlock()
		return nil, ErrPurchaseInProgress
	}
	if sess.clientSecret == "" {
		sess.mu.Unlock()
		return nil, ErrPaymentNotReady
	}
	sess.inFlight = true
	quote := sess.quote
	clubID := sess.ClubID
	eventDate := sess.EventDate
	sess.mu.Unlock()

	defer func() {
		sess.mu.Lock()
		sess.inFlight = false
		sess.mu.Unlock()
	}()

	// A confirmed intent cannot be reused, so each attempt confirms a fresh
	// intent for the current total instead of the handle from
	// initialization.
	intent, err := s.intents.CreateIntent(ctx, quote.Total(), quote.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentNotReady, err)
	}

	if err := s.confirmer.Confirm(ctx, intent.ClientSecret); err != nil {
		var paymentErr *models.PaymentError
		if errors.As(err, &paymentErr) {
			return nil, paymentErr
		}
		return nil, &models.PaymentError{Code: "unknown", Message: err.Error()}
	}

	// Payment is captured. From here on every failure is a divergence:
	// money has moved, so it must be recorded for manual reconciliation and
	// never retried.
	paymentRef := IntentIDFromSecret(intent.ClientSecret)

	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, s.recordDivergence(paymentRef, quote, userID, err)
	}

	ticket := &models.Ticket{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		ClubID:      clubID,
		EventID:     quote.EventID,
		PurchasedAt: time.Now(),
		TotalPrice:  quote.Total(),
		EventDate:   eventDate,
		Quantity:    quote.Quantity,
	}

	created, err := s.tickets.Create(ticket)
	if err != nil {
		return nil, s.recordDivergence(paymentRef, quote, userID, err)
	}

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	return created, nil
}

// recordDivergence logs and stores a captured payment without a ticket,
// then returns the error the caller surfaces to the user
func (s *PurchaseService) recordDivergence(paymentRef string, quote models.PurchaseQuote, userID int, cause error) error {
	log.Printf("Payment captured without ticket: ref=%s user=%d event=%d amount=%d: %v",
		paymentRef, userID, quote.EventID, quote.Total(), cause)

	if err := s.recons.Record(paymentRef, userID, quote.EventID, quote.Total(), quote.Quantity, cause.Error()); err != nil {
		log.Printf("Failed to record payment divergence for ref=%s: %v", paymentRef, err)
	}

	return &models.PaymentCapturedError{PaymentRef: paymentRef, Reason: cause}
}

// cleanup periodically removes abandoned sessions. Navigating away
// mid-purchase abandons in-flight work silently; the sweep only reclaims
// memory.
func (s *PurchaseService) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-purchaseSessionTTL)

		s.mu.Lock()
		for id, sess := range s.sessions {
			sess.mu.Lock()
			expired := sess.createdAt.Before(cutoff) && !sess.inFlight
			sess.mu.Unlock()

			if expired {
				delete(s.sessions, id)
			}
		}
		s.mu.Unlock()
	}
}
