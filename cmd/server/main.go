package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"nightlife-ticketing-platform/internal/config"
	"nightlife-ticketing-platform/internal/database"
	"nightlife-ticketing-platform/internal/handlers"
	"nightlife-ticketing-platform/internal/middleware"
	"nightlife-ticketing-platform/internal/repositories"
	"nightlife-ticketing-platform/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database connection
	dbConfig := database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	}

	db, err := database.NewConnection(dbConfig)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()
	log.Println("Database connection established successfully")

	// Create session store
	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30, // 30 days
		HttpOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: http.SameSiteLaxMode,
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db.DB)
	clubRepo := repositories.NewClubRepository(db.DB)
	eventRepo := repositories.NewEventRepository(db.DB)
	ticketRepo := repositories.NewTicketRepository(db.DB)
	reconRepo := repositories.NewReconciliationRepository(db.DB)

	// Initialize the payment backend clients
	paymentConfig := services.PaymentBackendConfig{
		BaseURL:      cfg.Payments.BaseURL,
		SecretKey:    cfg.Payments.SecretKey,
		MerchantName: cfg.Payments.MerchantName,
		ReturnURL:    cfg.Payments.ReturnURL,
	}
	intentClient := services.NewPaymentIntentClient(paymentConfig)
	confirmer := services.NewMockPaymentConfirmer(&paymentConfig)

	// Initialize services
	clubService := services.NewClubService(clubRepo)
	eventService := services.NewEventService(eventRepo, clubRepo)
	ticketService := services.NewTicketService(ticketRepo)
	purchaseService := services.NewPurchaseService(
		eventRepo,
		ticketRepo,
		userRepo,
		intentClient,
		confirmer,
		reconRepo,
		cfg.Payments.Currency,
	)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	clubHandler := handlers.NewClubHandler(clubService)
	eventHandler := handlers.NewEventHandler(eventService)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService)
	intentHandler := handlers.NewPaymentIntentHandler(intentClient)

	// Auth middleware loads the session user into the request context
	authMiddleware := middleware.NewAuthMiddleware(userRepo, sessionStore)

	// Rate limit purchase confirmation per client
	confirmLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Initialize router
	r := chi.NewRouter()

	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.ErrorHandlingMiddleware)
	r.Use(authMiddleware.LoadUser)

	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		// Public discovery routes
		r.Get("/clubs", clubHandler.ListClubs)
		r.Get("/clubs/{id}", clubHandler.GetClub)
		r.Get("/clubs/{id}/events", eventHandler.ClubEvents)
		r.Get("/events", eventHandler.ListEvents)
		r.Get("/events/{id}", eventHandler.GetEvent)
		r.Get("/events/{id}/attendance", ticketHandler.EventAttendance)

		// Payment intent creation for clients driving their own payment sheet
		r.Post("/payment-intents", intentHandler.CreateIntent)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)

			r.Post("/clubs", clubHandler.CreateClub)
			r.Put("/clubs/{id}", clubHandler.UpdateClub)
			r.Delete("/clubs/{id}", clubHandler.DeleteClub)
			r.Post("/events", eventHandler.CreateEvent)

			r.Get("/my/clubs", clubHandler.MyClubs)
			r.Get("/my/tickets", ticketHandler.MyTickets)
			r.Get("/tickets/{id}", ticketHandler.GetTicket)

			r.Post("/events/{id}/purchase", purchaseHandler.StartPurchase)
			r.Get("/purchase/{sessionID}", purchaseHandler.GetPurchase)
			r.Put("/purchase/{sessionID}/quantity", purchaseHandler.SetQuantity)
			r.With(confirmLimiter.Middleware).Post("/purchase/{sessionID}/confirm", purchaseHandler.ConfirmPurchase)
		})
	})

	serverAddr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s (Environment: %s)", serverAddr, cfg.Server.Env)
	log.Fatal(http.ListenAndServe(serverAddr, r))
}
