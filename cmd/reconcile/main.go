package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"nightlife-ticketing-platform/internal/config"
	"nightlife-ticketing-platform/internal/database"
	"nightlife-ticketing-platform/internal/repositories"
)

func main() {
	var (
		listFlag    = flag.Bool("list", false, "List unresolved payment divergences")
		resolveFlag = flag.Int("resolve", 0, "Mark a divergence as manually reconciled")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
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
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := repositories.NewReconciliationRepository(db.DB)

	switch {
	case *listFlag:
		divergences, err := repo.ListUnresolved()
		if err != nil {
			log.Fatalf("Failed to list divergences: %v", err)
		}

		if len(divergences) == 0 {
			fmt.Println("No unresolved payment divergences.")
			return
		}

		for _, d := range divergences {
			fmt.Printf("#%d %s user=%d event=%d amount=%d qty=%d at=%s\n  %s\n",
				d.ID, d.PaymentRef, d.UserID, d.EventID, d.Amount, d.Quantity,
				d.CreatedAt.Format("2006-01-02 15:04:05"), d.Reason)
		}
	case *resolveFlag > 0:
		if err := repo.MarkResolved(*resolveFlag); err != nil {
			log.Fatalf("Failed to resolve divergence: %v", err)
		}
		fmt.Printf("Divergence %d marked as resolved.\n", *resolveFlag)
	default:
		fmt.Println("Usage:")
		fmt.Println("  go run cmd/reconcile/main.go -list          # List unresolved payment divergences")
		fmt.Println("  go run cmd/reconcile/main.go -resolve <id>  # Mark a divergence as resolved")
		os.Exit(1)
	}
}
