package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/pasarlink/pasarlink-golang/internal/config"
	"github.com/pasarlink/pasarlink-golang/internal/database"
	"github.com/pasarlink/pasarlink-golang/internal/handlers"
	"github.com/pasarlink/pasarlink-golang/internal/models"
	"github.com/pasarlink/pasarlink-golang/internal/routes"
	"github.com/pasarlink/pasarlink-golang/internal/store"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	cfg := config.Load()

	// 1. --- Storage Wiring ---
	// With a DSN we run on MySQL; without one we fall back to the
	// in-memory store so the API can be exercised locally.
	var (
		partitions store.PartitionStore
		inbox      store.InboxStore
		users      store.UserStore
	)

	if cfg.DSN != "" {
		db, err := database.OpenDB(cfg.DSN)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		mysqlStore := store.NewMySQLStore(db)
		partitions, inbox, users = mysqlStore, mysqlStore, mysqlStore
	} else {
		log.Println("WARNING: DB_DSN is not set. Running on the in-memory store with seeded demo users.")
		mem := store.NewMemoryStore()
		seedDemoUsers(mem, cfg.AdminUserID)
		partitions, inbox, users = mem, mem, mem
	}

	// 2. --- Application Setup ---
	app := handlers.New(cfg, partitions, inbox, users)

	// 3. --- Background Worker ---
	// Periodic commission snapshot for reporting. Read-only pass over the
	// admin union view.
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		log.Println("Background Worker Started: periodic commission snapshots...")
		for range ticker.C {
			app.LogCommissionSnapshot()
		}
	}()

	// 4. --- Router Setup & Start ---
	router := routes.SetupRouter(app)

	log.Printf("Starting PasarLink API server on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// seedDemoUsers fills the in-memory directory so login works in dev mode.
func seedDemoUsers(mem *store.MemoryStore, adminID int64) {
	seed := func(id int64, role, email, fullName, plaintext string) {
		var p models.Password
		if err := p.Set(plaintext); err != nil {
			log.Fatalf("Failed to seed user %s: %v", email, err)
		}
		mem.SeedUser(models.User{
			ID:           id,
			Role:         role,
			Email:        email,
			PasswordHash: p.Hash,
			FullName:     fullName,
			CreatedAt:    time.Now(),
		})
	}

	seed(adminID, models.RoleAdmin, "admin@pasarlink.test", "Platform Admin", "admin123")
	seed(adminID+1, models.RoleBuyer, "buyer@pasarlink.test", "Demo Buyer", "buyer123")
	seed(adminID+2, models.RoleSeller, "seller@pasarlink.test", "Demo Seller", "seller123")
}
