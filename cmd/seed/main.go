// Package main implements the seed tool for the Quill API database. It
// either provisions the administrator account from configuration or purges
// all rows, leaving the schema in place.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver

	"github.com/calloway/quill-api/internal/config"
	"github.com/calloway/quill-api/internal/domain"
	"github.com/calloway/quill-api/internal/platform/logger"
	"github.com/calloway/quill-api/internal/service/auth"
)

func main() {
	if len(os.Args) < 2 || (os.Args[1] != "seed" && os.Args[1] != "purge") {
		fmt.Println("Pass purge or seed")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if _, err := logger.Setup(cfg.Server.LogLevel); err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database connection: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "seed":
		err = seed(ctx, db, cfg.Admin)
	case "purge":
		err = purge(ctx, db)
	}
	if err != nil {
		log.Fatalf("Failed to %s: %v", os.Args[1], err)
	}
}

// seed upserts the administrator account. An existing account with the
// configured email keeps its current name and password.
func seed(ctx context.Context, db *sql.DB, admin config.AdminConfig) error {
	hashed, err := auth.NewBcryptHasher().Hash(admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := time.Now().UTC()
	_, err = db.ExecContext(ctx, `
		INSERT INTO users (name, email, role, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (email) DO NOTHING`,
		admin.Name, admin.Email, domain.RoleAdmin, hashed, now,
	)
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	slog.Info("Admin account seeded", "email", admin.Email)
	return nil
}

// purge deletes every row. Cascades take the relation edges and comments
// out with their owners.
func purge(ctx context.Context, db *sql.DB) error {
	for _, table := range []string{"posts", "users", "categories", "comments"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to purge %s: %w", table, err)
		}
	}

	slog.Info("Database purged")
	return nil
}
