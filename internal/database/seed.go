package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin user, a root category, and a starter set of tags. It is a no-op
// when users already exist.
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Hash the default admin password.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (username, password_hash, admin)
		VALUES ($1, $2, TRUE)
	`, "admin", string(hash))
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	if _, err := db.Exec(`INSERT INTO categories (name) VALUES ('Root Category')`); err != nil {
		return fmt.Errorf("seed insert root category: %w", err)
	}

	for _, name := range []string{"cs101", "h240", "urgent"} {
		if _, err := db.Exec(`INSERT INTO tags (name) VALUES ($1)`, name); err != nil {
			return fmt.Errorf("seed insert tag %s: %w", name, err)
		}
	}

	slog.Info("database seeded with default admin user",
		"username", "admin",
		"password", "admin",
	)

	return nil
}
