package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data.
// It creates a default admin user and a starter set of master data if no
// users exist yet. The admin will be prompted to set up 2FA on first login.
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

	// Insert default admin user. 2FA is not enabled yet, they must set it
	// up on first login.
	_, err = db.Exec(`
		INSERT INTO users (username, email, password_hash, display_name, role, status, totp_enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, "admin", "admin@corpsite.local", string(hash), "Admin", "admin", "active", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	// Starter master data so the dashboard forms have something to select.
	seeds := []struct {
		query string
		args  []any
	}{
		{`INSERT INTO blog_categories (name, slug) VALUES ($1, $2)`, []any{"Engineering", "engineering"}},
		{`INSERT INTO blog_categories (name, slug) VALUES ($1, $2)`, []any{"Company News", "company-news"}},
		{`INSERT INTO departments (name, slug) VALUES ($1, $2)`, []any{"Engineering", "engineering"}},
		{`INSERT INTO departments (name, slug) VALUES ($1, $2)`, []any{"Design", "design"}},
		{`INSERT INTO locations (name, slug, remote) VALUES ($1, $2, $3)`, []any{"Remote", "remote", true}},
	}
	for _, s := range seeds {
		if _, err := db.Exec(s.query, s.args...); err != nil {
			return fmt.Errorf("seed master data: %w", err)
		}
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@corpsite.local",
		"password", "admin",
	)

	return nil
}
