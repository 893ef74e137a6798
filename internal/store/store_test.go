// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"corpsite/internal/database"
	"corpsite/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "corpsite")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "corpsite")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanUsers removes test users by email. Call in t.Cleanup().
func cleanUsers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		db.Exec("DELETE FROM blog_authors WHERE user_id = (SELECT id FROM users WHERE email = $1)", email)
		db.Exec("DELETE FROM users WHERE email = $1", email)
	}
}

// cleanTable removes test rows by slug prefix. Call in t.Cleanup().
func cleanTable(t *testing.T, db *sql.DB, table, slugPrefix string) {
	t.Helper()
	db.Exec("DELETE FROM "+table+" WHERE slug LIKE $1", slugPrefix+"%")
}

// testCategory creates a throwaway category and registers cleanup.
func testCategory(t *testing.T, db *sql.DB, name string) *models.Category {
	t.Helper()
	s := NewCategoryStore(db)
	c, err := s.Create(&models.Category{Name: name, Active: true})
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM blog_categories WHERE id = $1", c.ID) })
	return c
}

// testAuthor creates a throwaway author and registers cleanup.
func testAuthor(t *testing.T, db *sql.DB, name string) *models.Author {
	t.Helper()
	s := NewAuthorStore(db)
	a, err := s.Create(&models.Author{Name: name, Active: true})
	if err != nil {
		t.Fatalf("create test author: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM blog_authors WHERE id = $1", a.ID) })
	return a
}

// testDepartment creates a throwaway department and registers cleanup.
func testDepartment(t *testing.T, db *sql.DB, name string) *models.Department {
	t.Helper()
	s := NewDepartmentStore(db)
	d, err := s.Create(&models.Department{Name: name, Active: true})
	if err != nil {
		t.Fatalf("create test department: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM departments WHERE id = $1", d.ID) })
	return d
}

// testLocation creates a throwaway location and registers cleanup.
func testLocation(t *testing.T, db *sql.DB, name string) *models.Location {
	t.Helper()
	s := NewLocationStore(db)
	l, err := s.Create(&models.Location{Name: name, Remote: true, Active: true})
	if err != nil {
		t.Fatalf("create test location: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM locations WHERE id = $1", l.ID) })
	return l
}
