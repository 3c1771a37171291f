// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"campusboard/internal/database"
	"campusboard/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching local development.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "campusboard")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "campusboard")
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

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Reset goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testUser creates a throwaway user and registers cleanup.
func testUser(t *testing.T, db *sql.DB, username string, admin bool) *models.User {
	t.Helper()

	us := NewUserStore(db)
	u, err := us.Create(context.Background(), username, "password")
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	if admin {
		if err := us.SetAdmin(context.Background(), username, true); err != nil {
			t.Fatalf("set admin: %v", err)
		}
		u.Admin = true
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM users WHERE id = $1", u.ID)
	})
	return u
}

// testCategory creates a throwaway category and registers cleanup.
func testCategory(t *testing.T, db *sql.DB, name string, parentID *int64) *models.Category {
	t.Helper()

	cs := NewCategoryStore(db)
	c, err := cs.Create(context.Background(), name, parentID)
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM categories WHERE id = $1", c.ID)
	})
	return c
}

// testPost creates a throwaway post and registers cleanup. Votes and tag
// links cascade on delete.
func testPost(t *testing.T, db *sql.DB, author *models.User, category *models.Category, name string) *models.Post {
	t.Helper()

	ps := NewPostStore(db)
	p, err := ps.Create(context.Background(), &models.Post{
		Name:       name,
		Content:    "test content",
		CategoryID: category.ID,
		AuthorID:   author.ID,
	}, nil)
	if err != nil {
		t.Fatalf("create test post: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM posts WHERE id = $1", p.ID)
	})
	return p
}
