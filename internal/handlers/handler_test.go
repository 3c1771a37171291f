// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL is unavailable;
// the category tree cache runs without Valkey by passing a nil client.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"campusboard/internal/cache"
	"campusboard/internal/database"
	"campusboard/internal/forum"
	"campusboard/internal/middleware"
	"campusboard/internal/models"
	"campusboard/internal/store"
	"campusboard/internal/token"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "campusboard")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "campusboard")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB         *sql.DB
	Users      *store.UserStore
	CatStore   *store.CategoryStore
	TagStore   *store.TagStore
	PostStore  *store.PostStore
	VoteStore  *store.VoteStore
	Service    *forum.Service
	Tokens     *token.Manager
	Auth       *Auth
	Posts      *Posts
	Categories *Categories
	Tags       *Tags
}

// newTestEnv creates a complete test environment with all handler
// dependencies wired against the integration database.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)

	users := store.NewUserStore(db)
	catStore := store.NewCategoryStore(db)
	tagStore := store.NewTagStore(db)
	postStore := store.NewPostStore(db)
	voteStore := store.NewVoteStore(db)
	svc := forum.NewService(postStore, tagStore, voteStore)
	tokens := token.NewManager("test-secret", time.Hour, time.Now)
	treeCache := cache.NewTreeCache(nil, time.Minute)

	return &testEnv{
		DB:         db,
		Users:      users,
		CatStore:   catStore,
		TagStore:   tagStore,
		PostStore:  postStore,
		VoteStore:  voteStore,
		Service:    svc,
		Tokens:     tokens,
		Auth:       NewAuth(users, tokens),
		Posts:      NewPosts(svc),
		Categories: NewCategories(catStore, treeCache),
		Tags:       NewTags(tagStore),
	}
}

// ctxWithViewer adds the viewer to a context using the middleware key.
func ctxWithViewer(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, middleware.ViewerKey, user)
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withViewer attaches an authenticated viewer to a request.
func withViewer(r *http.Request, user *models.User) *http.Request {
	return r.WithContext(ctxWithViewer(r.Context(), user))
}

// newTestUser creates a throwaway user and registers cleanup.
func newTestUser(t *testing.T, env *testEnv, username string, admin bool) *models.User {
	t.Helper()

	ctx := context.Background()
	u, err := env.Users.Create(ctx, username, "password")
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	if admin {
		if err := env.Users.SetAdmin(ctx, username, true); err != nil {
			t.Fatalf("set admin: %v", err)
		}
		u.Admin = true
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM users WHERE id = $1", u.ID)
	})
	return u
}

// newTestCategory creates a throwaway category and registers cleanup.
func newTestCategory(t *testing.T, env *testEnv, name string) *models.Category {
	t.Helper()

	c, err := env.CatStore.Create(context.Background(), name, nil)
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM categories WHERE id = $1", c.ID)
	})
	return c
}

// newTestTag creates a throwaway tag and registers cleanup.
func newTestTag(t *testing.T, env *testEnv, name string) *models.Tag {
	t.Helper()

	tag, err := env.TagStore.Create(context.Background(), name)
	if err != nil {
		t.Fatalf("create test tag: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM tags WHERE id = $1", tag.ID)
	})
	return tag
}
