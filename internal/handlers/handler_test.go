// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"corpsite/internal/database"
	"corpsite/internal/middleware"
	"corpsite/internal/models"
	"corpsite/internal/session"
	"corpsite/internal/store"
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
	user := envOr("POSTGRES_USER", "corpsite")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "corpsite")
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

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "session:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

// testEnv holds the dependencies for handler integration tests.
type testEnv struct {
	DB       *sql.DB
	Valkey   *redis.Client
	Sessions *session.Store

	Users       *store.UserStore
	Posts       *store.PostStore
	Jobs        *store.JobStore
	Projects    *store.ProjectStore
	Categories  *store.CategoryStore
	Tags        *store.TagStore
	Authors     *store.AuthorStore
	Departments *store.DepartmentStore
	Locations   *store.LocationStore

	AuthHandler   *Auth
	PostHandler   *Posts
	JobHandler    *Jobs
	ProjHandler   *Projects
	MasterHandler *MasterData
	UserHandler   *Users
	PublicHandler *Public
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	sessions := session.NewStore(vk, false)
	users := store.NewUserStore(db)
	posts := store.NewPostStore(db)
	jobs := store.NewJobStore(db)
	projects := store.NewProjectStore(db)
	categories := store.NewCategoryStore(db)
	tags := store.NewTagStore(db)
	authors := store.NewAuthorStore(db)
	departments := store.NewDepartmentStore(db)
	locations := store.NewLocationStore(db)

	return &testEnv{
		DB:            db,
		Valkey:        vk,
		Sessions:      sessions,
		Users:         users,
		Posts:         posts,
		Jobs:          jobs,
		Projects:      projects,
		Categories:    categories,
		Tags:          tags,
		Authors:       authors,
		Departments:   departments,
		Locations:     locations,
		AuthHandler:   NewAuth(sessions, users),
		PostHandler:   NewPosts(posts, authors, users),
		JobHandler:    NewJobs(jobs),
		ProjHandler:   NewProjects(projects),
		MasterHandler: NewMasterData(categories, tags, authors, departments, locations),
		UserHandler:   NewUsers(users),
		PublicHandler: NewPublic(posts, jobs, projects),
	}
}

// testUser creates a user row with a unique email and registers cleanup.
func (env *testEnv) testUser(t *testing.T, role models.Role, password string) *models.User {
	t.Helper()

	suffix := uuid.New().String()[:8]
	user, err := env.Users.Create("hnd-"+suffix, "hnd-"+suffix+"@example.test", password, "Handler Test User", role)
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec(`DELETE FROM blog_authors WHERE user_id = $1`, user.ID)
		env.DB.Exec(`DELETE FROM users WHERE id = $1`, user.ID)
	})
	return user
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

func sessionFor(user *models.User) *session.Data {
	return &session.Data{
		UserID:      user.ID,
		Username:    user.Username,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		TwoFADone:   true,
		CreatedAt:   time.Now(),
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// decodeEnvelope unmarshals a recorded JSON response body.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response body %q: %v", rec.Body.String(), err)
	}
	return body
}
