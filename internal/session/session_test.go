// Package session tests require a reachable Valkey instance and are
// skipped otherwise.
package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"corpsite/internal/models"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testClient returns a Valkey client on DB 15 or skips the test.
func testClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
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

// requestWithCookie builds a request carrying the session cookie from a
// recorded response.
func requestWithCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			r.AddCookie(c)
			return r
		}
	}
	t.Fatal("no session cookie set on response")
	return nil
}

func TestSessionLifecycle(t *testing.T) {
	client := testClient(t)
	store := NewStore(client, false)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	data := &Data{
		UserID:      uuid.New(),
		Username:    "jdoe",
		Email:       "jdoe@example.com",
		DisplayName: "J. Doe",
		Role:        models.RoleEditor,
	}

	id, err := store.Create(ctx, rec, data)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(id) != idLength*2 {
		t.Errorf("session id length = %d, want %d", len(id), idLength*2)
	}

	// Fetch it back via the cookie.
	r := requestWithCookie(t, rec)
	got, err := store.Get(ctx, r)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected session data, got nil")
	}
	if got.UserID != data.UserID || got.Email != data.Email || got.Role != models.RoleEditor {
		t.Errorf("session round trip mismatch: %+v", got)
	}
	if got.TwoFADone {
		t.Error("TwoFADone should start false")
	}

	// Update flips the 2FA flag without changing the cookie.
	got.TwoFADone = true
	if err := store.Update(ctx, r, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ = store.Get(ctx, r)
	if got == nil || !got.TwoFADone {
		t.Error("expected TwoFADone=true after Update")
	}

	// Destroy removes the session and expires the cookie.
	rec2 := httptest.NewRecorder()
	if err := store.Destroy(ctx, rec2, r); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	got, err = store.Get(ctx, r)
	if err != nil {
		t.Fatalf("Get after Destroy: %v", err)
	}
	if got != nil {
		t.Error("expected nil session after Destroy")
	}
}

func TestGetWithoutCookie(t *testing.T) {
	client := testClient(t)
	store := NewStore(client, false)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	data, err := store.Get(context.Background(), r)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data != nil {
		t.Error("expected nil for request without cookie")
	}
}

func TestGetWithUnknownSessionID(t *testing.T) {
	client := testClient(t)
	store := NewStore(client, false)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "deadbeef"})

	data, err := store.Get(context.Background(), r)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data != nil {
		t.Error("expected nil for unknown session id")
	}
}

func TestSecureCookieFlag(t *testing.T) {
	client := testClient(t)
	store := NewStore(client, true)

	rec := httptest.NewRecorder()
	_, err := store.Create(context.Background(), rec, &Data{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			if !c.Secure {
				t.Error("expected Secure cookie when store created with secure=true")
			}
			if !c.HttpOnly {
				t.Error("expected HttpOnly session cookie")
			}
			return
		}
	}
	t.Fatal("session cookie not set")
}
