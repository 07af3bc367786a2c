package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client connected to the test Valkey.
// Skips the test if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests to isolate from dev data.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, keyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatal("expected session cookie to be set")
	return nil
}

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{"none", "", "", ""},
		{"bearer", "Bearer abc123", "", "abc123"},
		{"bearer lower case", "bearer abc123", "", "abc123"},
		{"cookie", "", "from-cookie", "from-cookie"},
		{"bearer wins over cookie", "Bearer from-header", "from-cookie", "from-header"},
		{"other scheme falls back to cookie", "Basic dXNlcjpwYXNz", "from-cookie", "from-cookie"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: tt.cookie})
			}
			if got := TokenFromRequest(req); got != tt.want {
				t.Errorf("TokenFromRequest = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSessionCreateAndGet(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, false)

	w := httptest.NewRecorder()
	ctx := context.Background()

	data := &Data{
		UserID: uuid.New(),
		Email:  "test@session.local",
		Name:   "Test User",
	}

	token, err := store.Create(ctx, w, data)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(token) != 2*idLength {
		t.Errorf("token length: got %d, want %d", len(token), 2*idLength)
	}

	cookie := sessionCookie(t, w)
	if !cookie.HttpOnly {
		t.Error("expected HttpOnly cookie")
	}
	if cookie.Secure {
		t.Error("expected Secure=false for non-secure store")
	}
	if cookie.Value != token {
		t.Errorf("cookie value: got %q, want token %q", cookie.Value, token)
	}

	// Read it back through the cookie.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	retrieved, err := store.Get(ctx, req)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if retrieved == nil {
		t.Fatal("expected session data, got nil")
	}
	if retrieved.UserID != data.UserID {
		t.Errorf("userID: got %s, want %s", retrieved.UserID, data.UserID)
	}
	if retrieved.Name != "Test User" {
		t.Errorf("name: got %q, want %q", retrieved.Name, "Test User")
	}

	// And through a Bearer header.
	bearer := httptest.NewRequest(http.MethodGet, "/", nil)
	bearer.Header.Set("Authorization", "Bearer "+token)
	retrieved, err = store.Get(ctx, bearer)
	if err != nil {
		t.Fatalf("Get (bearer): %v", err)
	}
	if retrieved == nil || retrieved.Email != "test@session.local" {
		t.Errorf("bearer lookup: got %+v", retrieved)
	}
}

func TestSessionGetNoToken(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	data, err := store.Get(context.Background(), req)
	if err != nil {
		t.Fatalf("Get (no token): %v", err)
	}
	if data != nil {
		t.Error("expected nil for request without a session token")
	}
}

func TestSessionGetExpired(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, false)

	data, err := store.Lookup(context.Background(), "nonexistent-session-id")
	if err != nil {
		t.Fatalf("Lookup (expired): %v", err)
	}
	if data != nil {
		t.Error("expected nil for expired/nonexistent session")
	}
}

func TestSessionDestroy(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, false)

	w := httptest.NewRecorder()
	ctx := context.Background()

	if _, err := store.Create(ctx, w, &Data{UserID: uuid.New(), Email: "destroy@session.local"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	cookie := sessionCookie(t, w)

	w2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(cookie)

	if err := store.Destroy(ctx, w2, req); err != nil {
		t.Fatalf("Destroy: %v", err)
	}

	// Verify cookie is expired.
	for _, c := range w2.Result().Cookies() {
		if c.Name == CookieName && c.MaxAge != -1 {
			t.Error("expected MaxAge=-1 on destroyed cookie")
		}
	}

	// Verify session is gone from Valkey.
	retrieved, _ := store.Get(ctx, req)
	if retrieved != nil {
		t.Error("expected nil after destroy")
	}
}

func TestSessionDestroyNoToken(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)

	// Should not error even without a token.
	if err := store.Destroy(context.Background(), w, req); err != nil {
		t.Errorf("Destroy (no token): %v", err)
	}
}

func TestSessionSecureCookie(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, true)

	w := httptest.NewRecorder()
	if _, err := store.Create(context.Background(), w, &Data{UserID: uuid.New(), Email: "secure@test.local"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if !sessionCookie(t, w).Secure {
		t.Error("expected Secure=true for secure store")
	}
}
