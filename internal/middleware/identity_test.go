package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"penblog/internal/session"
)

// fakeSessions returns a fixed session or error, standing in for the
// Valkey-backed store.
type fakeSessions struct {
	data *session.Data
	err  error
}

func (f fakeSessions) Get(ctx context.Context, r *http.Request) (*session.Data, error) {
	return f.data, f.err
}

// captureUser runs Identify over a handler that records the user id it sees.
func captureUser(t *testing.T, store SessionGetter) (uuid.UUID, int) {
	t.Helper()
	var seen uuid.UUID
	handler := Identify(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	return seen, rr.Code
}

func TestIdentify(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name  string
		store SessionGetter
		want  uuid.UUID
	}{
		{"session present", fakeSessions{data: &session.Data{UserID: userID}}, userID},
		{"no session", fakeSessions{}, uuid.Nil},
		{"lookup error is anonymous", fakeSessions{err: errors.New("valkey down")}, uuid.Nil},
		{"nil store", nil, uuid.Nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, code := captureUser(t, tt.store)
			if code != http.StatusOK {
				t.Errorf("status: got %d, want 200 (Identify never rejects)", code)
			}
			if got != tt.want {
				t.Errorf("user id: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSessionFromCtx(t *testing.T) {
	t.Run("returns session when present", func(t *testing.T) {
		sess := &session.Data{UserID: uuid.New(), Email: "test@penblog.local", Name: "Test User"}
		got := SessionFromCtx(WithSession(context.Background(), sess))
		if got == nil {
			t.Fatal("expected non-nil session, got nil")
		}
		if got.Email != sess.Email {
			t.Errorf("Email: got %q, want %q", got.Email, sess.Email)
		}
	})

	t.Run("returns nil for empty context", func(t *testing.T) {
		if got := SessionFromCtx(context.Background()); got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
		if got := UserIDFromContext(context.Background()); got != uuid.Nil {
			t.Errorf("expected uuid.Nil, got %s", got)
		}
	})
}
