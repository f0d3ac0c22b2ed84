package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("expected error for missing base URL")
	}
}

func TestMoodHistory(t *testing.T) {
	t.Run("OrderPreserved", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != MoodHistoryPath {
				t.Errorf("expected GET %s, got %s", MoodHistoryPath, r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"date":"2024-01-01","mood":3},{"date":"2024-01-02","mood":5}]`))
		}))
		defer srv.Close()

		records, err := newTestClient(t, srv).MoodHistory(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
		if records[0].Date != "2024-01-01" || records[0].Mood != 3 {
			t.Errorf("unexpected first record: %+v", records[0])
		}
		if records[1].Date != "2024-01-02" || records[1].Mood != 5 {
			t.Errorf("unexpected second record: %+v", records[1])
		}
	})

	t.Run("EmptyHistory", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		records, err := newTestClient(t, srv).MoodHistory(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("expected no records, got %d", len(records))
		}
	})

	t.Run("ErrorStatus", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		if _, err := newTestClient(t, srv).MoodHistory(context.Background()); err == nil {
			t.Error("expected error for non-2xx status")
		}
	})

	t.Run("MalformedBody", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"not": "an array"}`))
		}))
		defer srv.Close()

		if _, err := newTestClient(t, srv).MoodHistory(context.Background()); err == nil {
			t.Error("expected error for malformed history body")
		}
	})
}

func TestQuickMood(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var rec recordedRequest
		srv := httptest.NewServer(recordingHandler(http.StatusOK, `{"message":"Mood recorded!"}`, &rec))
		defer srv.Close()

		if err := newTestClient(t, srv).QuickMood(context.Background(), "joy"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.path != QuickMoodPath {
			t.Errorf("expected POST to %s, got %s", QuickMoodPath, rec.path)
		}
		if rec.body != `{"mood":"joy"}` {
			t.Errorf("unexpected body: %s", rec.body)
		}
	})

	t.Run("EmptyMoodRejectedLocally", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		if err := newTestClient(t, srv).QuickMood(context.Background(), ""); err == nil {
			t.Error("expected error for empty mood")
		}
	})

	t.Run("ServerErrorSurfaced", func(t *testing.T) {
		var rec recordedRequest
		srv := httptest.NewServer(recordingHandler(http.StatusUnauthorized, `{"error":"Not logged in"}`, &rec))
		defer srv.Close()

		err := newTestClient(t, srv).QuickMood(context.Background(), "joy")
		if err == nil || err.Error() == "" {
			t.Fatal("expected error")
		}
	})
}

func TestBook(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var rec recordedRequest
		srv := httptest.NewServer(recordingHandler(http.StatusOK,
			`{"message":"Enter PIN on your Phone","invoice":"INV_7_1700000000"}`, &rec))
		defer srv.Close()

		receipt, err := newTestClient(t, srv).Book(context.Background(), "+254712345678")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if receipt.Invoice != "INV_7_1700000000" {
			t.Errorf("unexpected invoice: %s", receipt.Invoice)
		}
		if rec.body != `{"phone":"+254712345678"}` {
			t.Errorf("unexpected body: %s", rec.body)
		}
	})

	t.Run("MissingPhone", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		if _, err := newTestClient(t, srv).Book(context.Background(), ""); err == nil {
			t.Error("expected error for missing phone")
		}
	})
}

func TestCheckPayment(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/check/INV_1" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			w.Write([]byte(`{"invoice":"INV_1","state":"COMPLETE"}`))
		}))
		defer srv.Close()

		status, err := newTestClient(t, srv).CheckPayment(context.Background(), "INV_1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if status["state"] != "COMPLETE" {
			t.Errorf("unexpected status payload: %v", status)
		}
	})

	t.Run("ErrorField", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invoice not found"}`))
		}))
		defer srv.Close()

		_, err := newTestClient(t, srv).CheckPayment(context.Background(), "nope")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "invoice not found") {
			t.Errorf("expected server error surfaced, got %v", err)
		}
	})

	t.Run("ErrorStatusEmptyBody", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := newTestClient(t, srv).CheckPayment(context.Background(), "INV_1")
		if err == nil {
			t.Fatal("expected error")
		}
		// The status must be reported, not a decode failure on the empty body
		if !strings.Contains(err.Error(), "payment status returned 503") {
			t.Errorf("expected status in error, got %v", err)
		}
	})
}

func TestLogout(t *testing.T) {
	t.Run("SuccessClearsToken", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		c := newTestClient(t, srv)
		c.SetAuthToken(freshToken(t, time.Now().Add(time.Hour)))

		if err := c.Logout(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.AuthToken() != "" {
			t.Error("expected token cleared after logout")
		}
	})

	t.Run("ErrorStatusKeepsToken", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := newTestClient(t, srv)
		token := freshToken(t, time.Now().Add(time.Hour))
		c.SetAuthToken(token)

		if err := c.Logout(context.Background()); err == nil {
			t.Fatal("expected error for failed logout")
		}
		if c.AuthToken() != token {
			t.Error("failed logout must not clear the session token")
		}
	})
}

func TestTokenExpiry(t *testing.T) {
	t.Run("ValidTokenAttached", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		c := newTestClient(t, srv)
		token := freshToken(t, time.Now().Add(time.Hour))
		c.SetAuthToken(token)

		if _, err := c.MoodHistory(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotAuth != "Bearer "+token {
			t.Errorf("expected bearer token attached, got %q", gotAuth)
		}
	})

	t.Run("ExpiredTokenDropped", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		c := newTestClient(t, srv)
		c.SetAuthToken(freshToken(t, time.Now().Add(-time.Hour)))

		if _, err := c.MoodHistory(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotAuth != "" {
			t.Errorf("expected no Authorization header for expired token, got %q", gotAuth)
		}
		if c.AuthToken() != "" {
			t.Error("expected expired token dropped from cache")
		}
	})

	t.Run("GarbageTokenTreatedAsExpired", func(t *testing.T) {
		if !tokenExpired("not-a-jwt") {
			t.Error("expected unparseable token to be treated as expired")
		}
	})
}

// freshToken mints a signed JWT with the given expiry. The signature is
// irrelevant — the client only reads claims — but a real signed token
// keeps the test honest about the wire format.
func freshToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "johndoe",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}
