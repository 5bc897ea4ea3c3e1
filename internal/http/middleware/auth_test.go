package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/planejacasar/wedding-backend/pkg/auth"
)

const testSecret = "test-secret"

func authErrorCode(t *testing.T, body []byte) string {
	t.Helper()
	var envelope struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Success {
		t.Error("success = true on an error response")
	}
	return envelope.Error.Code
}

func TestRequireAuth(t *testing.T) {
	var gotUserID string
	handler := RequireAuth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserID(r)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		if code := authErrorCode(t, rec.Body.Bytes()); code != "NO_TOKEN" {
			t.Errorf("code = %q, want NO_TOKEN", code)
		}
	})

	t.Run("not a bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		if code := authErrorCode(t, rec.Body.Bytes()); code != "INVALID_TOKEN_FORMAT" {
			t.Errorf("code = %q, want INVALID_TOKEN_FORMAT", code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not.a.jwt")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		if code := authErrorCode(t, rec.Body.Bytes()); code != "INVALID_TOKEN" {
			t.Errorf("code = %q, want INVALID_TOKEN", code)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := auth.NewAccessToken("user-1", "ana@example.com", testSecret, -time.Minute)
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		if code := authErrorCode(t, rec.Body.Bytes()); code != "INVALID_TOKEN" {
			t.Errorf("code = %q, want INVALID_TOKEN", code)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := auth.NewAccessToken("user-1", "ana@example.com", "other-secret", time.Hour)
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := auth.NewAccessToken("user-1", "ana@example.com", testSecret, time.Hour)
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if gotUserID != "user-1" {
			t.Errorf("UserID = %q, want user-1", gotUserID)
		}
	})
}
