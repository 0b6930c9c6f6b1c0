package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"solarserver/internal/services/auth"
)

func okHandler(t *testing.T, wantClaims bool) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wantClaims {
			if _, ok := ClaimsFromContext(r.Context()); !ok {
				t.Error("claims missing from authenticated request context")
			}
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_RejectsMissingToken(t *testing.T) {
	svc := auth.NewService("test-secret", 30)
	handler := Auth(svc)(okHandler(t, false))

	req := httptest.NewRequest(http.MethodGet, "/api/fields", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
	if rr.Header().Get("WWW-Authenticate") != "Bearer" {
		t.Errorf("WWW-Authenticate = %q, want Bearer", rr.Header().Get("WWW-Authenticate"))
	}
}

func TestAuth_RejectsBadToken(t *testing.T) {
	svc := auth.NewService("test-secret", 30)
	handler := Auth(svc)(okHandler(t, false))

	req := httptest.NewRequest(http.MethodGet, "/api/fields", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestAuth_AcceptsValidToken(t *testing.T) {
	svc := auth.NewService("test-secret", 30)
	handler := Auth(svc)(okHandler(t, true))

	token, err := svc.CreateAccessToken("operator", "owner")
	if err != nil {
		t.Fatalf("CreateAccessToken() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/fields", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

func TestAuth_OpenPaths(t *testing.T) {
	svc := auth.NewService("test-secret", 30)
	handler := Auth(svc)(okHandler(t, false))

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/auth/token"},
		{http.MethodPost, "/api/users"},
		{http.MethodGet, "/artifacts/2026/08/30/1/classified_panel.jpg"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("%s %s: status = %d, want 200 without a token", tt.method, tt.path, rr.Code)
		}
	}
}

func TestAuth_ListUsersStillProtected(t *testing.T) {
	svc := auth.NewService("test-secret", 30)
	handler := Auth(svc)(okHandler(t, false))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("GET /api/users without token: status = %d, want 401", rr.Code)
	}
}
