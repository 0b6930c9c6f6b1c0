package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func postToken(t *testing.T, env *testEnv, username, password string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	TokenHandler(env.users, env.auth, env.logger).ServeHTTP(rr, req)
	return rr
}

func TestTokenHandler_IssuesValidToken(t *testing.T) {
	env := newTestEnv(t, &stubDetector{})

	rr := postToken(t, env, "operator", "sunlight42")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rr.Code, rr.Body.String())
	}

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TokenType != "bearer" {
		t.Errorf("token_type = %q, want bearer", resp.TokenType)
	}

	claims, err := env.auth.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Username != "operator" || claims.Role != "owner" {
		t.Errorf("claims = %+v, want operator/owner", claims)
	}
}

func TestTokenHandler_WrongPassword(t *testing.T) {
	env := newTestEnv(t, &stubDetector{})

	rr := postToken(t, env, "operator", "wrong")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
	if detail := decodeDetail(t, rr); detail != "Incorrect username or password" {
		t.Errorf("detail = %q, want %q", detail, "Incorrect username or password")
	}
}

func TestTokenHandler_UnknownUser(t *testing.T) {
	env := newTestEnv(t, &stubDetector{})

	rr := postToken(t, env, "nobody", "sunlight42")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestTokenHandler_MissingCredentials(t *testing.T) {
	env := newTestEnv(t, &stubDetector{})

	rr := postToken(t, env, "", "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestTokenHandler_InactiveUser(t *testing.T) {
	env := newTestEnv(t, &stubDetector{})

	user, err := env.users.GetByUsername("operator")
	if err != nil || user == nil {
		t.Fatalf("failed to load test user: %v", err)
	}
	user.IsActive = false
	if err := env.users.Update(user); err != nil {
		t.Fatalf("failed to deactivate test user: %v", err)
	}

	rr := postToken(t, env, "operator", "sunlight42")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for inactive user", rr.Code)
	}
}
