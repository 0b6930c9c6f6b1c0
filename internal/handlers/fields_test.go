package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"solarserver/internal/models"
)

func jsonRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreateFieldHandler(t *testing.T) {
	env := newTestEnv(t, &stubDetector{})
	handler := CreateFieldHandler(env.fields, env.logger)

	req := jsonRequest(t, http.MethodPost, "/api/fields",
		`{"name":"South Array","location":"Sector 9","user_id":`+strconv.FormatInt(env.userID, 10)+`}`)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", rr.Code, rr.Body.String())
	}

	var field models.SolarField
	if err := json.Unmarshal(rr.Body.Bytes(), &field); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if field.ID == 0 || field.Name != "South Array" || field.Location != "Sector 9" {
		t.Errorf("created field = %+v, fields do not round-trip", field)
	}
}

func TestCreateFieldHandler_MissingName(t *testing.T) {
	env := newTestEnv(t, &stubDetector{})
	handler := CreateFieldHandler(env.fields, env.logger)

	req := jsonRequest(t, http.MethodPost, "/api/fields", `{"location":"Sector 9"}`)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestGetFieldHandler_NotFound(t *testing.T) {
	env := newTestEnv(t, &stubDetector{})
	handler := GetFieldHandler(env.fields, env.logger)

	req := httptest.NewRequest(http.MethodGet, "/api/fields/9999", nil)
	req.SetPathValue("id", "9999")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
	if detail := decodeDetail(t, rr); detail != "SolarField not found" {
		t.Errorf("detail = %q, want %q", detail, "SolarField not found")
	}
}

func TestGetFieldHandler_InvalidID(t *testing.T) {
	env := newTestEnv(t, &stubDetector{})
	handler := GetFieldHandler(env.fields, env.logger)

	req := httptest.NewRequest(http.MethodGet, "/api/fields/abc", nil)
	req.SetPathValue("id", "abc")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestUpdateFieldHandler(t *testing.T) {
	env := newTestEnv(t, &stubDetector{})
	handler := UpdateFieldHandler(env.fields, env.logger)

	id := strconv.FormatInt(env.fieldID, 10)
	req := jsonRequest(t, http.MethodPut, "/api/fields/"+id, `{"location":"Sector 5"}`)
	req.SetPathValue("id", id)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rr.Code, rr.Body.String())
	}

	var field models.SolarField
	if err := json.Unmarshal(rr.Body.Bytes(), &field); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if field.Location != "Sector 5" {
		t.Errorf("location = %q, want Sector 5", field.Location)
	}
	if field.Name != "North Array" {
		t.Errorf("name = %q, partial update must keep unchanged attributes", field.Name)
	}
}

func TestDeleteFieldHandler(t *testing.T) {
	env := newTestEnv(t, &stubDetector{})

	id := strconv.FormatInt(env.fieldID, 10)
	req := httptest.NewRequest(http.MethodDelete, "/api/fields/"+id, nil)
	req.SetPathValue("id", id)
	rr := httptest.NewRecorder()
	DeleteFieldHandler(env.fields, env.logger).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204 (%s)", rr.Code, rr.Body.String())
	}

	exists, err := env.fields.Exists(env.fieldID)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Error("field still exists after delete")
	}
}
