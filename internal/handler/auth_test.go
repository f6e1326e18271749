package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sat-food/sat/internal/handler/dto"
	"github.com/sat-food/sat/internal/model"
)

func TestAuthHandler_Register(t *testing.T) {
	e := newEnv(t)
	h := NewAuthHandler(e.svc.Auth, discardLogger())

	body := `{"name":"Ann","email":"ann@example.com","password":"pw","role":"customer"}`
	rec := httptest.NewRecorder()
	h.Register(rec, newRequest(http.MethodPost, "/api/auth/register", body, nil, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp dto.TokenResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.AccessToken == "" || resp.TokenType != "bearer" {
		t.Errorf("token = %q type = %q", resp.AccessToken, resp.TokenType)
	}
	if resp.User.Email != "ann@example.com" || resp.User.Role != model.RoleCustomer {
		t.Errorf("user = %+v", resp.User)
	}
}

func TestAuthHandler_Register_Errors(t *testing.T) {
	e := newEnv(t)
	e.user(t, "taken@example.com", model.RoleCustomer)
	h := NewAuthHandler(e.svc.Auth, discardLogger())

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"duplicate email", `{"name":"B","email":"taken@example.com","password":"pw","role":"customer"}`, "EMAIL_TAKEN"},
		{"unknown role", `{"name":"B","email":"b@example.com","password":"pw","role":"admin"}`, "VALIDATION_ERROR"},
		{"missing name", `{"email":"b@example.com","password":"pw","role":"customer"}`, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Register(rec, newRequest(http.MethodPost, "/api/auth/register", tt.body, nil, nil))

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if resp := decodeError(t, rec); resp.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	e := newEnv(t)
	e.user(t, "bob@example.com", model.RoleRestaurant)
	h := NewAuthHandler(e.svc.Auth, discardLogger())

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"correct password", `{"email":"bob@example.com","password":"secret"}`, http.StatusOK},
		{"wrong password", `{"email":"bob@example.com","password":"nope"}`, http.StatusUnauthorized},
		{"unknown email", `{"email":"nobody@example.com","password":"secret"}`, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Login(rec, newRequest(http.MethodPost, "/api/auth/login", tt.body, nil, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				if resp := decodeError(t, rec); resp.Code != "INVALID_CREDENTIALS" {
					t.Errorf("code = %s", resp.Code)
				}
				return
			}
			var resp dto.TokenResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.User.Role != model.RoleRestaurant {
				t.Errorf("role = %s", resp.User.Role)
			}
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "me@example.com", model.RoleCustomer)
	h := NewAuthHandler(e.svc.Auth, discardLogger())

	rec := httptest.NewRecorder()
	h.Me(rec, newRequest(http.MethodGet, "/api/auth/me", "", u, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["id"] != u.ID {
		t.Errorf("id = %v, want %s", resp["id"], u.ID)
	}
	if _, ok := resp["password_hash"]; ok {
		t.Error("response exposes password hash")
	}
}
