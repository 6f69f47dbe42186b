//go:build integration

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/filehaven/filehaven/internal/controlplane/api/auth"
	"github.com/filehaven/filehaven/internal/controlplane/api/middleware"
	"github.com/filehaven/filehaven/pkg/controlplane/models"
	"github.com/filehaven/filehaven/pkg/controlplane/store"
)

func setupUserTest(t *testing.T) (store.Store, *UserHandler) {
	t.Helper()

	dbConfig := store.Config{
		Type: "sqlite",
		SQLite: store.SQLiteConfig{
			Path: ":memory:",
		},
	}
	cpStore, err := store.New(&dbConfig)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { cpStore.Close() })

	return cpStore, NewUserHandler(cpStore)
}

func adminClaims() *auth.Claims {
	return &auth.Claims{
		Username:  "admin",
		Role:      string(models.RoleAdmin),
		TokenType: auth.TokenTypeAccess,
	}
}

func withClaims(req *http.Request, claims *auth.Claims) *http.Request {
	return req.WithContext(middleware.ContextWithClaims(req.Context(), claims))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestUserHandler_Create(t *testing.T) {
	_, handler := setupUserTest(t)

	tests := []struct {
		name       string
		body       CreateUserRequest
		wantStatus int
	}{
		{
			name: "valid user",
			body: CreateUserRequest{
				Username: "newuser",
				Password: "password123",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "with optional fields",
			body: CreateUserRequest{
				Username:    "fulluser",
				Password:    "password123",
				Email:       "test@example.com",
				DisplayName: "Test User",
				Role:        "admin",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "missing username",
			body: CreateUserRequest{
				Password: "password123",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing password",
			body: CreateUserRequest{
				Username: "nopassuser",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "invalid role",
			body: CreateUserRequest{
				Username: "invalidrole",
				Password: "password123",
				Role:     "superadmin",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Create(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Create() status = %d, want %d, body = %s", w.Code, tt.wantStatus, w.Body.String())
			}

			if tt.wantStatus == http.StatusCreated {
				var resp UserResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("Failed to unmarshal response: %v", err)
				}
				if resp.Username != tt.body.Username {
					t.Errorf("Create() username = %s, want %s", resp.Username, tt.body.Username)
				}
			}
		})
	}
}

func TestUserHandler_Create_Duplicate(t *testing.T) {
	cpStore, handler := setupUserTest(t)

	createTestUser(t, cpStore, "existinguser", "password123", true)

	body, _ := json.Marshal(CreateUserRequest{
		Username: "existinguser",
		Password: "password123",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Create(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("Create() status = %d, want %d", w.Code, http.StatusConflict)
	}
}

func TestUserHandler_List(t *testing.T) {
	cpStore, handler := setupUserTest(t)

	for _, name := range []string{"listusera", "listuserb", "listuserc"} {
		createTestUser(t, cpStore, name, "password", true)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("List() status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp []UserResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(resp) != 3 {
		t.Errorf("List() returned %d users, want 3", len(resp))
	}
}

func TestUserHandler_Get(t *testing.T) {
	cpStore, handler := setupUserTest(t)

	createTestUser(t, cpStore, "getuser", "password", true)

	tests := []struct {
		name       string
		username   string
		claims     *auth.Claims
		wantStatus int
	}{
		{
			name:       "admin gets any user",
			username:   "getuser",
			claims:     adminClaims(),
			wantStatus: http.StatusOK,
		},
		{
			name:       "user gets own info",
			username:   "getuser",
			claims:     &auth.Claims{Username: "getuser", Role: "user", TokenType: auth.TokenTypeAccess},
			wantStatus: http.StatusOK,
		},
		{
			name:       "user cannot get others",
			username:   "getuser",
			claims:     &auth.Claims{Username: "someoneelse", Role: "user", TokenType: auth.TokenTypeAccess},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "non-existent user",
			username:   "nonexistent",
			claims:     adminClaims(),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "no claims",
			username:   "getuser",
			claims:     nil,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+tt.username, nil)
			req = withURLParam(req, "username", tt.username)
			if tt.claims != nil {
				req = withClaims(req, tt.claims)
			}
			w := httptest.NewRecorder()

			handler.Get(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Get() status = %d, want %d, body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestUserHandler_Update(t *testing.T) {
	cpStore, handler := setupUserTest(t)

	createTestUser(t, cpStore, "updateuser", "password", true)

	newEmail := "updated@example.com"
	disabled := false

	t.Run("update email", func(t *testing.T) {
		body, _ := json.Marshal(UpdateUserRequest{Email: &newEmail})
		req := httptest.NewRequest(http.MethodPut, "/api/v1/users/updateuser", bytes.NewReader(body))
		req = withURLParam(req, "username", "updateuser")
		w := httptest.NewRecorder()

		handler.Update(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Update() status = %d, want %d, body = %s", w.Code, http.StatusOK, w.Body.String())
		}

		var resp UserResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if resp.Email != newEmail {
			t.Errorf("Update() email = %s, want %s", resp.Email, newEmail)
		}
	})

	t.Run("cannot disable admin", func(t *testing.T) {
		if _, err := cpStore.EnsureAdminUser(context.Background()); err != nil {
			t.Fatalf("Failed to ensure admin user: %v", err)
		}

		body, _ := json.Marshal(UpdateUserRequest{Enabled: &disabled})
		req := httptest.NewRequest(http.MethodPut, "/api/v1/users/admin", bytes.NewReader(body))
		req = withURLParam(req, "username", "admin")
		w := httptest.NewRecorder()

		handler.Update(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("Update() status = %d, want %d", w.Code, http.StatusForbidden)
		}
	})
}

func TestUserHandler_Delete(t *testing.T) {
	cpStore, handler := setupUserTest(t)

	createTestUser(t, cpStore, "deleteuser", "password", true)

	tests := []struct {
		name       string
		username   string
		wantStatus int
	}{
		{
			name:       "existing user",
			username:   "deleteuser",
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "already deleted",
			username:   "deleteuser",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "admin user protected",
			username:   "admin",
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/"+tt.username, nil)
			req = withURLParam(req, "username", tt.username)
			w := httptest.NewRecorder()

			handler.Delete(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Delete() status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestUserHandler_ResetPassword(t *testing.T) {
	cpStore, handler := setupUserTest(t)

	createTestUser(t, cpStore, "resetuser", "oldpassword", true)

	body, _ := json.Marshal(ChangePasswordRequest{NewPassword: "newpassword123"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/resetuser/password", bytes.NewReader(body))
	req = withURLParam(req, "username", "resetuser")
	w := httptest.NewRecorder()

	handler.ResetPassword(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("ResetPassword() status = %d, want %d, body = %s", w.Code, http.StatusNoContent, w.Body.String())
	}

	if _, err := cpStore.ValidateCredentials(context.Background(), "resetuser", "newpassword123"); err != nil {
		t.Errorf("New password rejected after reset: %v", err)
	}
	if _, err := cpStore.ValidateCredentials(context.Background(), "resetuser", "oldpassword"); err == nil {
		t.Error("Old password still accepted after reset")
	}
}

func TestUserHandler_ChangeOwnPassword(t *testing.T) {
	cpStore, handler := setupUserTest(t)

	createTestUser(t, cpStore, "pwuser", "oldpassword", true)
	claims := &auth.Claims{Username: "pwuser", Role: "user", TokenType: auth.TokenTypeAccess}

	tests := []struct {
		name       string
		body       ChangePasswordRequest
		wantStatus int
	}{
		{
			name:       "wrong current password",
			body:       ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "newpassword"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing current password",
			body:       ChangePasswordRequest{NewPassword: "newpassword"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "valid change",
			body:       ChangePasswordRequest{CurrentPassword: "oldpassword", NewPassword: "newpassword"},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/users/me/password", bytes.NewReader(body))
			req = withClaims(req, claims)
			w := httptest.NewRecorder()

			handler.ChangeOwnPassword(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("ChangeOwnPassword() status = %d, want %d, body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}

	if _, err := cpStore.ValidateCredentials(context.Background(), "pwuser", "newpassword"); err != nil {
		t.Errorf("New password rejected after change: %v", err)
	}
}
