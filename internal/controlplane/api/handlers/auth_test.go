//go:build integration

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/filehaven/filehaven/internal/controlplane/api/auth"
	"github.com/filehaven/filehaven/internal/controlplane/api/middleware"
	"github.com/filehaven/filehaven/pkg/controlplane/models"
	"github.com/filehaven/filehaven/pkg/controlplane/store"
)

func setupAuthTest(t *testing.T) (store.Store, *auth.JWTService, *AuthHandler) {
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

	jwtConfig := auth.JWTConfig{
		Secret: "test-secret-key-that-is-at-least-32-characters-long",
		Issuer: "test",
	}
	jwtService, err := auth.NewJWTService(jwtConfig)
	if err != nil {
		t.Fatalf("Failed to create JWT service: %v", err)
	}

	handler := NewAuthHandler(cpStore, jwtService)
	return cpStore, jwtService, handler
}

func createTestUser(t *testing.T, cpStore store.Store, username, password string, enabled bool) *models.User {
	t.Helper()
	ctx := context.Background()

	passwordHash, err := models.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		Enabled:      true,
		Role:         "user",
		CreatedAt:    time.Now(),
	}

	if _, err := cpStore.CreateUser(ctx, user); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	// If disabled, update the user after creation (GORM zero-value workaround)
	if !enabled {
		user.Enabled = false
		if err := cpStore.UpdateUser(ctx, user); err != nil {
			t.Fatalf("Failed to disable user: %v", err)
		}
	}

	return user
}

func createTestShare(t *testing.T, cpStore store.Store, ownerID string, mutate func(*models.Share)) *models.Share {
	t.Helper()

	share := &models.Share{
		ID:          uuid.New().String(),
		Token:       uuid.New().String(),
		OwnerID:     ownerID,
		Source:      string(models.SourceVolume),
		SourcePath:  "/docs",
		IsDirectory: true,
		SharingType: string(models.SharingAnyone),
		AccessMode:  string(models.AccessReadOnly),
	}
	if mutate != nil {
		mutate(share)
	}

	if _, err := cpStore.CreateShare(context.Background(), share); err != nil {
		t.Fatalf("Failed to create test share: %v", err)
	}
	return share
}

func TestAuthHandler_Login(t *testing.T) {
	cpStore, _, handler := setupAuthTest(t)

	createTestUser(t, cpStore, "testuser", "password123", true)

	tests := []struct {
		name       string
		body       LoginRequest
		wantStatus int
	}{
		{
			name:       "valid credentials",
			body:       LoginRequest{Username: "testuser", Password: "password123"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid password",
			body:       LoginRequest{Username: "testuser", Password: "wrongpassword"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "non-existent user",
			body:       LoginRequest{Username: "nonexistent", Password: "password123"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing username",
			body:       LoginRequest{Password: "password123"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing password",
			body:       LoginRequest{Username: "testuser"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Login(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Login() status = %d, want %d, body = %s", w.Code, tt.wantStatus, w.Body.String())
			}

			if tt.wantStatus == http.StatusOK {
				var resp LoginResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("Failed to unmarshal response: %v", err)
				}
				if resp.AccessToken == "" {
					t.Error("Expected access token to be set")
				}
				if resp.RefreshToken == "" {
					t.Error("Expected refresh token to be set")
				}
				if resp.User.Username != tt.body.Username {
					t.Errorf("Expected username %s, got %s", tt.body.Username, resp.User.Username)
				}
			}
		})
	}
}

func TestAuthHandler_Login_DisabledUser(t *testing.T) {
	cpStore, _, handler := setupAuthTest(t)

	createTestUser(t, cpStore, "disableduser", "password123", false)

	body, _ := json.Marshal(LoginRequest{Username: "disableduser", Password: "password123"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Login(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("Login() status = %d, want %d, body = %s", w.Code, http.StatusForbidden, w.Body.String())
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	cpStore, jwtService, handler := setupAuthTest(t)

	user := createTestUser(t, cpStore, "refreshuser", "password123", true)
	tokenPair, err := jwtService.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("Failed to generate token pair: %v", err)
	}

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{
			name:       "valid refresh token",
			token:      tokenPair.RefreshToken,
			wantStatus: http.StatusOK,
		},
		{
			name:       "access token rejected",
			token:      tokenPair.AccessToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			token:      "not-a-token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing token",
			token:      "",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(RefreshRequest{RefreshToken: tt.token})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Refresh(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Refresh() status = %d, want %d, body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	cpStore, _, handler := setupAuthTest(t)

	createTestUser(t, cpStore, "meuser", "password123", true)

	t.Run("with claims", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		claims := &auth.Claims{Username: "meuser", TokenType: auth.TokenTypeAccess}
		req = req.WithContext(middleware.ContextWithClaims(req.Context(), claims))
		w := httptest.NewRecorder()

		handler.Me(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Me() status = %d, want %d, body = %s", w.Code, http.StatusOK, w.Body.String())
		}

		var resp UserResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if resp.Username != "meuser" {
			t.Errorf("Me() username = %s, want meuser", resp.Username)
		}
	})

	t.Run("without claims", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		w := httptest.NewRecorder()

		handler.Me(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Me() status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})
}

func TestAuthHandler_ShareSession(t *testing.T) {
	cpStore, jwtService, handler := setupAuthTest(t)

	owner := createTestUser(t, cpStore, "shareowner", "password123", true)
	granted := createTestUser(t, cpStore, "granteduser", "password123", true)
	other := createTestUser(t, cpStore, "otheruser", "password123", true)

	anyoneShare := createTestShare(t, cpStore, owner.ID, nil)

	past := time.Now().Add(-time.Hour)
	expiredShare := createTestShare(t, cpStore, owner.ID, func(s *models.Share) {
		s.ExpiresAt = &past
	})

	usersShare := createTestShare(t, cpStore, owner.ID, func(s *models.Share) {
		s.SharingType = string(models.SharingUsers)
	})
	if err := cpStore.SetShareUsers(context.Background(), usersShare.ID, []string{granted.ID}); err != nil {
		t.Fatalf("Failed to set share users: %v", err)
	}

	doRequest := func(token string, claims *auth.Claims) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/shares/"+token+"/session", nil)

		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("token", token)
		ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
		if claims != nil {
			ctx = middleware.ContextWithClaims(ctx, claims)
		}
		req = req.WithContext(ctx)

		w := httptest.NewRecorder()
		handler.ShareSession(w, req)
		return w
	}

	t.Run("anyone share", func(t *testing.T) {
		w := doRequest(anyoneShare.Token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("ShareSession() status = %d, want %d, body = %s", w.Code, http.StatusOK, w.Body.String())
		}

		var resp auth.GuestToken
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if resp.Token == "" {
			t.Error("Expected guest token to be set")
		}

		claims, err := jwtService.ValidateSessionToken(resp.Token)
		if err != nil {
			t.Fatalf("Guest token failed validation: %v", err)
		}
		if claims.ShareID != anyoneShare.ID {
			t.Errorf("Guest token share ID = %s, want %s", claims.ShareID, anyoneShare.ID)
		}
	})

	t.Run("expired share", func(t *testing.T) {
		w := doRequest(expiredShare.Token, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("ShareSession() status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		w := doRequest("no-such-token", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("ShareSession() status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("users share without auth", func(t *testing.T) {
		w := doRequest(usersShare.Token, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("ShareSession() status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("users share with granted user", func(t *testing.T) {
		claims := &auth.Claims{UserID: granted.ID, Username: granted.Username, TokenType: auth.TokenTypeAccess}
		w := doRequest(usersShare.Token, claims)
		if w.Code != http.StatusOK {
			t.Errorf("ShareSession() status = %d, want %d, body = %s", w.Code, http.StatusOK, w.Body.String())
		}
	})

	t.Run("users share with ungranted user", func(t *testing.T) {
		claims := &auth.Claims{UserID: other.ID, Username: other.Username, TokenType: auth.TokenTypeAccess}
		w := doRequest(usersShare.Token, claims)
		if w.Code != http.StatusForbidden {
			t.Errorf("ShareSession() status = %d, want %d", w.Code, http.StatusForbidden)
		}
	})
}
