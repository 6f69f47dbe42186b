package apiclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/users", r.URL.Path)

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode([]User{
			{ID: "1", Username: "user1", Role: "user", Enabled: true},
			{ID: "2", Username: "user2", Role: "admin", Enabled: true},
		})
	}))
	defer server.Close()

	client := New(server.URL).WithToken("test-token")
	users, err := client.ListUsers()

	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "user1", users[0].Username)
	assert.Equal(t, "user2", users[1].Username)
}

func TestGetUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/users/testuser", r.URL.Path)

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(User{
			ID:          "user-123",
			Username:    "testuser",
			DisplayName: "Test User",
			Email:       "test@example.com",
			Role:        "user",
			Enabled:     true,
		})
	}))
	defer server.Close()

	client := New(server.URL).WithToken("test-token")
	user, err := client.GetUser("testuser")

	require.NoError(t, err)
	assert.Equal(t, "user-123", user.ID)
	assert.Equal(t, "testuser", user.Username)
	assert.Equal(t, "Test User", user.DisplayName)
}

func TestCreateUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/users", r.URL.Path)

		var req CreateUserRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)
		assert.Equal(t, "newuser", req.Username)
		assert.Equal(t, "secret123", req.Password)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(User{
			ID:       "user-456",
			Username: "newuser",
			Role:     "user",
			Enabled:  true,
		})
	}))
	defer server.Close()

	client := New(server.URL).WithToken("test-token")
	user, err := client.CreateUser(CreateUserRequest{
		Username: "newuser",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "user-456", user.ID)
	assert.Equal(t, "newuser", user.Username)
}

func TestCreateUser_Duplicate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(APIError{
			Title:  "Conflict",
			Detail: "User already exists",
		})
	}))
	defer server.Close()

	client := New(server.URL).WithToken("test-token")
	user, err := client.CreateUser(CreateUserRequest{Username: "existing", Password: "x"})

	assert.Nil(t, user)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.True(t, apiErr.IsConflict())
}

func TestUpdateUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/users/testuser", r.URL.Path)

		var req UpdateUserRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)
		require.NotNil(t, req.Enabled)
		assert.False(t, *req.Enabled)

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(User{
			ID:       "user-123",
			Username: "testuser",
			Role:     "user",
			Enabled:  false,
		})
	}))
	defer server.Close()

	enabled := false
	client := New(server.URL).WithToken("test-token")
	user, err := client.UpdateUser("testuser", UpdateUserRequest{Enabled: &enabled})

	require.NoError(t, err)
	assert.False(t, user.Enabled)
}

func TestDeleteUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/users/olduser", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := New(server.URL).WithToken("test-token")
	err := client.DeleteUser("olduser")

	require.NoError(t, err)
}

func TestSetUserPassword(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/users/testuser/password", r.URL.Path)

		var req ChangePasswordRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)
		assert.Empty(t, req.CurrentPassword)
		assert.Equal(t, "newsecret", req.NewPassword)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := New(server.URL).WithToken("test-token")
	err := client.SetUserPassword("testuser", "newsecret")

	require.NoError(t, err)
}

func TestChangeOwnPassword(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/users/me/password", r.URL.Path)

		var req ChangePasswordRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)
		assert.Equal(t, "oldsecret", req.CurrentPassword)
		assert.Equal(t, "newsecret", req.NewPassword)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := New(server.URL).WithToken("test-token")
	err := client.ChangeOwnPassword("oldsecret", "newsecret")

	require.NoError(t, err)
}
