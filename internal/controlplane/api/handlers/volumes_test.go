//go:build integration

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/filehaven/filehaven/pkg/controlplane/models"
	"github.com/filehaven/filehaven/pkg/controlplane/store"
)

func setupVolumeTest(t *testing.T) (store.Store, *VolumeHandler, *models.User) {
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

	owner := createTestUser(t, cpStore, "volowner", "password123", true)
	return cpStore, NewVolumeHandler(cpStore), owner
}

func TestVolumeHandler_Create(t *testing.T) {
	_, handler, owner := setupVolumeTest(t)

	tests := []struct {
		name       string
		body       CreateVolumeRequest
		wantStatus int
	}{
		{
			name: "valid volume",
			body: CreateVolumeRequest{
				UserID:   owner.ID,
				Label:    "projects",
				RootPath: "/srv/projects",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "reserved label",
			body: CreateVolumeRequest{
				UserID:   owner.ID,
				Label:    "share",
				RootPath: "/srv/share",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "reserved label personal",
			body: CreateVolumeRequest{
				UserID:   owner.ID,
				Label:    "personal",
				RootPath: "/srv/personal",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate label",
			body: CreateVolumeRequest{
				UserID:   owner.ID,
				Label:    "projects",
				RootPath: "/srv/other",
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "unknown owner",
			body: CreateVolumeRequest{
				UserID:   "no-such-user",
				Label:    "other",
				RootPath: "/srv/other",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing root path",
			body: CreateVolumeRequest{
				UserID: owner.ID,
				Label:  "nopath",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/volumes", bytes.NewReader(body))
			w := httptest.NewRecorder()

			handler.Create(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Create() status = %d, want %d, body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestVolumeHandler_UpdateAndDelete(t *testing.T) {
	_, handler, owner := setupVolumeTest(t)

	body, _ := json.Marshal(CreateVolumeRequest{
		UserID:   owner.ID,
		Label:    "media",
		RootPath: "/srv/media",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/volumes", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Create() status = %d, body = %s", w.Code, w.Body.String())
	}

	var volume models.UserVolume
	if err := json.Unmarshal(w.Body.Bytes(), &volume); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	t.Run("update access mode", func(t *testing.T) {
		mode := string(models.AccessReadOnly)
		body, _ := json.Marshal(UpdateVolumeRequest{AccessMode: &mode})
		req := httptest.NewRequest(http.MethodPut, "/api/v1/volumes/"+volume.ID, bytes.NewReader(body))
		req = withURLParam(req, "id", volume.ID)
		w := httptest.NewRecorder()

		handler.Update(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Update() status = %d, want %d, body = %s", w.Code, http.StatusOK, w.Body.String())
		}

		var updated models.UserVolume
		if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if updated.AccessMode != mode {
			t.Errorf("Update() access mode = %s, want %s", updated.AccessMode, mode)
		}
	})

	t.Run("update to reserved label", func(t *testing.T) {
		label := "volumes"
		body, _ := json.Marshal(UpdateVolumeRequest{Label: &label})
		req := httptest.NewRequest(http.MethodPut, "/api/v1/volumes/"+volume.ID, bytes.NewReader(body))
		req = withURLParam(req, "id", volume.ID)
		w := httptest.NewRecorder()

		handler.Update(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Update() status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("delete", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/volumes/"+volume.ID, nil)
		req = withURLParam(req, "id", volume.ID)
		w := httptest.NewRecorder()

		handler.Delete(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("Delete() status = %d, want %d", w.Code, http.StatusNoContent)
		}
	})
}
