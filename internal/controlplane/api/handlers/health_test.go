//go:build integration

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/filehaven/filehaven/pkg/controlplane/runtime"
	"github.com/filehaven/filehaven/pkg/controlplane/store"
)

func setupHealthTest(t *testing.T) *runtime.Runtime {
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

	rt, err := runtime.New(cpStore, runtime.Config{
		VolumeRoot:   t.TempDir(),
		PersonalRoot: t.TempDir(),
	}, nil)
	if err != nil {
		t.Fatalf("Failed to create runtime: %v", err)
	}
	return rt
}

func TestHealthHandler_Liveness(t *testing.T) {
	rt := setupHealthTest(t)
	handler := NewHealthHandler(rt)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.Liveness(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Liveness() status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("Liveness() status field = %s, want healthy", resp.Status)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	t.Run("healthy runtime", func(t *testing.T) {
		rt := setupHealthTest(t)
		handler := NewHealthHandler(rt)

		req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
		w := httptest.NewRecorder()

		handler.Readiness(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Readiness() status = %d, want %d, body = %s", w.Code, http.StatusOK, w.Body.String())
		}
	})

	t.Run("missing runtime", func(t *testing.T) {
		handler := NewHealthHandler(nil)

		req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
		w := httptest.NewRecorder()

		handler.Readiness(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Readiness() status = %d, want %d", w.Code, http.StatusServiceUnavailable)
		}
	})
}
