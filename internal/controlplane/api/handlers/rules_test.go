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

func setupRuleTest(t *testing.T) (store.Store, *RuleHandler) {
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

	return cpStore, NewRuleHandler(cpStore)
}

func createRuleViaHandler(t *testing.T, handler *RuleHandler, path, permissions string) models.PathRule {
	t.Helper()

	body, _ := json.Marshal(CreateRuleRequest{Path: path, Permissions: permissions})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rules", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Create(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Create() status = %d, want %d, body = %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var rule models.PathRule
	if err := json.Unmarshal(w.Body.Bytes(), &rule); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	return rule
}

func TestRuleHandler_Create(t *testing.T) {
	_, handler := setupRuleTest(t)

	tests := []struct {
		name       string
		body       CreateRuleRequest
		wantStatus int
	}{
		{
			name:       "valid rule",
			body:       CreateRuleRequest{Path: "/projects", Permissions: "ro"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing path",
			body:       CreateRuleRequest{Permissions: "ro"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "relative path",
			body:       CreateRuleRequest{Path: "projects", Permissions: "ro"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid permission",
			body:       CreateRuleRequest{Path: "/projects", Permissions: "execute"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/rules", bytes.NewReader(body))
			w := httptest.NewRecorder()

			handler.Create(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Create() status = %d, want %d, body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRuleHandler_ListOrder(t *testing.T) {
	_, handler := setupRuleTest(t)

	first := createRuleViaHandler(t, handler, "/a", "ro")
	second := createRuleViaHandler(t, handler, "/b", "hidden")
	third := createRuleViaHandler(t, handler, "/c", "rw")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rules", nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("List() status = %d, want %d", w.Code, http.StatusOK)
	}

	var rules []models.PathRule
	if err := json.Unmarshal(w.Body.Bytes(), &rules); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(rules) != 3 {
		t.Fatalf("List() returned %d rules, want 3", len(rules))
	}
	for i, want := range []string{first.ID, second.ID, third.ID} {
		if rules[i].ID != want {
			t.Errorf("List()[%d].ID = %s, want %s", i, rules[i].ID, want)
		}
	}
}

func TestRuleHandler_Reorder(t *testing.T) {
	_, handler := setupRuleTest(t)

	first := createRuleViaHandler(t, handler, "/a", "ro")
	second := createRuleViaHandler(t, handler, "/b", "hidden")

	body, _ := json.Marshal(ReorderRulesRequest{IDs: []string{second.ID, first.ID}})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/rules/order", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Reorder(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Reorder() status = %d, want %d, body = %s", w.Code, http.StatusOK, w.Body.String())
	}

	var rules []models.PathRule
	if err := json.Unmarshal(w.Body.Bytes(), &rules); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if rules[0].ID != second.ID || rules[1].ID != first.ID {
		t.Errorf("Reorder() order = [%s %s], want [%s %s]", rules[0].ID, rules[1].ID, second.ID, first.ID)
	}
}

func TestRuleHandler_Reorder_UnknownID(t *testing.T) {
	_, handler := setupRuleTest(t)

	createRuleViaHandler(t, handler, "/a", "ro")

	body, _ := json.Marshal(ReorderRulesRequest{IDs: []string{"no-such-rule"}})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/rules/order", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Reorder(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Reorder() status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestRuleHandler_Delete(t *testing.T) {
	_, handler := setupRuleTest(t)

	rule := createRuleViaHandler(t, handler, "/a", "ro")

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/rules/"+rule.ID, nil)
	req = withURLParam(req, "id", rule.ID)
	w := httptest.NewRecorder()

	handler.Delete(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("Delete() status = %d, want %d", w.Code, http.StatusNoContent)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/rules/"+rule.ID, nil)
	req = withURLParam(req, "id", rule.ID)
	w = httptest.NewRecorder()

	handler.Delete(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Delete() status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
