package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/filehaven/filehaven/pkg/controlplane/models"
	"github.com/filehaven/filehaven/pkg/controlplane/store"
)

// RuleHandler handles path rule management API endpoints.
//
// Path rules control volume-space permissions and are admin-only. Rule
// order matters: the engine applies the first matching rule, so the
// reorder endpoint exists to rearrange the whole list atomically.
type RuleHandler struct {
	store store.Store
}

// NewRuleHandler creates a new RuleHandler.
func NewRuleHandler(s store.Store) *RuleHandler {
	return &RuleHandler{store: s}
}

// CreateRuleRequest is the request body for POST /api/v1/rules.
type CreateRuleRequest struct {
	Path        string `json:"path"`
	Recursive   *bool  `json:"recursive,omitempty"`
	Permissions string `json:"permissions"`
}

// UpdateRuleRequest is the request body for PUT /api/v1/rules/{id}.
type UpdateRuleRequest struct {
	Path        *string `json:"path,omitempty"`
	Recursive   *bool   `json:"recursive,omitempty"`
	Permissions *string `json:"permissions,omitempty"`
}

// ReorderRulesRequest is the request body for PUT /api/v1/rules/order.
type ReorderRulesRequest struct {
	IDs []string `json:"ids"`
}

// List handles GET /api/v1/rules.
// Lists all path rules in evaluation order.
func (h *RuleHandler) List(w http.ResponseWriter, r *http.Request) {
	rules, err := h.store.ListRules(r.Context())
	if err != nil {
		InternalServerError(w, "Failed to list rules")
		return
	}

	WriteJSONOK(w, rules)
}

// Get handles GET /api/v1/rules/{id}.
func (h *RuleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		BadRequest(w, "Rule ID is required")
		return
	}

	rule, err := h.store.GetRule(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrRuleNotFound) {
			NotFound(w, "Rule not found")
			return
		}
		InternalServerError(w, "Failed to get rule")
		return
	}

	WriteJSONOK(w, rule)
}

// Create handles POST /api/v1/rules.
// Creates a new path rule at the end of the rule list.
func (h *RuleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRuleRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	rule := &models.PathRule{
		Path:        req.Path,
		Recursive:   true,
		Permissions: req.Permissions,
	}
	if req.Recursive != nil {
		rule.Recursive = *req.Recursive
	}

	if err := rule.Validate(); err != nil {
		BadRequest(w, err.Error())
		return
	}

	if _, err := h.store.CreateRule(r.Context(), rule); err != nil {
		InternalServerError(w, "Failed to create rule")
		return
	}

	WriteJSONCreated(w, rule)
}

// Update handles PUT /api/v1/rules/{id}.
// Updates a rule's path, recursion, or permission. Position is changed
// through the reorder endpoint only.
func (h *RuleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		BadRequest(w, "Rule ID is required")
		return
	}

	var req UpdateRuleRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	rule, err := h.store.GetRule(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrRuleNotFound) {
			NotFound(w, "Rule not found")
			return
		}
		InternalServerError(w, "Failed to get rule")
		return
	}

	if req.Path != nil {
		rule.Path = *req.Path
	}
	if req.Recursive != nil {
		rule.Recursive = *req.Recursive
	}
	if req.Permissions != nil {
		rule.Permissions = *req.Permissions
	}

	if err := rule.Validate(); err != nil {
		BadRequest(w, err.Error())
		return
	}

	if err := h.store.UpdateRule(r.Context(), rule); err != nil {
		if errors.Is(err, models.ErrRuleNotFound) {
			NotFound(w, "Rule not found")
			return
		}
		InternalServerError(w, "Failed to update rule")
		return
	}

	WriteJSONOK(w, rule)
}

// Delete handles DELETE /api/v1/rules/{id}.
func (h *RuleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		BadRequest(w, "Rule ID is required")
		return
	}

	if err := h.store.DeleteRule(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrRuleNotFound) {
			NotFound(w, "Rule not found")
			return
		}
		InternalServerError(w, "Failed to delete rule")
		return
	}

	WriteNoContent(w)
}

// Reorder handles PUT /api/v1/rules/order.
// Rewrites rule positions to match the given ID order.
func (h *RuleHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req ReorderRulesRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if len(req.IDs) == 0 {
		BadRequest(w, "Rule IDs are required")
		return
	}

	if err := h.store.ReorderRules(r.Context(), req.IDs); err != nil {
		if errors.Is(err, models.ErrRuleNotFound) {
			NotFound(w, "Rule not found")
			return
		}
		InternalServerError(w, "Failed to reorder rules")
		return
	}

	rules, err := h.store.ListRules(r.Context())
	if err != nil {
		InternalServerError(w, "Failed to list rules")
		return
	}

	WriteJSONOK(w, rules)
}
