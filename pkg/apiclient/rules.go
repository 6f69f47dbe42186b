package apiclient

import (
	"time"
)

// Rule represents a path permission rule. Rules are evaluated in
// position order; the first match wins.
type Rule struct {
	ID          string    `json:"id"`
	Path        string    `json:"path"`
	Recursive   bool      `json:"recursive"`
	Permissions string    `json:"permissions"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// CreateRuleRequest is the request to create a rule.
type CreateRuleRequest struct {
	Path        string `json:"path"`
	Recursive   *bool  `json:"recursive,omitempty"`
	Permissions string `json:"permissions"`
}

// UpdateRuleRequest is the request to update a rule.
type UpdateRuleRequest struct {
	Path        *string `json:"path,omitempty"`
	Recursive   *bool   `json:"recursive,omitempty"`
	Permissions *string `json:"permissions,omitempty"`
}

// ReorderRulesRequest is the request to reorder rules. IDs must list
// every rule exactly once, in the desired evaluation order.
type ReorderRulesRequest struct {
	IDs []string `json:"ids"`
}

// ListRules returns all path rules in evaluation order.
func (c *Client) ListRules() ([]Rule, error) {
	return listResources[Rule](c, "/api/v1/rules")
}

// GetRule returns a rule by ID.
func (c *Client) GetRule(id string) (*Rule, error) {
	return getResource[Rule](c, resourcePath("/api/v1/rules/%s", id))
}

// CreateRule creates a new rule at the end of the evaluation order.
func (c *Client) CreateRule(req CreateRuleRequest) (*Rule, error) {
	return createResource[Rule](c, "/api/v1/rules", req)
}

// UpdateRule updates an existing rule.
func (c *Client) UpdateRule(id string, req UpdateRuleRequest) (*Rule, error) {
	return updateResource[Rule](c, resourcePath("/api/v1/rules/%s", id), req)
}

// DeleteRule deletes a rule by ID.
func (c *Client) DeleteRule(id string) error {
	return deleteResource(c, resourcePath("/api/v1/rules/%s", id))
}

// ReorderRules sets a new evaluation order for all rules.
func (c *Client) ReorderRules(ids []string) ([]Rule, error) {
	var rules []Rule
	if err := c.put("/api/v1/rules/order", ReorderRulesRequest{IDs: ids}, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}
