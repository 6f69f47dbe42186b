package access

import (
	"strings"

	"github.com/filehaven/filehaven/pkg/controlplane/models"
)

// RuleSet holds an ordered list of path rules compiled for fast
// resolution. Rules are evaluated first-match-wins in stored order;
// the compiled trie only changes the lookup cost, never the winner.
//
// A RuleSet is immutable after construction and safe for concurrent use.
type RuleSet struct {
	rules []*compiledRule
	root  *ruleNode
}

type compiledRule struct {
	index      int
	path       string
	recursive  bool
	permission models.PathPermission
}

type ruleNode struct {
	children  map[string]*ruleNode
	exact     *compiledRule
	recursive *compiledRule
}

// NewRuleSet compiles an ordered rule list. Rule paths are normalized;
// rules with unparseable paths are dropped, matching the fail-closed
// stance of the rest of the package (a malformed rule can widen nothing).
func NewRuleSet(rules []*models.PathRule) *RuleSet {
	rs := &RuleSet{
		root: &ruleNode{},
	}

	for _, rule := range rules {
		normalized, err := Normalize(rule.Path)
		if err != nil {
			continue
		}
		cr := &compiledRule{
			index:      len(rs.rules),
			path:       normalized,
			recursive:  rule.Recursive,
			permission: rule.GetPermission(),
		}
		rs.rules = append(rs.rules, cr)
		rs.insert(cr)
	}

	return rs
}

func (rs *RuleSet) insert(cr *compiledRule) {
	node := rs.root
	if cr.path != "" {
		for _, seg := range strings.Split(cr.path, "/") {
			if node.children == nil {
				node.children = make(map[string]*ruleNode)
			}
			child, ok := node.children[seg]
			if !ok {
				child = &ruleNode{}
				node.children[seg] = child
			}
			node = child
		}
	}

	// Earliest rule at a node wins; later ones can never be reached
	// for the paths this node covers.
	if node.exact == nil {
		node.exact = cr
	}
	if cr.recursive && node.recursive == nil {
		node.recursive = cr
	}
}

// Len returns the number of compiled rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Resolve returns the effective permission for a normalized relative
// path. The first matching rule in stored order wins; recursive rules
// match segment-aligned prefixes, non-recursive rules match exactly.
// No match yields the permissive default, rw.
func (rs *RuleSet) Resolve(path string) models.PathPermission {
	var winner *compiledRule

	consider := func(cr *compiledRule) {
		if cr != nil && (winner == nil || cr.index < winner.index) {
			winner = cr
		}
	}

	node := rs.root
	consider(node.recursive)

	if path != "" {
		for _, seg := range strings.Split(path, "/") {
			child, ok := node.children[seg]
			if !ok {
				node = nil
				break
			}
			node = child
			consider(node.recursive)
		}
	}

	if node != nil {
		consider(node.exact)
	}

	if winner == nil {
		return models.PermissionReadWrite
	}
	return winner.permission
}

// resolveList is the reference linear-scan resolution. It exists to
// pin the trie's semantics in tests.
func (rs *RuleSet) resolveList(path string) models.PathPermission {
	for _, cr := range rs.rules {
		if cr.path == path {
			return cr.permission
		}
		if cr.recursive && isPathPrefix(cr.path, path) {
			return cr.permission
		}
	}
	return models.PermissionReadWrite
}

// isPathPrefix reports whether prefix is a segment-aligned prefix of
// path. "a/b" is a prefix of "a/b/c" but not of "a/bc".
func isPathPrefix(prefix, path string) bool {
	if prefix == "" {
		return true
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}
