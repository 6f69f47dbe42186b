package access

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/filehaven/filehaven/pkg/controlplane/models"
)

func rule(path string, recursive bool, perm models.PathPermission) *models.PathRule {
	return &models.PathRule{
		Path:        path,
		Recursive:   recursive,
		Permissions: string(perm),
	}
}

func TestRuleSetResolve(t *testing.T) {
	rs := NewRuleSet([]*models.PathRule{
		rule("/projects/secret", true, models.PermissionHidden),
		rule("/projects", true, models.PermissionReadOnly),
		rule("/scratch", false, models.PermissionReadWrite),
	})

	tests := []struct {
		path string
		want models.PathPermission
	}{
		{"projects/secret", models.PermissionHidden},
		{"projects/secret/deep/file.txt", models.PermissionHidden},
		{"projects", models.PermissionReadOnly},
		{"projects/plan.md", models.PermissionReadOnly},
		{"scratch", models.PermissionReadWrite},
		// Non-recursive rules never reach children.
		{"scratch/tmp.txt", models.PermissionReadWrite},
		// No match defaults to rw.
		{"music/track.mp3", models.PermissionReadWrite},
		{"", models.PermissionReadWrite},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, rs.Resolve(tt.path))
		})
	}
}

func TestRuleSetFirstMatchWins(t *testing.T) {
	// A broad rule stored first shadows a narrower one stored later.
	rs := NewRuleSet([]*models.PathRule{
		rule("/docs", true, models.PermissionReadOnly),
		rule("/docs/public", true, models.PermissionReadWrite),
	})
	assert.Equal(t, models.PermissionReadOnly, rs.Resolve("docs/public/readme.md"))

	// Swapping the order flips the outcome for the narrow subtree.
	rs = NewRuleSet([]*models.PathRule{
		rule("/docs/public", true, models.PermissionReadWrite),
		rule("/docs", true, models.PermissionReadOnly),
	})
	assert.Equal(t, models.PermissionReadWrite, rs.Resolve("docs/public/readme.md"))
	assert.Equal(t, models.PermissionReadOnly, rs.Resolve("docs/private.md"))
}

func TestRuleSetSegmentAlignedMatching(t *testing.T) {
	rs := NewRuleSet([]*models.PathRule{
		rule("/projects", true, models.PermissionHidden),
	})

	assert.Equal(t, models.PermissionHidden, rs.Resolve("projects/file"))
	// A raw string prefix is not a path prefix.
	assert.Equal(t, models.PermissionReadWrite, rs.Resolve("projects-archive/file"))
}

func TestRuleSetNonRecursiveExactOnly(t *testing.T) {
	rs := NewRuleSet([]*models.PathRule{
		rule("/a/b", false, models.PermissionReadOnly),
	})

	assert.Equal(t, models.PermissionReadOnly, rs.Resolve("a/b"))
	assert.Equal(t, models.PermissionReadWrite, rs.Resolve("a/b/c/d.txt"))
}

func TestRuleSetRootRule(t *testing.T) {
	rs := NewRuleSet([]*models.PathRule{
		rule("/", true, models.PermissionReadOnly),
	})
	assert.Equal(t, models.PermissionReadOnly, rs.Resolve(""))
	assert.Equal(t, models.PermissionReadOnly, rs.Resolve("anything/at/all"))
}

func TestRuleSetDropsMalformedRules(t *testing.T) {
	rs := NewRuleSet([]*models.PathRule{
		rule("/../escape", true, models.PermissionReadWrite),
		rule("/docs", true, models.PermissionReadOnly),
	})
	assert.Equal(t, 1, rs.Len())
	assert.Equal(t, models.PermissionReadOnly, rs.Resolve("docs"))
}

// TestRuleSetTrieMatchesLinearScan pins the compiled trie to the
// reference linear scan across randomized overlapping rule sets.
func TestRuleSetTrieMatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	segments := []string{"a", "b", "c", "docs", "media"}
	perms := []models.PathPermission{
		models.PermissionReadWrite,
		models.PermissionReadOnly,
		models.PermissionHidden,
	}

	randPath := func(maxDepth int) string {
		depth := rng.Intn(maxDepth + 1)
		parts := make([]string, depth)
		for i := range parts {
			parts[i] = segments[rng.Intn(len(segments))]
		}
		return strings.Join(parts, "/")
	}

	for trial := 0; trial < 200; trial++ {
		ruleCount := rng.Intn(8)
		rules := make([]*models.PathRule, ruleCount)
		for i := range rules {
			rules[i] = rule("/"+randPath(3), rng.Intn(2) == 0, perms[rng.Intn(len(perms))])
		}
		rs := NewRuleSet(rules)

		for probe := 0; probe < 50; probe++ {
			path := randPath(5)
			want := rs.resolveList(path)
			got := rs.Resolve(path)
			if got != want {
				desc := make([]string, len(rules))
				for i, r := range rules {
					desc[i] = fmt.Sprintf("%s recursive=%v %s", r.Path, r.Recursive, r.Permissions)
				}
				t.Fatalf("trie disagrees with linear scan on %q: got %s want %s\nrules: %s",
					path, got, want, strings.Join(desc, "; "))
			}
		}
	}
}
