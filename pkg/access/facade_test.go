package access

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filehaven/filehaven/pkg/controlplane/models"
)

func newTestAuthorizer(f *fakeStores) *Authorizer {
	return NewAuthorizer(newTestEngine(f), NewResolver(testRoots()))
}

func TestAuthorizeActionMapping(t *testing.T) {
	f := newFakeStores()
	f.rules = []*models.PathRule{rule("/projects", true, models.PermissionReadOnly)}
	auth := newTestAuthorizer(f)
	ctx := context.Background()

	readOnlyAllowed := map[Action]bool{
		ActionList:         true,
		ActionRead:         true,
		ActionDownload:     true,
		ActionCreateShare:  true,
		ActionWrite:        false,
		ActionRename:       false,
		ActionDelete:       false,
		ActionUpload:       false,
		ActionCreateFolder: false,
	}

	for action, want := range readOnlyAllowed {
		t.Run(string(action), func(t *testing.T) {
			result, err := auth.Authorize(ctx, UserCaller(testAlice), "projects/plan.md", action, nil)
			require.NoError(t, err)
			assert.Equal(t, want, result.Allowed)
			require.NotNil(t, result.Decision)
		})
	}
}

func TestAuthorizeUnknownAction(t *testing.T) {
	auth := newTestAuthorizer(newFakeStores())

	_, err := auth.Authorize(context.Background(), UserCaller(testAlice), "projects/plan.md", Action("chmod"), nil)
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestAuthorizeDenialIsNotAnError(t *testing.T) {
	auth := newTestAuthorizer(newFakeStores())

	result, err := auth.Authorize(context.Background(), Anonymous(), "projects/plan.md", ActionRead, nil)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, ReasonAuthenticationRequired, result.Decision.DenialReason)
}

func TestAuthorizeAndResolve(t *testing.T) {
	auth := newTestAuthorizer(newFakeStores())
	ctx := context.Background()

	t.Run("allowed request resolves", func(t *testing.T) {
		result, err := auth.AuthorizeAndResolve(ctx, UserCaller(testAlice), "projects/plan.md", ActionRead, nil)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		require.NotNil(t, result.Resolved)
		assert.NotEmpty(t, result.Resolved.AbsolutePath)
	})

	t.Run("denied request does not resolve", func(t *testing.T) {
		result, err := auth.AuthorizeAndResolve(ctx, Anonymous(), "projects/plan.md", ActionRead, nil)
		require.NoError(t, err)
		assert.False(t, result.Allowed)
		assert.Nil(t, result.Resolved)
	})
}
