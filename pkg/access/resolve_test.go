package access

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filehaven/filehaven/pkg/controlplane/models"
)

func testRoots() Roots {
	return Roots{
		Volume:   "/srv/filehaven/volumes",
		Personal: "/srv/filehaven/personal",
	}
}

func decideFor(t *testing.T, f *fakeStores, caller Caller, path string) *Decision {
	t.Helper()
	d, err := newTestEngine(f).Decide(context.Background(), caller, path, nil)
	require.NoError(t, err)
	require.True(t, d.CanAccess, "expected allowed decision for %s, denied: %s", path, d.DenialReason)
	return d
}

func TestResolveVolume(t *testing.T) {
	resolver := NewResolver(testRoots())
	d := decideFor(t, newFakeStores(), UserCaller(testAlice), "projects/report.pdf")

	loc, err := resolver.Resolve(UserCaller(testAlice), d)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv/filehaven/volumes", "projects", "report.pdf"), loc.AbsolutePath)
	assert.Equal(t, "projects/report.pdf", loc.RelativePath)
	assert.Nil(t, loc.Share)
}

func TestResolveUserVolume(t *testing.T) {
	f := newFakeStores()
	f.userVolumes = true
	f.addVolume(&models.UserVolume{
		ID: "vol-1", UserID: testAlice.ID, Label: "media",
		AccessMode: "readwrite", RootPath: "/mnt/media",
	})
	resolver := NewResolver(testRoots())

	d := decideFor(t, f, UserCaller(testAlice), "media/photos/cat.jpg")
	loc, err := resolver.Resolve(UserCaller(testAlice), d)
	require.NoError(t, err)
	// The label maps to the volume root, not a directory under the
	// shared volume tree.
	assert.Equal(t, filepath.Join("/mnt/media", "photos", "cat.jpg"), loc.AbsolutePath)
}

func TestResolvePersonal(t *testing.T) {
	resolver := NewResolver(testRoots())
	d := decideFor(t, newFakeStores(), UserCaller(testAlice), "personal/docs/notes.txt")

	loc, err := resolver.Resolve(UserCaller(testAlice), d)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv/filehaven/personal", "alice", "docs", "notes.txt"), loc.AbsolutePath)
}

func TestResolveShare(t *testing.T) {
	f := newFakeStores()
	f.shares["tok"] = &models.Share{
		ID: "share-1", Token: "tok", OwnerID: testAlice.ID,
		Source: "volume", SourcePath: "/docs/reports", IsDirectory: true,
		SharingType: "anyone", AccessMode: "readonly",
	}
	resolver := NewResolver(testRoots())

	d := decideFor(t, f, GuestCaller("share-1"), "share/tok/q3.pdf")
	loc, err := resolver.Resolve(GuestCaller("share-1"), d)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv/filehaven/volumes", "docs", "reports", "q3.pdf"), loc.AbsolutePath)
	require.NotNil(t, loc.Share)
	assert.Equal(t, "tok", loc.Share.Token)
}

func TestResolveShareFromUserVolume(t *testing.T) {
	f := newFakeStores()
	f.addVolume(&models.UserVolume{
		ID: "vol-1", UserID: testAlice.ID, Label: "media",
		AccessMode: "readwrite", RootPath: "/mnt/media",
	})
	f.shares["tok"] = &models.Share{
		ID: "share-1", Token: "tok", OwnerID: testAlice.ID,
		Source: "user_volume", VolumeID: "vol-1",
		SourcePath: "/media/photos", IsDirectory: true,
		SharingType: "anyone", AccessMode: "readonly",
	}
	resolver := NewResolver(testRoots())

	d := decideFor(t, f, GuestCaller("share-1"), "share/tok/cat.jpg")
	loc, err := resolver.Resolve(GuestCaller("share-1"), d)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/mnt/media", "photos", "cat.jpg"), loc.AbsolutePath)
}

func TestResolveRejectsDenials(t *testing.T) {
	resolver := NewResolver(testRoots())

	_, err := resolver.Resolve(Anonymous(), denied(ParsedPath{Space: SpaceVolume}, ReasonAuthenticationRequired))
	assert.Error(t, err)

	_, err = resolver.Resolve(Anonymous(), nil)
	assert.Error(t, err)
}
