package access

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filehaven/filehaven/pkg/controlplane/models"
)

type fakeEntry struct {
	name    string
	dir     bool
	size    int64
	modTime time.Time
	infoErr error
}

func (e fakeEntry) Name() string               { return e.name }
func (e fakeEntry) IsDir() bool                { return e.dir }
func (e fakeEntry) Type() fs.FileMode          { return 0 }
func (e fakeEntry) Info() (fs.FileInfo, error) { return fakeInfo{e}, e.infoErr }

type fakeInfo struct{ e fakeEntry }

func (i fakeInfo) Name() string       { return i.e.name }
func (i fakeInfo) Size() int64        { return i.e.size }
func (i fakeInfo) Mode() fs.FileMode  { return 0 }
func (i fakeInfo) ModTime() time.Time { return i.e.modTime }
func (i fakeInfo) IsDir() bool        { return i.e.dir }
func (i fakeInfo) Sys() any           { return nil }

type fakeFS struct {
	dirs map[string][]fakeEntry
}

func (f *fakeFS) Stat(path string) (fs.FileInfo, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeFS) ReadDir(path string) ([]fs.DirEntry, error) {
	entries, ok := f.dirs[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	out := make([]fs.DirEntry, len(entries))
	for i, e := range entries {
		out[i] = e
	}
	return out, nil
}

func newTestLister(f *fakeStores, fsys FS) *Lister {
	return NewLister(newTestEngine(f), NewResolver(testRoots()), fsys)
}

func TestListFiltersHiddenChildren(t *testing.T) {
	f := newFakeStores()
	f.rules = []*models.PathRule{rule("/docs/secret.txt", true, models.PermissionHidden)}

	fsys := &fakeFS{dirs: map[string][]fakeEntry{
		filepath.Join("/srv/filehaven/volumes", "docs"): {
			{name: "a.txt", size: 10},
			{name: "secret.txt", size: 20},
		},
	}}

	listing, err := newTestLister(f, fsys).List(context.Background(), UserCaller(testAlice), "docs", ListOptions{})
	require.NoError(t, err)
	require.Len(t, listing.Items, 1)
	assert.Equal(t, "a.txt", listing.Items[0].Name)
	assert.Equal(t, "docs/a.txt", listing.Items[0].Path)
	assert.True(t, listing.Access.CanAccess)
}

func TestListDeniedParent(t *testing.T) {
	fsys := &fakeFS{dirs: map[string][]fakeEntry{}}

	listing, err := newTestLister(newFakeStores(), fsys).List(context.Background(), Anonymous(), "docs", ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, listing.Items)
	assert.False(t, listing.Access.CanAccess)
	assert.Equal(t, ReasonAuthenticationRequired, listing.Access.DenialReason)
}

func TestListExcludesConfiguredNames(t *testing.T) {
	fsys := &fakeFS{dirs: map[string][]fakeEntry{
		filepath.Join("/srv/filehaven/volumes", "docs"): {
			{name: "a.txt"},
			{name: ".upload-partial"},
		},
	}}

	listing, err := newTestLister(newFakeStores(), fsys).List(context.Background(), UserCaller(testAlice), "docs",
		ListOptions{ExcludeNames: []string{".upload-partial"}})
	require.NoError(t, err)
	require.Len(t, listing.Items, 1)
	assert.Equal(t, "a.txt", listing.Items[0].Name)
}

func TestListSkipsUnstatableEntries(t *testing.T) {
	fsys := &fakeFS{dirs: map[string][]fakeEntry{
		filepath.Join("/srv/filehaven/volumes", "docs"): {
			{name: "good.txt", size: 5},
			{name: "broken-link", infoErr: fs.ErrNotExist},
		},
	}}

	listing, err := newTestLister(newFakeStores(), fsys).List(context.Background(), UserCaller(testAlice), "docs", ListOptions{})
	require.NoError(t, err)
	require.Len(t, listing.Items, 1)
	assert.Equal(t, "good.txt", listing.Items[0].Name)
}

func TestListItemMetadata(t *testing.T) {
	mtime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fsys := &fakeFS{dirs: map[string][]fakeEntry{
		filepath.Join("/srv/filehaven/volumes", "docs"): {
			{name: "sub", dir: true, modTime: mtime},
			{name: "photo.JPG", size: 2048, modTime: mtime},
			{name: "README", size: 1},
			{name: "weird.verylongextension", size: 1},
		},
	}}

	listing, err := newTestLister(newFakeStores(), fsys).List(context.Background(), UserCaller(testAlice), "docs",
		ListOptions{Thumbnails: true})
	require.NoError(t, err)
	require.Len(t, listing.Items, 4)

	byName := make(map[string]Item)
	for _, item := range listing.Items {
		byName[item.Name] = item
	}

	assert.Equal(t, KindDirectory, byName["sub"].Kind)
	assert.True(t, byName["sub"].IsDirectory)
	assert.Equal(t, mtime, byName["sub"].ModTime)

	assert.Equal(t, "jpg", byName["photo.JPG"].Kind)
	assert.True(t, byName["photo.JPG"].Thumbnail)
	assert.Equal(t, int64(2048), byName["photo.JPG"].Size)

	assert.Equal(t, KindUnknown, byName["README"].Kind)
	assert.Equal(t, KindUnknown, byName["weird.verylongextension"].Kind)
	assert.False(t, byName["README"].Thumbnail)
}

func TestListThumbnailsDisabled(t *testing.T) {
	fsys := &fakeFS{dirs: map[string][]fakeEntry{
		filepath.Join("/srv/filehaven/volumes", "docs"): {
			{name: "photo.jpg", size: 2048},
		},
	}}

	listing, err := newTestLister(newFakeStores(), fsys).List(context.Background(), UserCaller(testAlice), "docs", ListOptions{})
	require.NoError(t, err)
	require.Len(t, listing.Items, 1)
	assert.False(t, listing.Items[0].Thumbnail)
}

func TestListShareUsesOneLookupPerToken(t *testing.T) {
	f := newFakeStores()
	f.shares["tok"] = &models.Share{
		ID: "share-1", Token: "tok", OwnerID: testAlice.ID,
		Source: "volume", SourcePath: "/docs", IsDirectory: true,
		SharingType: "anyone", AccessMode: "readonly",
	}

	entries := make([]fakeEntry, 20)
	for i := range entries {
		entries[i] = fakeEntry{name: string(rune('a'+i)) + ".txt"}
	}
	fsys := &fakeFS{dirs: map[string][]fakeEntry{
		filepath.Join("/srv/filehaven/volumes", "docs"): entries,
	}}

	listing, err := newTestLister(f, fsys).List(context.Background(), GuestCaller("share-1"), "share/tok", ListOptions{})
	require.NoError(t, err)
	assert.Len(t, listing.Items, 20)
	require.NotNil(t, listing.Share)
	assert.Equal(t, "tok", listing.Share.Token)
	assert.Equal(t, 1, f.shareLookups, "one listing should resolve the share once")
	assert.Equal(t, 1, f.ruleFetches, "one listing should fetch rules once")
}

func TestListShareHidesHiddenChildren(t *testing.T) {
	f := newFakeStores()
	f.rules = []*models.PathRule{rule("/docs/secret.txt", true, models.PermissionHidden)}
	f.shares["tok"] = &models.Share{
		ID: "share-1", Token: "tok", OwnerID: testAlice.ID,
		Source: "volume", SourcePath: "/docs", IsDirectory: true,
		SharingType: "anyone", AccessMode: "readwrite",
	}
	fsys := &fakeFS{dirs: map[string][]fakeEntry{
		filepath.Join("/srv/filehaven/volumes", "docs"): {
			{name: "a.txt"},
			{name: "secret.txt"},
		},
	}}

	listing, err := newTestLister(f, fsys).List(context.Background(), GuestCaller("share-1"), "share/tok", ListOptions{})
	require.NoError(t, err)
	require.Len(t, listing.Items, 1)
	assert.Equal(t, "a.txt", listing.Items[0].Name)
	assert.Equal(t, "share/tok/a.txt", listing.Items[0].Path)
}

func TestListStopsOnCancelledContext(t *testing.T) {
	fsys := &fakeFS{dirs: map[string][]fakeEntry{
		filepath.Join("/srv/filehaven/volumes", "docs"): {
			{name: "a.txt"},
			{name: "b.txt"},
			{name: "c.txt"},
		},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	listing, err := newTestLister(newFakeStores(), fsys).List(ctx, UserCaller(testAlice), "docs", ListOptions{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, listing)
}

func TestFileKindLength(t *testing.T) {
	assert.Equal(t, "markdown", fileKind("notes.markdown"))
	assert.Equal(t, KindUnknown, fileKind("archive.ninechars"))
}

func TestListMissingDirectoryPropagates(t *testing.T) {
	fsys := &fakeFS{dirs: map[string][]fakeEntry{}}

	_, err := newTestLister(newFakeStores(), fsys).List(context.Background(), UserCaller(testAlice), "docs", ListOptions{})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
