package sandbox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEmptyDirectory(t *testing.T) {
	svc, _ := newTestService(t)

	listing, err := svc.List("")
	require.NoError(t, err)
	assert.Equal(t, "", listing.Path)
	assert.NotNil(t, listing.Items)
	assert.Empty(t, listing.Items)
}

func TestListSortedByName(t *testing.T) {
	svc, root := newTestService(t)
	for _, name := range []string{"b.txt", "a.txt", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(root, "az"), 0o755))

	listing, err := svc.List("")
	require.NoError(t, err)

	names := make([]string, len(listing.Items))
	for i, item := range listing.Items {
		names[i] = item.Name
	}
	assert.Equal(t, []string{"a.txt", "az", "b.txt", "c.txt"}, names)
}

func TestListEntryPathsAreRelative(t *testing.T) {
	svc, root := newTestService(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs", "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "readme.md"), []byte("x"), 0o644))

	listing, err := svc.List("docs")
	require.NoError(t, err)
	assert.Equal(t, "docs", listing.Path)

	byName := map[string]Entry{}
	for _, item := range listing.Items {
		byName[item.Name] = item
	}
	assert.Equal(t, "docs/readme.md", byName["readme.md"].Path)
	assert.Equal(t, TypeFile, byName["readme.md"].Type)
	assert.Equal(t, "docs/sub", byName["sub"].Path)
	assert.Equal(t, TypeDirectory, byName["sub"].Type)
}

// One unreadable entry must not deny visibility into the rest of the
// directory; it is dropped from the result. A dangling symlink forces the
// per-entry stat failure portably.
func TestListDropsUnreadableEntries(t *testing.T) {
	svc, root := newTestService(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "ok.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Symlink(filepath.Join(root, "does-not-exist"), filepath.Join(root, "dangling")))

	listing, err := svc.List("")
	require.NoError(t, err)

	names := make([]string, len(listing.Items))
	for i, item := range listing.Items {
		names[i] = item.Name
	}
	assert.Equal(t, []string{"ok.txt"}, names)
}

func TestListNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.List("missing")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestListNotADirectory(t *testing.T) {
	svc, root := newTestService(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "plain.txt"), []byte("x"), 0o644))

	_, err := svc.List("plain.txt")
	require.Error(t, err)
	assert.Equal(t, KindNotADirectory, KindOf(err))
}

// Deeply nested directories stay listable and readable through relative
// entry paths.
func TestListNestedRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.CreateDirectory("level1/level2/level3"))
	content := "Hello from nested file!"
	_, err := svc.WriteText("level1/level2/test.txt", content, "")
	require.NoError(t, err)

	listing, err := svc.List("level1/level2")
	require.NoError(t, err)

	var file *Entry
	for i := range listing.Items {
		if listing.Items[i].Name == "test.txt" {
			file = &listing.Items[i]
		}
	}
	require.NotNil(t, file)
	assert.Equal(t, "level1/level2/test.txt", file.Path)
	require.NotNil(t, file.Size)
	assert.Equal(t, int64(len(content)), *file.Size)

	fc, hint, err := svc.ReadText(file.Path)
	require.NoError(t, err)
	require.Nil(t, hint)
	assert.Equal(t, content, fc.Content)
}
