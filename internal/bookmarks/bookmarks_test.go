package bookmarks

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/LFroesch/fsnav/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.Disable()
}

// openEmpty returns a store whose file exists but holds no bookmarks
func openEmpty(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg", fileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(`{"version":1,"bookmarks":[]}`), 0644))

	s, err := OpenAt(path, "")
	require.NoError(t, err)
	return s, path
}

func TestSeedDefaults(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(home, "Downloads"), 0755))
	path := filepath.Join(t.TempDir(), fileName)

	s, err := OpenAt(path, home)
	require.NoError(t, err)

	list := s.List()
	require.GreaterOrEqual(t, len(list), 3)
	assert.Equal(t, "Home", list[0].Name)
	assert.Equal(t, "h", list[0].Shortcut)
	assert.Equal(t, "Downloads", list[1].Name)
	assert.Equal(t, 'd', list[1].Key())
	assert.Equal(t, "Root", list[2].Name)
	assert.Equal(t, "/", list[2].Path)
	assert.Equal(t, -1, s.FindByPath(filepath.Join(home, "Desktop")), "missing dirs are not seeded")

	seen := map[rune]bool{}
	for _, b := range list {
		require.False(t, seen[b.Key()], "duplicate shortcut %q", b.Shortcut)
		seen[b.Key()] = true
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, 1, doc.Version)
	assert.Len(t, doc.Bookmarks, len(list))
}

func TestAddValidation(t *testing.T) {
	s, _ := openEmpty(t)
	dir := t.TempDir()

	require.NoError(t, s.Add("Work", dir, 'w'))
	assert.ErrorIs(t, s.Add("Again", dir, 0), ErrDuplicatePath)
	assert.ErrorIs(t, s.Add("Other", t.TempDir(), 'w'), ErrShortcutInUse)
	assert.ErrorIs(t, s.Add("Ghost", filepath.Join(dir, "nope"), 0), ErrPathNotFound)
	assert.Equal(t, 1, s.Len())
}

func TestAddPersists(t *testing.T) {
	s, path := openEmpty(t)
	dir := t.TempDir()
	require.NoError(t, s.Add("Work", dir, 'w'))

	reopened, err := OpenAt(path, "")
	require.NoError(t, err)
	require.Equal(t, 1, reopened.Len())
	assert.Equal(t, dir, reopened.List()[0].Path)
	assert.Equal(t, 'w', reopened.List()[0].Key())
}

func TestAvailableShortcuts(t *testing.T) {
	s, _ := openEmpty(t)
	free := s.AvailableShortcuts()
	require.Len(t, free, 33)
	assert.Equal(t, 'a', free[0])
	assert.Equal(t, '0', free[23])
	for _, r := range "cim" {
		assert.NotContains(t, free, r)
	}

	key, err := s.AddWithFreeShortcut("First", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 'a', key)
	assert.Equal(t, 'b', s.AvailableShortcuts()[0])
}

func TestRemoveKeepsShortcutsBound(t *testing.T) {
	s, _ := openEmpty(t)
	a, b, c := t.TempDir(), t.TempDir(), t.TempDir()
	require.NoError(t, s.Add("A", a, 'a'))
	require.NoError(t, s.Add("B", b, 'b'))
	require.NoError(t, s.Add("C", c, 'x'))

	require.NoError(t, s.Remove(0))
	assert.ErrorIs(t, s.Remove(5), ErrIndexOutOfRange)

	got, ok := s.GetByShortcut('x')
	require.True(t, ok)
	assert.Equal(t, c, got.Path)

	_, ok = s.GetByShortcut('a')
	assert.False(t, ok)
	assert.Contains(t, s.AvailableShortcuts(), 'a')
}

func TestAccessTracking(t *testing.T) {
	s, path := openEmpty(t)
	require.NoError(t, s.Add("A", t.TempDir(), 'a'))

	b, ok := s.GetByIndex(0)
	require.True(t, ok)
	assert.Equal(t, 1, b.AccessCount)
	require.NotNil(t, b.LastAccessed)

	b, ok = s.GetByShortcut('a')
	require.True(t, ok)
	assert.Equal(t, 2, b.AccessCount)

	_, ok = s.GetByIndex(3)
	assert.False(t, ok)

	reopened, err := OpenAt(path, "")
	require.NoError(t, err)
	assert.Equal(t, 2, reopened.List()[0].AccessCount)
}

func TestRenameAndShortcutUpdate(t *testing.T) {
	s, _ := openEmpty(t)
	require.NoError(t, s.Add("A", t.TempDir(), 'a'))
	require.NoError(t, s.Add("B", t.TempDir(), 'b'))

	require.NoError(t, s.Rename(0, "  Alpha "))
	assert.Equal(t, "Alpha", s.List()[0].Name)
	assert.Error(t, s.Rename(0, "   "))
	assert.ErrorIs(t, s.Rename(9, "x"), ErrIndexOutOfRange)

	assert.ErrorIs(t, s.UpdateShortcut(0, 'b'), ErrShortcutInUse)
	require.NoError(t, s.UpdateShortcut(0, 'z'))
	assert.Equal(t, 'z', s.List()[0].Key())
	require.NoError(t, s.UpdateShortcut(0, 0))
	assert.Empty(t, s.List()[0].Shortcut)
}

func TestSorting(t *testing.T) {
	s, _ := openEmpty(t)
	require.NoError(t, s.Add("beta", t.TempDir(), 0))
	require.NoError(t, s.Add("alpha", t.TempDir(), 0))
	s.GetByIndex(0)
	s.GetByIndex(0)
	s.GetByIndex(1)

	s.SortByName()
	assert.Equal(t, "alpha", s.List()[0].Name)

	s.SortByFrequency()
	assert.Equal(t, "beta", s.List()[0].Name)
}

func TestTerminalReservedShortcutsRejected(t *testing.T) {
	s, _ := openEmpty(t)
	for _, r := range "cim" {
		assert.Error(t, s.Add(string(r), t.TempDir(), r))
	}
	assert.Zero(t, s.Len())

	require.NoError(t, s.Add("Any", t.TempDir(), 0))
	assert.Error(t, s.UpdateShortcut(0, 'i'))
	assert.Empty(t, s.List()[0].Shortcut)
}

func TestImportDropsReservedShortcut(t *testing.T) {
	src, _ := openEmpty(t)
	dir := t.TempDir()
	require.NoError(t, src.Add("Work", dir, 'w'))

	out := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, src.Export(out))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	data = []byte(strings.Replace(string(data), `"shortcut": "w"`, `"shortcut": "m"`, 1))
	require.NoError(t, os.WriteFile(out, data, 0644))

	dst, _ := openEmpty(t)
	added, err := dst.Import(out)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Empty(t, dst.List()[0].Shortcut)
}

func TestExportImport(t *testing.T) {
	for _, ext := range []string{".json", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			src, _ := openEmpty(t)
			shared := t.TempDir()
			require.NoError(t, src.Add("Shared", shared, 's'))
			require.NoError(t, src.Add("Only", t.TempDir(), 'o'))

			out := filepath.Join(t.TempDir(), "export"+ext)
			require.NoError(t, src.Export(out))

			dst, _ := openEmpty(t)
			require.NoError(t, dst.Add("Mine", shared, 'n'))
			require.NoError(t, dst.Add("Taken", t.TempDir(), 'o'))

			added, err := dst.Import(out)
			require.NoError(t, err)
			assert.Equal(t, 1, added)
			require.Equal(t, 3, dst.Len())

			imported := dst.List()[2]
			assert.Equal(t, "Only", imported.Name)
			assert.Empty(t, imported.Shortcut, "conflicting shortcut is dropped")
		})
	}
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), fileName)
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))

	_, err := OpenAt(path, "")
	assert.Error(t, err)
}
