package dualpane

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "alpha"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "beta"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "alpha", "inside.txt"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "file.txt"), nil, 0644))
	return root
}

func TestNewOpensDirAndParent(t *testing.T) {
	root := setupTree(t)
	v := New(root)

	assert.Equal(t, root, v.Left.Dir)
	assert.Equal(t, filepath.Dir(root), v.Right.Dir)
	assert.Equal(t, Left, v.Focus)
	assert.True(t, v.Vertical)
	assert.InDelta(t, 0.5, v.Ratio, 1e-9)
}

func TestNavigationIsPerPane(t *testing.T) {
	root := setupTree(t)
	v := New(root)

	v.HandleKey("down", 10)
	v.HandleKey("enter", 10)
	assert.Equal(t, filepath.Join(root, "alpha"), v.Left.Dir)
	assert.Equal(t, filepath.Dir(root), v.Right.Dir, "unfocused pane must not move")

	v.HandleKey("backspace", 10)
	assert.Equal(t, root, v.Left.Dir)

	v.HandleKey("tab", 10)
	assert.Equal(t, Right, v.Focus)
	v.HandleKey("tab", 10)
	assert.Equal(t, Left, v.Focus)
}

func TestEnterIgnoresFiles(t *testing.T) {
	root := setupTree(t)
	p := NewPane(root)
	p.Selected = len(p.Listing) - 1
	p.Enter()
	assert.Equal(t, root, p.Dir)
}

func TestSync(t *testing.T) {
	root := setupTree(t)
	v := New(root)

	v.HandleKey("tab", 10)
	v.HandleKey("f5", 10)
	assert.Equal(t, v.Right.Dir, v.Left.Dir)
	assert.Equal(t, filepath.Dir(root), v.Left.Dir)
}

func TestLayoutToggleKeepsPanes(t *testing.T) {
	root := setupTree(t)
	v := New(root)
	v.Left.Selected = 2

	v.HandleKey("f6", 10)
	assert.False(t, v.Vertical)
	assert.Equal(t, 2, v.Left.Selected)
	assert.Equal(t, root, v.Left.Dir)
}

func TestSplitRatioClamped(t *testing.T) {
	v := &View{Ratio: 0.5, Left: &Pane{}, Right: &Pane{}}

	for i := 0; i < 20; i++ {
		v.HandleKey("+", 10)
	}
	assert.InDelta(t, 0.8, v.Ratio, 1e-9)

	for i := 0; i < 30; i++ {
		v.HandleKey("-", 10)
	}
	assert.InDelta(t, 0.2, v.Ratio, 1e-9)

	first, second := v.Sizes(100)
	assert.Equal(t, 20, first)
	assert.Equal(t, 80, second)
}

func TestMarksSkipParent(t *testing.T) {
	root := setupTree(t)
	p := NewPane(root)

	require.True(t, p.Listing[0].IsParent())
	p.ToggleMark()
	assert.Empty(t, p.Marked)

	p.MoveDown()
	p.ToggleMark()
	p.MoveDown()
	p.ToggleMark()
	assert.Equal(t, []string{filepath.Join(root, "alpha"), filepath.Join(root, "beta")}, p.MarkedPaths())

	p.ToggleMark()
	assert.Equal(t, []string{filepath.Join(root, "alpha")}, p.MarkedPaths())
}

func TestAdjustScroll(t *testing.T) {
	p := &Pane{Selected: 12}
	p.AdjustScroll(5)
	assert.Equal(t, 8, p.Offset)

	p.Selected = 3
	p.AdjustScroll(5)
	assert.Equal(t, 3, p.Offset)
}

func TestQuitKeys(t *testing.T) {
	v := &View{Left: &Pane{}, Right: &Pane{}}
	assert.True(t, v.HandleKey("esc", 10))
	assert.True(t, v.HandleKey("q", 10))
	assert.False(t, v.HandleKey("x", 10))
}
