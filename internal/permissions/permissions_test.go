package permissions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LFroesch/fsnav/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.Disable()
}

func press(s *Session, keys ...string) bool {
	done := false
	for _, k := range keys {
		done = s.HandleKey(k)
	}
	return done
}

func TestNewReadsFirstTargetMode(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "run.sh")
	require.NoError(t, os.WriteFile(file, nil, 0600))
	require.NoError(t, os.Chmod(file, 0750))

	s := New([]string{file})
	assert.Equal(t, [3]uint8{7, 5, 0}, s.Digits)
	assert.True(t, s.Preview)
	assert.Equal(t, DigitView, s.View)
}

func TestNewDefaultsWhenUnreadable(t *testing.T) {
	s := New([]string{filepath.Join(t.TempDir(), "missing")})
	assert.Equal(t, [3]uint8{6, 4, 4}, s.Digits)

	assert.Equal(t, [3]uint8{6, 4, 4}, New(nil).Digits)
}

func TestCursorAndDigitsClamp(t *testing.T) {
	s := &Session{Digits: [3]uint8{6, 4, 4}}

	press(s, "left", "left", "left")
	assert.Equal(t, 0, s.Cursor)

	press(s, "up", "up", "up", "up")
	assert.Equal(t, uint8(7), s.Digits[0])

	press(s, "right", "right", "right", "right", "right")
	assert.Equal(t, 2, s.Cursor)

	for i := 0; i < 10; i++ {
		press(s, "down")
	}
	assert.Equal(t, uint8(0), s.Digits[2])
	assert.Equal(t, [3]uint8{7, 4, 0}, s.Digits)
}

func TestRenderings(t *testing.T) {
	s := &Session{Digits: [3]uint8{7, 5, 5}}
	assert.Equal(t, uint32(493), s.Mode())
	assert.Equal(t, "rwxr-xr-x", s.Symbolic())
	assert.Equal(t, "755", s.Octal())
	assert.Equal(t, "111 101 101", s.Binary())

	s.Digits = [3]uint8{6, 4, 4}
	assert.Equal(t, "rw-r--r--", s.Symbolic())
	assert.Equal(t, uint32(420), s.Mode())
}

func TestExplanations(t *testing.T) {
	s := &Session{Digits: [3]uint8{7, 5, 0}}
	assert.Equal(t, []string{
		"Owner can: read, write, execute/enter",
		"Group members can: read, execute/enter",
		"Everyone else can: nothing (no access)",
		"Custom permissions set",
	}, s.Explanations())
}

func TestSecurityRemark(t *testing.T) {
	tests := []struct {
		digits [3]uint8
		want   string
	}{
		{[3]uint8{7, 7, 7}, "⚠️ VERY INSECURE - Anyone can do anything!"},
		{[3]uint8{6, 0, 0}, "✓ Secure - Only you have access"},
		{[3]uint8{0, 0, 0}, "⚠️ Locked - Nobody can access (unusual)"},
		{[3]uint8{7, 7, 6}, "⚠️ World-writable - Consider restricting"},
		{[3]uint8{7, 5, 4}, "Custom permissions set"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SecurityRemark(tt.digits), octal(tt.digits))
	}
}

func TestTemplateNavigation(t *testing.T) {
	s := &Session{Digits: [3]uint8{6, 4, 4}}

	assert.False(t, press(s, "t"))
	assert.Equal(t, TemplateView, s.View)
	assert.Equal(t, 0, s.TemplateIndex)

	press(s, "up")
	assert.Equal(t, 0, s.TemplateIndex)

	for i := 0; i < 20; i++ {
		press(s, "down")
	}
	assert.Equal(t, 9, s.TemplateIndex)
	assert.Equal(t, "500", Templates[s.TemplateIndex].Octal())

	assert.False(t, press(s, "T"))
	assert.Equal(t, DigitView, s.View)
	assert.Equal(t, [3]uint8{6, 4, 4}, s.Digits, "leaving templates must not apply")
}

func TestTemplateOrder(t *testing.T) {
	var got []string
	for _, tpl := range Templates {
		got = append(got, tpl.Octal())
	}
	assert.Equal(t, []string{"755", "644", "600", "700", "775", "664", "666", "777", "400", "500"}, got)
}

func TestEnterAppliesToAllTargets(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	require.NoError(t, os.WriteFile(a, nil, 0644))
	require.NoError(t, os.Mkdir(b, 0755))

	s := New([]string{a, filepath.Join(dir, "vanished"), b})
	s.Digits = [3]uint8{7, 0, 0}
	require.True(t, press(s, "enter"))

	for _, p := range []string{a, b} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o700), info.Mode().Perm(), p)
	}

	info, _ := os.Stat(b)
	assert.True(t, info.IsDir())

	require.NotNil(t, s.LastResult)
	assert.Equal(t, 2, s.LastResult.Succeeded)
	assert.Len(t, s.History(), 2)
}

func TestTemplateEnterApplies(t *testing.T) {
	file := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	s := New([]string{file})
	press(s, "t", "down", "down")
	require.True(t, press(s, "enter"))

	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestEscapeDoesNotApply(t *testing.T) {
	file := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	require.NoError(t, os.Chmod(file, 0644))

	s := New([]string{file})
	press(s, "up")
	require.True(t, press(s, "esc"))
	assert.Nil(t, s.LastResult)

	s = New([]string{file})
	press(s, "t")
	require.True(t, press(s, "esc"))

	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestPreviewToggle(t *testing.T) {
	s := &Session{Preview: true}
	press(s, "p")
	assert.False(t, s.Preview)
	press(s, "P")
	assert.True(t, s.Preview)
}
