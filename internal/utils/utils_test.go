package utils

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestGetFileIcon(t *testing.T) {
	assert.Equal(t, "🐹", GetFileIcon("main.go"))
	assert.Equal(t, "🐍", GetFileIcon("SCRIPT.PY"))
	assert.Equal(t, "📦", GetFileIcon("backup.tar"))
	assert.Equal(t, "📄", GetFileIcon("README"))
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "512 B", FormatFileSize(512))
	assert.Equal(t, "1.5 KiB", FormatFileSize(1536))
	assert.Equal(t, "1.0 MiB", FormatFileSize(1024*1024))
	assert.Equal(t, "-", FormatFileSize(-1))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "", Truncate("abc", 0))

	// wide runes count as two cells
	got := Truncate("日本語テキスト", 7)
	assert.LessOrEqual(t, runewidth.StringWidth(got), 7)
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, 5, runewidth.StringWidth(PadRight("abcdefgh", 5)))
}

func TestHighlightMatchesUsesByteOffsets(t *testing.T) {
	assert.Equal(t, "plain", HighlightMatches("plain", nil))

	style := lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	// "é" is two bytes, so "x" starts at byte 2
	got := HighlightMatches("éx", []int{2})
	assert.Equal(t, "é"+style.Render("x"), got)
}
