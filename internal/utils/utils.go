package utils

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// GetFileIcon returns an emoji icon for a file based on its extension
func GetFileIcon(name string) string {
	ext := strings.ToLower(filepath.Ext(name))

	switch ext {
	case ".go":
		return "🐹"
	case ".js", ".ts", ".jsx", ".tsx":
		return "📜"
	case ".py":
		return "🐍"
	case ".rb":
		return "💎"
	case ".java":
		return "☕"
	case ".rs":
		return "🦀"
	case ".cpp", ".c", ".h":
		return "⚙️"
	case ".html", ".htm":
		return "🌐"
	case ".css", ".scss", ".sass":
		return "🎨"
	case ".json", ".yaml", ".yml", ".toml":
		return "📋"
	case ".md", ".markdown":
		return "📝"
	case ".txt", ".log":
		return "📄"
	case ".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico":
		return "🖼️"
	case ".mp4", ".avi", ".mov", ".mkv":
		return "🎬"
	case ".mp3", ".wav", ".flac", ".ogg":
		return "🎵"
	case ".zip", ".tar", ".gz", ".rar", ".7z":
		return "📦"
	case ".pdf":
		return "📕"
	case ".doc", ".docx":
		return "📘"
	case ".xls", ".xlsx":
		return "📊"
	case ".sh", ".bash", ".zsh":
		return "🖥️"
	case ".gitignore":
		return "🔀"
	case ".exe", ".so", ".dylib", ".bin":
		return "⚙️"
	default:
		return "📄"
	}
}

// FormatFileSize formats a size in bytes for the listing, e.g. "1.5 KiB"
func FormatFileSize(size int64) string {
	if size < 0 {
		return "-"
	}
	return humanize.IBytes(uint64(size))
}

// FormatFileSizeColored returns a color-styled file size string based on size ranges
func FormatFileSizeColored(size int64) string {
	sizeStr := FormatFileSize(size)

	const (
		KiB    = 1024
		MiB    = 1024 * KiB
		MiB100 = 100 * MiB
	)

	var style lipgloss.Style
	switch {
	case size < KiB:
		// < 1 KB: dim gray for tiny files
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	case size < MiB:
		// 1 KB - 1 MB: normal color for typical files
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	case size < MiB100:
		// 1 MB - 100 MB: yellow/orange for large files
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	default:
		// > 100 MB: red bold for very large files
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	}

	return style.Render(sizeStr)
}

// Truncate shortens s to at most width terminal cells, ending in "…"
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight fills s with spaces up to width terminal cells
func PadRight(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}

// HighlightMatches highlights the characters starting at the given byte
// offsets, as reported by fuzzy.Match.MatchedIndexes
func HighlightMatches(text string, matches []int) string {
	if len(matches) == 0 {
		return text
	}

	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("226")).
		Bold(true)

	matchMap := make(map[int]bool, len(matches))
	for _, idx := range matches {
		matchMap[idx] = true
	}

	var result strings.Builder
	for i, r := range text {
		if matchMap[i] {
			result.WriteString(highlightStyle.Render(string(r)))
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}
