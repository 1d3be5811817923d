// Package preview builds the read-only summary shown next to the listing.
package preview

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/LFroesch/fsnav/internal/fsentry"
)

const (
	maxPreviewSize = 10 * 1024 * 1024 // 10MiB
	sniffSize      = 512
	hexDumpSize    = 256
	hexRowWidth    = 16
	maxDirEntries  = 100
)

// Content is one of Text, Binary, Image, Directory, Error or Empty
type Content interface {
	isContent()
}

// Text holds the first lines of a text file
type Text struct{ Lines []string }

// Binary holds the first bytes of a non-text file
type Binary struct{ Data []byte }

// Image holds a placeholder for picture formats
type Image struct {
	Format string
	Art    string
}

// Directory holds the names of a directory's children
type Directory struct{ Entries []string }

// Error explains why no content could be shown
type Error struct{ Message string }

// Empty is a zero-length file
type Empty struct{}

func (Text) isContent()      {}
func (Binary) isContent()    {}
func (Image) isContent()     {}
func (Directory) isContent() {}
func (Error) isContent()     {}
func (Empty) isContent()     {}

// Info is the metadata header of a preview
type Info struct {
	Size        int64
	Modified    time.Time
	Permissions os.FileMode
	MIME        string
	LineCount   int
}

// Preview is a built preview plus its scroll position
type Preview struct {
	Path    string
	Content Content
	Info    Info
	Offset  int
}

// Build reads at most maxLines lines (or entries) of path. A path that
// cannot be stat'ed yields Error content.
func Build(path string, maxLines int) *Preview {
	info, err := os.Stat(path)
	if err != nil {
		return &Preview{Path: path, Content: Error{Message: fmt.Sprintf("Cannot read %s: %v", filepath.Base(path), err)}}
	}

	p := &Preview{
		Path: path,
		Info: Info{
			Size:        info.Size(),
			Modified:    info.ModTime(),
			Permissions: info.Mode().Perm(),
			MIME:        DetectMIME(path, info.IsDir()),
		},
	}

	if info.IsDir() {
		p.Content = readDirectory(path, maxDirEntries)
	} else {
		p.Content = readFile(path, p.Info.MIME, info.Size(), maxLines)
	}
	if t, ok := p.Content.(Text); ok {
		p.Info.LineCount = len(t.Lines)
	}
	return p
}

func readFile(path, mime string, size int64, maxLines int) Content {
	if size > maxPreviewSize {
		return Error{Message: "File too large to preview"}
	}
	if size == 0 {
		return Empty{}
	}

	if isTextMIME(mime) || looksLikeText(path) {
		return readText(path, maxLines)
	}
	if strings.HasPrefix(mime, "image/") {
		return imageContent(path)
	}
	return readBinary(path)
}

// looksLikeText sniffs the first bytes for NUL and control characters
func looksLikeText(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, sniffSize)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return false
	}
	for _, b := range buf[:n] {
		if b == 0 || (b < 0x20 && b != '\t' && b != '\n' && b != '\r') {
			return false
		}
	}
	return true
}

func readText(path string, maxLines int) Content {
	f, err := os.Open(path)
	if err != nil {
		return Error{Message: err.Error()}
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxPreviewSize)
	for len(lines) < maxLines && scanner.Scan() {
		line := scanner.Text()
		if !utf8.ValidString(line) {
			return readBinary(path)
		}
		lines = append(lines, strings.ReplaceAll(line, "\t", "    "))
	}
	if err := scanner.Err(); err != nil {
		return Error{Message: err.Error()}
	}
	return Text{Lines: lines}
}

func readBinary(path string) Content {
	f, err := os.Open(path)
	if err != nil {
		return Error{Message: err.Error()}
	}
	defer f.Close()

	buf := make([]byte, hexDumpSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return Error{Message: err.Error()}
	}
	return Binary{Data: buf[:n]}
}

const imageArt = `┌───────────────┐
│   🖼️ IMAGE    │
│               │
│   [Preview    │
│    not yet    │
│   available]  │
│               │
└───────────────┘`

const svgArt = `┌───────────────┐
│   📐 SVG      │
│               │
│  <Vector>     │
│   Graphics    │
│               │
└───────────────┘`

func imageContent(path string) Content {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	art := imageArt
	if format == "svg" {
		art = svgArt
	}
	return Image{Format: format, Art: art}
}

func readDirectory(path string, maxEntries int) Content {
	entries, err := os.ReadDir(path)
	if err != nil {
		return Error{Message: err.Error()}
	}

	var names []string
	for i, de := range entries {
		if i == maxEntries {
			names = append(names, "...")
			break
		}
		icon := "📄"
		if info, err := os.Stat(filepath.Join(path, de.Name())); err == nil && info.IsDir() {
			icon = "📁"
		}
		names = append(names, icon+" "+de.Name())
	}
	if len(names) == 0 {
		names = []string{"(empty directory)"}
	}
	return Directory{Entries: names}
}

// Lines renders the content as display lines
func (p *Preview) Lines() []string {
	switch c := p.Content.(type) {
	case Text:
		return c.Lines
	case Binary:
		return HexDump(c.Data)
	case Image:
		return strings.Split(c.Art, "\n")
	case Directory:
		return c.Entries
	case Error:
		return []string{"⚠️  " + c.Message}
	default:
		return []string{"(empty file)"}
	}
}

// ScrollUp moves the window up by n lines
func (p *Preview) ScrollUp(n int) {
	p.Offset -= n
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ScrollDown moves the window down by n lines, stopping at the last line
func (p *Preview) ScrollDown(n int) {
	maxOffset := 0
	switch c := p.Content.(type) {
	case Text:
		maxOffset = len(c.Lines) - 1
	case Directory:
		maxOffset = len(c.Entries) - 1
	}
	if maxOffset < 0 {
		maxOffset = 0
	}
	p.Offset += n
	if p.Offset > maxOffset {
		p.Offset = maxOffset
	}
}

// Header summarizes the metadata in one line
func (p *Preview) Header() string {
	if p.Info.MIME == "" {
		return ""
	}
	return fmt.Sprintf("%s  %s  %s", FormatSize(p.Info.Size), fsentry.Symbolic(uint32(p.Info.Permissions)), p.Info.MIME)
}

// HexDump renders rows of 16 bytes as offset, hex and printable ASCII
func HexDump(data []byte) []string {
	var rows []string
	for off := 0; off < len(data); off += hexRowWidth {
		end := off + hexRowWidth
		if end > len(data) {
			end = len(data)
		}
		chunk := data[off:end]

		var hex, ascii strings.Builder
		for i := 0; i < hexRowWidth; i++ {
			if i < len(chunk) {
				fmt.Fprintf(&hex, "%02x ", chunk[i])
			} else {
				hex.WriteString("   ")
			}
		}
		for _, b := range chunk {
			if b >= 0x20 && b < 0x7f {
				ascii.WriteByte(b)
			} else {
				ascii.WriteByte('.')
			}
		}
		rows = append(rows, fmt.Sprintf("%08x  %s |%s|", off, hex.String(), ascii.String()))
	}
	return rows
}

// FormatSize renders bytes with two decimals above 1 KB: "512 B", "1.50 KB"
func FormatSize(bytes int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d %s", bytes, units[0])
	}
	return fmt.Sprintf("%.2f %s", size, units[unit])
}
