// Package dualpane holds two independent directory browsers side by side.
package dualpane

import (
	"path/filepath"
	"sort"

	"github.com/LFroesch/fsnav/internal/fsentry"
)

// Pane is one directory browser with its own selection and scroll window
type Pane struct {
	Dir      string
	Listing  fsentry.Listing
	Selected int
	Marked   map[int]bool
	Offset   int
}

// NewPane loads dir into a fresh pane
func NewPane(dir string) *Pane {
	p := &Pane{}
	p.Load(dir)
	return p
}

// Load replaces the listing and resets selection, marks and scroll
func (p *Pane) Load(dir string) {
	p.Dir = filepath.Clean(dir)
	p.Listing = fsentry.Load(p.Dir)
	p.Selected = 0
	p.Marked = map[int]bool{}
	p.Offset = 0
}

// Current returns the highlighted entry
func (p *Pane) Current() (fsentry.Entry, bool) {
	if p.Selected < 0 || p.Selected >= len(p.Listing) {
		return fsentry.Entry{}, false
	}
	return p.Listing[p.Selected], true
}

// MoveUp moves the highlight one entry up
func (p *Pane) MoveUp() {
	if p.Selected > 0 {
		p.Selected--
	}
}

// MoveDown moves the highlight one entry down
func (p *Pane) MoveDown() {
	if p.Selected < len(p.Listing)-1 {
		p.Selected++
	}
}

// Enter descends into the highlighted directory when it is accessible
func (p *Pane) Enter() {
	e, ok := p.Current()
	if ok && e.IsDir && e.IsAccessible {
		p.Load(e.Path)
	}
}

// Up loads the parent directory
func (p *Pane) Up() {
	if parent := filepath.Dir(p.Dir); parent != p.Dir {
		p.Load(parent)
	}
}

// ToggleMark flips the mark on the highlighted entry; ".." is never marked
func (p *Pane) ToggleMark() {
	e, ok := p.Current()
	if !ok || e.IsParent() {
		return
	}
	if p.Marked[p.Selected] {
		delete(p.Marked, p.Selected)
	} else {
		p.Marked[p.Selected] = true
	}
}

// MarkedPaths returns the marked entries' paths in listing order
func (p *Pane) MarkedPaths() []string {
	indices := make([]int, 0, len(p.Marked))
	for i := range p.Marked {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return p.Listing.Paths(indices)
}

// AdjustScroll keeps the highlight inside a window of height rows
func (p *Pane) AdjustScroll(height int) {
	if height < 1 {
		height = 1
	}
	if p.Selected < p.Offset {
		p.Offset = p.Selected
	} else if p.Selected >= p.Offset+height {
		p.Offset = p.Selected - height + 1
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}
