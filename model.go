package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sahilm/fuzzy"

	"github.com/LFroesch/fsnav/internal/bookmarks"
	"github.com/LFroesch/fsnav/internal/config"
	"github.com/LFroesch/fsnav/internal/dualpane"
	"github.com/LFroesch/fsnav/internal/fsentry"
	"github.com/LFroesch/fsnav/internal/logger"
	"github.com/LFroesch/fsnav/internal/ownership"
	"github.com/LFroesch/fsnav/internal/pattern"
	"github.com/LFroesch/fsnav/internal/permissions"
	"github.com/LFroesch/fsnav/internal/preview"
	"github.com/LFroesch/fsnav/internal/search"
	"github.com/LFroesch/fsnav/internal/system"
)

// Layout constants
const (
	navigatorChrome = 5  // header, path line, two separators, status line
	minVisibleRows  = 1
	previewWidthPct = 60 // listing share of the width when the preview is open
	pageStep        = 10
)

// mode is the active interaction state. Each variant carries exactly the
// session it needs, so a session exists only while its mode is active.
type mode interface {
	title() string
}

type browseMode struct{}

type selectMode struct{}

type patternMode struct {
	input textinput.Model
}

type permissionMode struct {
	session *permissions.Session
}

type ownershipMode struct {
	session *ownership.Session
}

type searchMode struct {
	engine *search.Engine
	input  textinput.Model
}

type dualPaneMode struct {
	view *dualpane.View
}

type bookmarksMode struct {
	cursor    int
	filter    textinput.Model
	filtering bool
	rename    textinput.Model
	renaming  bool
	matches   fuzzy.Matches
}

func (*browseMode) title() string     { return "Browse" }
func (*selectMode) title() string     { return "Select" }
func (*patternMode) title() string    { return "Pattern" }
func (*permissionMode) title() string { return "Permissions" }
func (*ownershipMode) title() string  { return "Ownership" }
func (*searchMode) title() string     { return "Search" }
func (*dualPaneMode) title() string   { return "Dual Pane" }
func (*bookmarksMode) title() string  { return "Bookmarks" }

type model struct {
	dir      string
	listing  fsentry.Listing
	selected int
	marked   map[int]bool
	offset   int
	mode     mode

	width  int
	height int

	config       *config.Config
	keys         keyMap
	isPrivileged bool
	accounts     system.Accounts
	bookmarks    *bookmarks.Store

	// bookmarkTransfer overrides the export/import file
	bookmarkTransfer string

	showPreview    bool
	previewFocused bool
	preview        *preview.Preview

	statusMsg    string
	statusExpiry time.Time

	// spawnShell asks main to start a shell in dir once the program exits
	spawnShell bool
}

// newModel builds the navigator rooted at dir. isPrivileged is consulted
// once; store may be nil when the bookmark file could not be opened.
func newModel(dir string, cfg *config.Config, isPrivileged func() bool, accounts system.Accounts, store *bookmarks.Store) *model {
	if cfg == nil {
		cfg = config.Default()
	}
	m := &model{
		mode:         &browseMode{},
		config:       cfg,
		keys:         defaultKeyMap(),
		isPrivileged: isPrivileged != nil && isPrivileged(),
		accounts:     accounts,
		bookmarks:    store,
		showPreview:  cfg.PreviewOnStart,
	}

	if !m.isPrivileged {
		m.keys.Browse.Select.SetEnabled(false)
		m.keys.Browse.Pattern.SetEnabled(false)
		m.keys.Browse.Chmod.SetEnabled(false)
		m.keys.Browse.Chown.SetEnabled(false)
	}

	m.loadDir(dir)
	return m
}

// loadDir replaces the listing and resets selection, marks and scroll
func (m *model) loadDir(dir string) {
	m.dir = dir
	m.listing = fsentry.Load(dir)
	logger.Debug("load %s: %d entries", dir, len(m.listing))
	m.selected = 0
	m.marked = make(map[int]bool)
	m.offset = 0
	m.refreshPreview()
}

func (m *model) reload() {
	m.loadDir(m.dir)
}

func (m *model) visibleRows() int {
	rows := m.height - navigatorChrome
	if rows < minVisibleRows {
		return minVisibleRows
	}
	return rows
}

// adjustScroll keeps the highlighted row inside the window
func (m *model) adjustScroll() {
	rows := m.visibleRows()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+rows {
		m.offset = m.selected - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *model) moveTo(index int) {
	if len(m.listing) == 0 {
		m.selected = 0
		return
	}
	if index < 0 {
		index = 0
	}
	if index > len(m.listing)-1 {
		index = len(m.listing) - 1
	}
	m.selected = index
	m.adjustScroll()
	m.refreshPreview()
}

func (m *model) current() (fsentry.Entry, bool) {
	if m.selected < 0 || m.selected >= len(m.listing) {
		return fsentry.Entry{}, false
	}
	return m.listing[m.selected], true
}

func (m *model) enterHighlighted() {
	entry, ok := m.current()
	if !ok || !entry.IsDir || !entry.IsAccessible {
		return
	}
	m.loadDir(entry.Path)
}

func (m *model) toggleMark() {
	entry, ok := m.current()
	if !ok || entry.IsParent() {
		return
	}
	if m.marked[m.selected] {
		delete(m.marked, m.selected)
	} else {
		m.marked[m.selected] = true
	}
}

func (m *model) markedIndices() []int {
	indices := make([]int, 0, len(m.marked))
	for i := range m.marked {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}

// targets returns the marked paths, or the highlighted entry when nothing is
// marked. The parent entry is never a target.
func (m *model) targets() []string {
	if len(m.marked) > 0 {
		return m.listing.Paths(m.markedIndices())
	}
	return m.listing.Paths([]int{m.selected})
}

// selectByPattern replaces the marks with every entry matching pat
func (m *model) selectByPattern(pat string) int {
	m.marked = make(map[int]bool)
	if pat == "" {
		return 0
	}
	matcher := pattern.Compile(pat)
	for i, entry := range m.listing {
		if !entry.IsParent() && matcher.Match(entry.Name) {
			m.marked[i] = true
		}
	}
	return len(m.marked)
}

func (m *model) refreshPreview() {
	if !m.showPreview {
		m.preview = nil
		return
	}
	entry, ok := m.current()
	if !ok {
		m.preview = nil
		return
	}
	m.preview = preview.Build(entry.Path, m.config.PreviewLines)
}

func (m *model) togglePreview() {
	m.showPreview = !m.showPreview
	m.previewFocused = false
	m.refreshPreview()
}

func (m *model) setStatus(format string, args ...any) {
	m.statusMsg = fmt.Sprintf(format, args...)
	m.statusExpiry = time.Now().Add(time.Duration(m.config.StatusSeconds) * time.Second)
}

func (m *model) status() string {
	if m.statusMsg == "" || time.Now().After(m.statusExpiry) {
		return ""
	}
	return m.statusMsg
}

// leaveModal drops the active session and brings the navigator up to date
func (m *model) leaveModal() {
	m.mode = &browseMode{}
	m.reload()
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40
	ti.Focus()
	return ti
}
