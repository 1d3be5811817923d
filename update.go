package main

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/LFroesch/fsnav/internal/config"
	"github.com/LFroesch/fsnav/internal/dualpane"
	"github.com/LFroesch/fsnav/internal/ownership"
	"github.com/LFroesch/fsnav/internal/permissions"
	"github.com/LFroesch/fsnav/internal/search"
)

const (
	paneHeaderRows   = 1
	transferFile     = "bookmarks-export.yaml"
	bookmarkAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

func (m *model) Init() tea.Cmd {
	return tea.SetWindowTitle("📂 fsnav")
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.adjustScroll()
		if md, ok := m.mode.(*dualPaneMode); ok {
			md.view.Left.AdjustScroll(m.paneRows(md.view, dualpane.Left))
			md.view.Right.AdjustScroll(m.paneRows(md.view, dualpane.Right))
		}
		return m, nil

	case tea.KeyMsg:
		// Status messages only survive until the next key press
		m.statusMsg = ""

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch md := m.mode.(type) {
		case *browseMode:
			return m.updateBrowse(msg)
		case *selectMode:
			return m.updateSelect(msg)
		case *patternMode:
			return m.updatePattern(md, msg)
		case *permissionMode:
			return m.updatePermissions(md, msg)
		case *ownershipMode:
			return m.updateOwnership(md, msg)
		case *searchMode:
			return m.updateSearch(md, msg)
		case *dualPaneMode:
			return m.updateDualPane(md, msg)
		case *bookmarksMode:
			return m.updateBookmarks(md, msg)
		}
	}
	return m, nil
}

func (m *model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.Browse

	if m.showPreview && m.previewFocused {
		if m.preview == nil {
			m.previewFocused = false
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Up):
			m.preview.ScrollUp(1)
		case key.Matches(msg, keys.Down):
			m.preview.ScrollDown(1)
		case key.Matches(msg, keys.PageUp):
			m.preview.ScrollUp(pageStep)
		case key.Matches(msg, keys.PageDown):
			m.preview.ScrollDown(pageStep)
		case key.Matches(msg, keys.Focus), msg.String() == "esc":
			m.previewFocused = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Up):
		m.moveTo(m.selected - 1)
	case key.Matches(msg, keys.Down):
		m.moveTo(m.selected + 1)
	case key.Matches(msg, keys.PageUp):
		m.moveTo(m.selected - m.visibleRows())
	case key.Matches(msg, keys.PageDown):
		m.moveTo(m.selected + m.visibleRows())
	case key.Matches(msg, keys.Home):
		m.moveTo(0)
	case key.Matches(msg, keys.End):
		m.moveTo(len(m.listing) - 1)
	case key.Matches(msg, keys.Enter):
		m.enterHighlighted()
	case key.Matches(msg, keys.Back):
		if parent := filepath.Dir(m.dir); parent != m.dir {
			m.loadDir(parent)
		}
	case key.Matches(msg, keys.Search):
		m.mode = &searchMode{engine: search.New(), input: newInput("name, regex or text")}
		return m, textinput.Blink
	case key.Matches(msg, keys.Bookmarks):
		m.openBookmarks()
	case key.Matches(msg, keys.Preview):
		m.togglePreview()
	case key.Matches(msg, keys.Focus):
		if m.showPreview {
			m.previewFocused = true
		}
	case key.Matches(msg, keys.DualPane):
		view := dualpane.New(m.dir)
		view.Vertical = m.config.VerticalSplit
		view.Ratio = m.config.SplitRatio
		m.mode = &dualPaneMode{view: view}
	case key.Matches(msg, keys.CopyPath):
		if entry, ok := m.current(); ok {
			m.copyPath(entry.Path)
		}
	case key.Matches(msg, keys.Open):
		if entry, ok := m.current(); ok && !entry.IsParent() {
			m.openFile(entry.Path)
		}
	case key.Matches(msg, keys.Shell):
		m.spawnShell = true
		return m, tea.Quit
	case key.Matches(msg, keys.Select):
		m.mode = &selectMode{}
	case key.Matches(msg, keys.Pattern):
		m.mode = &patternMode{input: newInput("*.log, ^tmp\\d+, or text")}
		return m, textinput.Blink
	case key.Matches(msg, keys.Chmod):
		m.openChmod()
	case key.Matches(msg, keys.Chown):
		m.openChown()
	case key.Matches(msg, keys.Quit):
		if m.showPreview {
			m.togglePreview()
			return m, nil
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) updateSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.Select
	switch {
	case key.Matches(msg, keys.Up):
		m.moveTo(m.selected - 1)
	case key.Matches(msg, keys.Down):
		m.moveTo(m.selected + 1)
	case key.Matches(msg, keys.Toggle):
		m.toggleMark()
	case key.Matches(msg, keys.Confirm):
		if len(m.marked) > 0 {
			m.setStatus("%d items selected", len(m.marked))
		}
	case key.Matches(msg, keys.Chmod):
		m.openChmod()
	case key.Matches(msg, keys.Chown):
		m.openChown()
	case key.Matches(msg, keys.Cancel):
		m.mode = &browseMode{}
		m.marked = make(map[int]bool)
	}
	return m, nil
}

func (m *model) updatePattern(md *patternMode, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if pat := md.input.Value(); pat != "" {
			n := m.selectByPattern(pat)
			m.setStatus("Selected %d items matching '%s'", n, pat)
		}
		m.mode = &selectMode{}
		return m, nil
	case "esc":
		m.mode = &browseMode{}
		return m, nil
	}

	var cmd tea.Cmd
	md.input, cmd = md.input.Update(msg)
	return m, cmd
}

func (m *model) openChmod() {
	if !m.isPrivileged {
		m.setStatus("⚠️  Chmod interface requires root privileges")
		return
	}
	targets := m.targets()
	if len(targets) == 0 {
		m.setStatus("No items selected for chmod")
		return
	}
	m.mode = &permissionMode{session: permissions.New(targets)}
}

func (m *model) openChown() {
	targets := m.targets()
	if m.isPrivileged && len(targets) == 0 {
		m.setStatus("No items selected for chown")
		return
	}
	session, err := ownership.New(targets, func() bool { return m.isPrivileged }, m.accounts)
	if errors.Is(err, ownership.ErrNotPrivileged) {
		m.setStatus("⚠️  Chown interface requires root privileges")
		return
	}
	if err != nil {
		m.setStatus("Cannot open chown interface: %v", err)
		return
	}
	m.mode = &ownershipMode{session: session}
}

func (m *model) updatePermissions(md *permissionMode, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !md.session.HandleKey(msg.String()) {
		return m, nil
	}
	res := md.session.LastResult
	m.leaveModal()
	if res != nil {
		m.setStatus("Permissions updated on %s items", res.Summary())
	}
	return m, nil
}

func (m *model) updateOwnership(md *ownershipMode, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !md.session.HandleKey(msg.String()) {
		return m, nil
	}
	res := md.session.LastResult
	m.leaveModal()
	if res != nil {
		m.setStatus("Ownership updated on %s items", res.Summary())
	}
	return m, nil
}

func (m *model) updateSearch(md *searchMode, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.Search
	engine := md.engine

	switch {
	case key.Matches(msg, keys.Run):
		engine.Query = md.input.Value()
		engine.Execute(m.listing)
		if len(engine.Results) == 0 && engine.Query != "" {
			m.setStatus("No matches for '%s'", engine.Query)
		}
		m.jumpToResult(engine)
		return m, nil
	case key.Matches(msg, keys.Next):
		engine.Next()
		m.jumpToResult(engine)
		return m, nil
	case key.Matches(msg, keys.Previous):
		engine.Previous()
		m.jumpToResult(engine)
		return m, nil
	case key.Matches(msg, keys.Regex):
		engine.ToggleRegex()
		return m, nil
	case key.Matches(msg, keys.Case):
		engine.ToggleCase()
		return m, nil
	case key.Matches(msg, keys.Contents):
		engine.ToggleContents()
		return m, nil
	case key.Matches(msg, keys.Cancel):
		// keep the highlight on whatever the search found
		var path string
		if entry, ok := m.current(); ok {
			path = entry.Path
		}
		m.leaveModal()
		if i := m.listing.IndexOf(path); i >= 0 {
			m.moveTo(i)
		}
		return m, nil
	}

	var cmd tea.Cmd
	md.input, cmd = md.input.Update(msg)
	return m, cmd
}

// jumpToResult highlights the listing entry of the current search hit
func (m *model) jumpToResult(engine *search.Engine) {
	res, ok := engine.Current()
	if !ok {
		return
	}
	if i := m.listing.IndexOf(res.Entry.Path); i >= 0 {
		m.moveTo(i)
	}
}

func (m *model) paneRows(view *dualpane.View, side dualpane.Side) int {
	avail := m.height - navigatorChrome
	if !view.Vertical {
		first, second := view.Sizes(avail)
		avail = first
		if side == dualpane.Right {
			avail = second
		}
	}
	rows := avail - paneHeaderRows
	if rows < minVisibleRows {
		return minVisibleRows
	}
	return rows
}

func (m *model) updateDualPane(md *dualPaneMode, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if md.view.HandleKey(msg.String(), m.paneRows(md.view, md.view.Focus)) {
		m.leaveModal()
	}
	return m, nil
}

func (m *model) openBookmarks() {
	if m.bookmarks == nil {
		m.setStatus("Bookmarks are unavailable")
		return
	}
	filter := newInput("filter")
	filter.Blur()
	rename := newInput("name")
	rename.Blur()
	m.mode = &bookmarksMode{filter: filter, rename: rename}
}

// visible maps rows of the bookmark list to store indices
func (md *bookmarksMode) visible(total int) []int {
	if md.filter.Value() == "" {
		indices := make([]int, total)
		for i := range indices {
			indices[i] = i
		}
		return indices
	}
	indices := make([]int, len(md.matches))
	for i, match := range md.matches {
		indices[i] = match.Index
	}
	return indices
}

func (m *model) refilterBookmarks(md *bookmarksMode) {
	md.matches = nil
	if query := md.filter.Value(); query != "" {
		list := m.bookmarks.List()
		names := make([]string, len(list))
		for i, b := range list {
			names[i] = b.Name
		}
		md.matches = fuzzy.Find(query, names)
	}
	if rows := len(md.visible(m.bookmarks.Len())); md.cursor >= rows {
		md.cursor = rows - 1
	}
	if md.cursor < 0 {
		md.cursor = 0
	}
}

func (m *model) highlightedBookmark(md *bookmarksMode) (int, bool) {
	rows := md.visible(m.bookmarks.Len())
	if md.cursor < 0 || md.cursor >= len(rows) {
		return 0, false
	}
	return rows[md.cursor], true
}

// shortcutKey extracts the bookmark key of a ctrl+<letter> or alt+<key>
// press. Terminals have no ctrl+<digit>, so digits only arrive with alt.
func shortcutKey(msg tea.KeyMsg) (rune, bool) {
	if msg.Alt && msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		r := msg.Runes[0]
		return r, strings.ContainsRune(bookmarkAlphabet, r)
	}
	rest, ok := strings.CutPrefix(msg.String(), "ctrl+")
	if !ok || len(rest) != 1 {
		return 0, false
	}
	r := rune(rest[0])
	return r, r >= 'a' && r <= 'z'
}

func (m *model) updateBookmarks(md *bookmarksMode, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if md.renaming {
		switch msg.String() {
		case "enter":
			if idx, ok := m.highlightedBookmark(md); ok {
				if err := m.bookmarks.Rename(idx, md.rename.Value()); err != nil {
					m.setStatus("Failed to rename bookmark: %v", err)
				} else {
					m.setStatus("Bookmark renamed!")
				}
			}
			md.renaming = false
			md.rename.Blur()
			m.refilterBookmarks(md)
		case "esc":
			md.renaming = false
			md.rename.Blur()
		default:
			md.rename, cmd = md.rename.Update(msg)
		}
		return m, cmd
	}

	if md.filtering {
		switch msg.String() {
		case "enter":
			md.filtering = false
			md.filter.Blur()
		case "esc":
			md.filtering = false
			md.filter.Blur()
			md.filter.SetValue("")
			m.refilterBookmarks(md)
		default:
			md.filter, cmd = md.filter.Update(msg)
			md.cursor = 0
			m.refilterBookmarks(md)
		}
		return m, cmd
	}

	if r, ok := shortcutKey(msg); ok {
		if b, found := m.bookmarks.GetByShortcut(r); found {
			m.mode = &browseMode{}
			m.loadDir(b.Path)
		}
		return m, nil
	}

	keys := m.keys.Bookmarks
	rows := len(md.visible(m.bookmarks.Len()))

	switch {
	case key.Matches(msg, keys.Up):
		if md.cursor > 0 {
			md.cursor--
		}
	case key.Matches(msg, keys.Down):
		if md.cursor < rows-1 {
			md.cursor++
		}
	case key.Matches(msg, keys.Jump):
		if idx, ok := m.highlightedBookmark(md); ok {
			if b, found := m.bookmarks.GetByIndex(idx); found {
				m.mode = &browseMode{}
				m.loadDir(b.Path)
			}
		}
	case key.Matches(msg, keys.Add):
		if _, err := m.bookmarks.AddWithFreeShortcut(filepath.Base(m.dir), m.dir); err != nil {
			m.setStatus("Failed to add bookmark: %v", err)
		} else {
			m.setStatus("Bookmark added!")
		}
		m.refilterBookmarks(md)
	case key.Matches(msg, keys.Delete):
		if idx, ok := m.highlightedBookmark(md); ok {
			if err := m.bookmarks.Remove(idx); err != nil {
				m.setStatus("Failed to delete bookmark: %v", err)
			} else {
				m.setStatus("Bookmark deleted!")
			}
			m.refilterBookmarks(md)
		}
	case key.Matches(msg, keys.Rename):
		if idx, ok := m.highlightedBookmark(md); ok {
			md.renaming = true
			md.rename.SetValue(m.bookmarks.List()[idx].Name)
			md.rename.CursorEnd()
			return m, md.rename.Focus()
		}
	case key.Matches(msg, keys.Filter):
		md.filtering = true
		return m, md.filter.Focus()
	case key.Matches(msg, keys.Frequency):
		m.bookmarks.SortByFrequency()
		m.refilterBookmarks(md)
	case key.Matches(msg, keys.Name):
		m.bookmarks.SortByName()
		m.refilterBookmarks(md)
	case key.Matches(msg, keys.Export):
		path := m.transferPath()
		if err := m.bookmarks.Export(path); err != nil {
			m.setStatus("Failed to export bookmarks: %v", err)
		} else {
			m.setStatus("Exported %d bookmarks to %s", m.bookmarks.Len(), path)
		}
	case key.Matches(msg, keys.Import):
		n, err := m.bookmarks.Import(m.transferPath())
		if err != nil {
			m.setStatus("Failed to import bookmarks: %v", err)
		} else {
			m.setStatus("Imported %d bookmarks", n)
		}
		m.refilterBookmarks(md)
	case key.Matches(msg, keys.Cancel):
		m.leaveModal()
	}
	return m, nil
}

// transferPath is where bookmarks are exported to and imported from
func (m *model) transferPath() string {
	if m.bookmarkTransfer != "" {
		return m.bookmarkTransfer
	}
	dir, err := config.Dir()
	if err != nil {
		return transferFile
	}
	return filepath.Join(dir, transferFile)
}
