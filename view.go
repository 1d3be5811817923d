package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/LFroesch/fsnav/internal/dualpane"
	"github.com/LFroesch/fsnav/internal/fsentry"
	"github.com/LFroesch/fsnav/internal/ownership"
	"github.com/LFroesch/fsnav/internal/permissions"
	"github.com/LFroesch/fsnav/internal/preview"
	"github.com/LFroesch/fsnav/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)
	pathStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("105"))
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	selectedStyle  = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Bold(true)
	markedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	dirStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	deniedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	hitStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	focusBorder    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("99"))
	blurBorder     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238"))
)

func (m *model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var body string
	switch md := m.mode.(type) {
	case *permissionMode:
		body = m.renderPermissions(md.session)
	case *ownershipMode:
		body = m.renderOwnership(md.session)
	case *dualPaneMode:
		body = m.renderDualPane(md.view)
	case *bookmarksMode:
		body = m.renderBookmarks(md)
	default:
		body = m.renderNavigator()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}

func (m *model) renderHeader() string {
	title := fmt.Sprintf("📂 fsnav - %s", m.mode.title())
	if m.isPrivileged {
		title += "  [root]"
	}
	return titleStyle.Width(m.width).Render(utils.Truncate(title, m.width-2))
}

func (m *model) separator(width int) string {
	if width < 0 {
		width = 0
	}
	return separatorStyle.Render(strings.Repeat("─", width))
}

// renderNavigator is the path line, the listing (plus preview) and the
// bottom separator
func (m *model) renderNavigator() string {
	info := fmt.Sprintf("%s  (%d items", m.dir, len(m.listing))
	if len(m.marked) > 0 {
		info += fmt.Sprintf(", %d marked", len(m.marked))
	}
	info += ")"

	rows := m.visibleRows()
	listWidth := m.width
	if m.showPreview {
		listWidth = m.width * previewWidthPct / 100
	}

	list := lipgloss.NewStyle().Width(listWidth).Height(rows).Render(m.renderListing(listWidth, rows))
	if m.showPreview {
		pv := lipgloss.NewStyle().Width(m.width - listWidth).Height(rows).Render(m.renderPreview(m.width-listWidth-1, rows))
		list = lipgloss.JoinHorizontal(lipgloss.Top, list, pv)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		pathStyle.Render(utils.Truncate(info, m.width)),
		m.separator(m.width),
		list,
		m.separator(m.width),
	)
}

func (m *model) searchHits() map[string]bool {
	md, ok := m.mode.(*searchMode)
	if !ok {
		return nil
	}
	hits := make(map[string]bool, len(md.engine.Results))
	for _, r := range md.engine.Results {
		hits[r.Entry.Path] = true
	}
	return hits
}

func (m *model) renderListing(width, rows int) string {
	if len(m.listing) == 0 {
		return dimStyle.Render("  (empty)")
	}

	hits := m.searchHits()
	end := m.offset + rows
	if end > len(m.listing) {
		end = len(m.listing)
	}

	var b strings.Builder
	for i := m.offset; i < end; i++ {
		entry := m.listing[i]
		line := m.formatEntry(entry, width-2)

		switch {
		case i == m.selected:
			line = selectedStyle.Render(utils.PadRight("▶ "+line, width))
		case m.marked[i]:
			line = markedStyle.Render("✓ " + line)
		case hits[entry.Path]:
			line = hitStyle.Render("• " + line)
		case !entry.IsAccessible:
			line = deniedStyle.Render("  " + line)
		case entry.IsDir:
			line = dirStyle.Render("  " + line)
		default:
			line = "  " + line
		}

		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// formatEntry lays out name, permissions, owner and size in width cells
func (m *model) formatEntry(entry fsentry.Entry, width int) string {
	if entry.IsParent() || !entry.IsAccessible {
		return utils.Truncate(entry.DisplayName(), width)
	}

	meta := entry.PermissionString()
	if m.isPrivileged {
		meta += "  " + entry.OwnershipString()
	}
	if m.config.ShowSizes && !entry.IsDir {
		meta += "  " + fmt.Sprintf("%9s", utils.FormatFileSize(entry.Size))
	}

	nameWidth := width - len(meta) - 2
	if nameWidth < 8 {
		return utils.Truncate(entry.DisplayName(), width)
	}
	return utils.PadRight(entry.DisplayName(), nameWidth) + "  " + meta
}

func (m *model) renderPreview(width, rows int) string {
	if width < 4 {
		return ""
	}
	style := blurBorder
	if m.previewFocused {
		style = focusBorder
	}
	inner := width - 2
	innerRows := rows - 2
	if innerRows < 1 {
		innerRows = 1
	}

	p := m.preview
	if p == nil {
		return style.Width(inner).Height(innerRows).Render(dimStyle.Render("No preview"))
	}

	lines := []string{labelStyle.Render(utils.Truncate(p.Header(), inner))}
	body := p.Lines()
	if _, ok := p.Content.(preview.Text); ok && p.Info.LineCount > 0 {
		lines[0] = labelStyle.Render(utils.Truncate(fmt.Sprintf("%s  %d lines", p.Header(), p.Info.LineCount), inner))
	}
	for i := p.Offset; i < len(body) && len(lines) < innerRows; i++ {
		lines = append(lines, utils.Truncate(body[i], inner))
	}
	return style.Width(inner).Height(innerRows).Render(strings.Join(lines, "\n"))
}

func (m *model) renderFooter() string {
	var line string
	switch md := m.mode.(type) {
	case *patternMode:
		line = labelStyle.Render("Pattern: ") + md.input.View()
	case *searchMode:
		line = m.renderSearchLine(md)
	default:
		if s := m.status(); s != "" {
			line = statusStyle.Render(s)
		} else {
			line = helpStyle.Render(m.helpText())
		}
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}

func (m *model) helpText() string {
	switch md := m.mode.(type) {
	case *selectMode:
		k := m.keys.Select
		return helpLine(k.Up, k.Down, k.Toggle, k.Confirm, k.Chmod, k.Chown, k.Cancel)
	case *dualPaneMode:
		return "tab focus  F5 sync  F6 layout  +/- split  space mark  esc close"
	case *bookmarksMode:
		if md.filtering {
			return "type to filter  enter keep  esc clear"
		}
		if md.renaming {
			return "enter save  esc cancel"
		}
		k := m.keys.Bookmarks
		return helpLine(k.Jump, k.Add, k.Delete, k.Rename, k.Filter, k.Frequency, k.Name, k.Export, k.Import, k.Cancel) + "  ^<letter>/alt+<key> jump"
	case *permissionMode, *ownershipMode:
		return ""
	default:
		k := m.keys.Browse
		if m.showPreview && m.previewFocused {
			return "↑/↓ scroll  pgup/pgdn page  tab/esc back"
		}
		return helpLine(k.Enter, k.Back, k.Search, k.Bookmarks, k.Preview, k.DualPane, k.CopyPath, k.Open, k.Shell,
			k.Select, k.Pattern, k.Chmod, k.Chown, k.Quit)
	}
}

func toggle(on bool, label string) string {
	if on {
		return statusStyle.Render("[" + label + "]")
	}
	return dimStyle.Render("[" + label + "]")
}

func (m *model) renderSearchLine(md *searchMode) string {
	e := md.engine
	line := labelStyle.Render("Search: ") + md.input.View() + "  " +
		toggle(e.UseRegex, "^R regex") + " " +
		toggle(e.CaseSensitive, "^S case") + " " +
		toggle(e.SearchContents, "^G contents")

	if len(e.Results) > 0 {
		res, _ := e.Current()
		where := utils.GetFileIcon(res.Entry.Name) + " " + res.Entry.Name
		if res.IsContent() {
			where += fmt.Sprintf(":%d: %s", res.LineNumber, res.Line)
		}
		line += fmt.Sprintf("  %d/%d  %s", e.Index+1, len(e.Results), where)
	} else if s := m.status(); s != "" {
		line += "  " + statusStyle.Render(s)
	}
	return line
}

func (m *model) renderPermissions(s *permissions.Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %d target(s)\n\n", labelStyle.Render("🔐 Permission Editor"), len(s.Targets))

	if s.View == permissions.TemplateView {
		b.WriteString(labelStyle.Render("Templates") + "\n")
		for i, t := range permissions.Templates {
			row := fmt.Sprintf("%s  %-28s %s", t.Octal(), t.Label, dimStyle.Render(t.Hint))
			if i == s.TemplateIndex {
				row = selectedStyle.Render("▶ " + row)
			} else {
				row = "  " + row
			}
			b.WriteString(row + "\n")
		}
		b.WriteString("\n" + helpStyle.Render("↑/↓ choose  enter apply  t digits  esc cancel"))
		return b.String()
	}

	names := [3]string{"Owner", "Group", "Other"}
	var digits, labels []string
	for i, d := range s.Digits {
		cell := fmt.Sprintf(" %d ", d)
		if i == s.Cursor {
			cell = selectedStyle.Render("[" + fmt.Sprint(d) + "]")
		}
		digits = append(digits, lipgloss.NewStyle().Width(8).Align(lipgloss.Center).Render(cell))
		labels = append(labels, lipgloss.NewStyle().Width(8).Align(lipgloss.Center).Render(dimStyle.Render(names[i])))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, digits...) + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, labels...) + "\n\n")

	fmt.Fprintf(&b, "Octal: %s   Symbolic: %s   Binary: %s\n\n", s.Octal(), s.Symbolic(), s.Binary())
	for _, line := range s.Explanations() {
		b.WriteString("  " + line + "\n")
	}

	if s.Preview {
		b.WriteString("\n" + labelStyle.Render("Targets") + "\n")
		for i, path := range s.Targets {
			if i == ownership.PreviewLimit {
				fmt.Fprintf(&b, "  ... and %d more\n", len(s.Targets)-i)
				break
			}
			b.WriteString("  " + utils.Truncate(path, m.width-4) + "\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render("←/→ digit  ↑/↓ value  t templates  p preview  enter apply  esc cancel"))
	return b.String()
}

func (m *model) renderOwnership(s *ownership.Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %d target(s)\n", labelStyle.Render("👤 Ownership Editor"), len(s.Targets))

	for _, w := range s.Warnings() {
		b.WriteString(warnStyle.Render("⚠️  "+w) + "\n")
	}
	b.WriteString("\n")

	listRows := m.height - navigatorChrome - 12
	if listRows < 3 {
		listRows = 3
	}
	colWidth := m.width/2 - 2

	var users []string
	for _, u := range s.FilteredUsers() {
		label := fmt.Sprintf("%s (%d)", u.Name, u.UID)
		if u.FullName != "" {
			label += " " + dimStyle.Render(u.FullName)
		}
		users = append(users, label)
	}
	var groups []string
	for _, g := range s.FilteredGroups() {
		groups = append(groups, fmt.Sprintf("%s (%d)", g.Name, g.GID))
	}

	userCol := renderPickList("Users", s.UserFilter, users, s.UserIndex, listRows, colWidth, s.Focus == ownership.UserList)
	groupCol := renderPickList("Groups", s.GroupFilter, groups, s.GroupIndex, listRows, colWidth, s.Focus == ownership.GroupList)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, userCol, groupCol) + "\n")

	options := fmt.Sprintf("%s recursive   %s preview", checkbox(s.Recursive), checkbox(s.ShowPreview))
	if s.Focus == ownership.Options {
		options = selectedStyle.Render(options)
	}
	b.WriteString(options + "\n")

	if s.ShowPreview {
		for _, line := range s.PreviewLines() {
			b.WriteString("  " + utils.Truncate(line, m.width-4) + "\n")
		}
	}

	if s.Focus == ownership.Confirm {
		b.WriteString("\n" + warnStyle.Render("Change ownership of critical system paths? (y/n)"))
	} else {
		b.WriteString("\n" + helpStyle.Render("tab focus  type to filter  ↑/↓ choose  ^R recursive  ^P preview  enter apply  esc cancel"))
	}
	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

// renderPickList draws a titled, filtered list scrolled around index
func renderPickList(title, filter string, items []string, index, rows, width int, focused bool) string {
	head := title
	if filter != "" {
		head += " /" + filter
	}

	if index >= len(items) {
		index = len(items) - 1
	}
	start := 0
	if index >= rows {
		start = index - rows + 1
	}

	lines := []string{labelStyle.Render(head)}
	for i := start; i < len(items) && i < start+rows; i++ {
		row := utils.Truncate(items[i], width-4)
		if i == index {
			row = selectedStyle.Render("▶ " + row)
		} else {
			row = "  " + row
		}
		lines = append(lines, row)
	}
	if len(items) == 0 {
		lines = append(lines, dimStyle.Render("  (no match)"))
	}

	style := blurBorder
	if focused {
		style = focusBorder
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func (m *model) renderPane(p *dualpane.Pane, width, rows int, focused bool) string {
	inner := width - 2
	if inner < 1 {
		inner = 1
	}
	lines := []string{pathStyle.Render(utils.Truncate(p.Dir, inner))}

	end := p.Offset + rows
	if end > len(p.Listing) {
		end = len(p.Listing)
	}
	for i := p.Offset; i < end; i++ {
		entry := p.Listing[i]
		name := utils.Truncate(entry.DisplayName(), inner-2)
		switch {
		case i == p.Selected && focused:
			name = selectedStyle.Render(utils.PadRight("▶ "+name, inner))
		case p.Marked[i]:
			name = markedStyle.Render("✓ " + name)
		case i == p.Selected:
			name = "▶ " + name
		case entry.IsDir:
			name = dirStyle.Render("  " + name)
		default:
			name = "  " + name
		}
		lines = append(lines, name)
	}

	style := blurBorder
	if focused {
		style = focusBorder
	}
	return style.Width(inner).Height(rows + paneHeaderRows).Render(strings.Join(lines, "\n"))
}

func (m *model) renderDualPane(v *dualpane.View) string {
	leftRows := m.paneRows(v, dualpane.Left) - 2
	rightRows := m.paneRows(v, dualpane.Right) - 2
	if leftRows < 1 {
		leftRows = 1
	}
	if rightRows < 1 {
		rightRows = 1
	}

	if v.Vertical {
		lw, rw := v.Sizes(m.width)
		return lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderPane(v.Left, lw, leftRows, v.Focus == dualpane.Left),
			m.renderPane(v.Right, rw, rightRows, v.Focus == dualpane.Right),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderPane(v.Left, m.width, leftRows, v.Focus == dualpane.Left),
		m.renderPane(v.Right, m.width, rightRows, v.Focus == dualpane.Right),
	)
}

func (m *model) renderBookmarks(md *bookmarksMode) string {
	list := m.bookmarks.List()
	rows := md.visible(len(list))

	highlights := make(map[int][]int, len(md.matches))
	for _, match := range md.matches {
		highlights[match.Index] = match.MatchedIndexes
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render("🔖 Bookmarks"))
	if md.filtering || md.filter.Value() != "" {
		b.WriteString("  " + md.filter.View())
	}
	b.WriteString("\n\n")

	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("  No bookmarks") + "\n")
	}

	for i, idx := range rows {
		bm := list[idx]
		shortcut := "   "
		if bm.Shortcut != "" {
			shortcut = "[" + bm.Shortcut + "]"
		}
		seen := "never"
		if bm.LastAccessed != nil {
			seen = humanize.Time(*bm.LastAccessed)
		}
		name := utils.HighlightMatches(bm.Name, highlights[idx])
		if i == md.cursor && md.renaming {
			name = md.rename.View()
		}
		row := fmt.Sprintf("%s %s  %s  %s",
			shortcut,
			name,
			dimStyle.Render(utils.Truncate(bm.Path, m.width/2)),
			dimStyle.Render(fmt.Sprintf("%s, %d×", seen, bm.AccessCount)),
		)
		if i == md.cursor {
			row = "▶ " + row
		} else {
			row = "  " + row
		}
		b.WriteString(row + "\n")
	}
	return b.String()
}
