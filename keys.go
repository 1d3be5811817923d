package main

import "github.com/charmbracelet/bubbles/key"

type browseKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Home      key.Binding
	End       key.Binding
	Enter     key.Binding
	Back      key.Binding
	Search    key.Binding
	Bookmarks key.Binding
	Preview   key.Binding
	Focus     key.Binding
	DualPane  key.Binding
	CopyPath  key.Binding
	Open      key.Binding
	Shell     key.Binding
	Select    key.Binding
	Pattern   key.Binding
	Chmod     key.Binding
	Chown     key.Binding
	Quit      key.Binding
}

type selectKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Confirm key.Binding
	Chmod   key.Binding
	Chown   key.Binding
	Cancel  key.Binding
}

type searchKeyMap struct {
	Run      key.Binding
	Next     key.Binding
	Previous key.Binding
	Regex    key.Binding
	Case     key.Binding
	Contents key.Binding
	Cancel   key.Binding
}

type bookmarksKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Jump      key.Binding
	Add       key.Binding
	Delete    key.Binding
	Rename    key.Binding
	Filter    key.Binding
	Frequency key.Binding
	Name      key.Binding
	Export    key.Binding
	Import    key.Binding
	Cancel    key.Binding
}

type keyMap struct {
	Browse    browseKeyMap
	Select    selectKeyMap
	Search    searchKeyMap
	Bookmarks bookmarksKeyMap
}

func defaultKeyMap() keyMap {
	return keyMap{
		Browse: browseKeyMap{
			Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
			Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
			PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
			PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
			Home:      key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "top")),
			End:       key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "bottom")),
			Enter:     key.NewBinding(key.WithKeys("enter", "right", "l"), key.WithHelp("→/enter", "open dir")),
			Back:      key.NewBinding(key.WithKeys("left", "backspace", "h"), key.WithHelp("←", "parent")),
			Search:    key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("^F", "search")),
			Bookmarks: key.NewBinding(key.WithKeys("ctrl+b", "ctrl+g"), key.WithHelp("^B", "bookmarks")),
			Preview:   key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("^P", "preview")),
			Focus:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus preview")),
			DualPane:  key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "dual pane")),
			CopyPath:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy path")),
			Open:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "open")),
			Shell:     key.NewBinding(key.WithKeys("ctrl+d", "S"), key.WithHelp("S", "shell here")),
			Select:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "select")),
			Pattern:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pattern")),
			Chmod:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chmod")),
			Chown:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "chown")),
			Quit:      key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("q", "quit")),
		},
		Select: selectKeyMap{
			Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
			Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
			Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "mark")),
			Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "count")),
			Chmod:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chmod")),
			Chown:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "chown")),
			Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		},
		Search: searchKeyMap{
			Run:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
			Next:     key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("^N", "next")),
			Previous: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("^P", "previous")),
			Regex:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("^R", "regex")),
			Case:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("^S", "case")),
			Contents: key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("^G", "contents")),
			Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		},
		Bookmarks: bookmarksKeyMap{
			Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
			Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
			Jump:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "go")),
			Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
			Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
			Rename:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
			Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
			Frequency: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "by use")),
			Name:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "by name")),
			Export:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
			Import:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
			Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		},
	}
}

// helpLine renders "key desc" pairs for the footer
func helpLine(bindings ...key.Binding) string {
	var out string
	for i, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		if i > 0 && out != "" {
			out += "  "
		}
		out += h.Key + " " + h.Desc
	}
	return out
}
