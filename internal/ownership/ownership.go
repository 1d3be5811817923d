// Package ownership implements the interactive user/group picker used to
// chown the marked entries.
package ownership

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/LFroesch/fsnav/internal/fileops"
	"github.com/LFroesch/fsnav/internal/logger"
	"github.com/LFroesch/fsnav/internal/system"
)

// ErrNotPrivileged is returned by New when the process may not chown
var ErrNotPrivileged = errors.New("ownership changes require root privileges")

// Focus is the part of the editor receiving keys
type Focus int

const (
	UserList Focus = iota
	GroupList
	Options
	Confirm
)

// PreviewLimit caps how many targets the preview lists
const PreviewLimit = 5

var criticalPrefixes = []string{
	"/etc",
	"/bin",
	"/sbin",
	"/usr/bin",
	"/usr/sbin",
	"/boot",
	"/lib",
	"/lib64",
	"/proc",
	"/sys",
	"/dev",
}

// Change is one recorded ownership update
type Change struct {
	Path   string
	OldUID uint32
	OldGID uint32
	NewUID uint32
	NewGID uint32
	Time   time.Time
}

// Session is one run of the editor over a fixed set of targets
type Session struct {
	Targets []string
	Users   []system.User
	Groups  []system.Group

	UserFilter  string
	GroupFilter string
	UserIndex   int
	GroupIndex  int

	Focus       Focus
	Recursive   bool
	ShowPreview bool

	// LastResult is set once the session applied a change
	LastResult *fileops.Result

	warnings []string
	history  []Change
	fold     cases.Caser
	chownAll func(paths []string, uid, gid int, recursive bool) fileops.Result
}

// New opens an editor over targets. It refuses with ErrNotPrivileged before
// touching the account databases when isPrivileged reports false.
func New(targets []string, isPrivileged func() bool, accounts system.Accounts) (*Session, error) {
	if isPrivileged == nil || !isPrivileged() {
		return nil, ErrNotPrivileged
	}

	users, err := accounts.Users()
	if err != nil {
		logger.Warn("Failed to load users: %v", err)
	}
	groups, err := accounts.Groups()
	if err != nil {
		logger.Warn("Failed to load groups: %v", err)
	}

	s := &Session{
		Targets:     targets,
		Users:       users,
		Groups:      groups,
		Focus:       UserList,
		ShowPreview: true,
		warnings:    CriticalWarnings(targets),
		fold:        cases.Fold(),
		chownAll:    fileops.ChownAll,
	}

	if len(targets) > 0 {
		if uid, gid, ok := ownerOf(targets[0]); ok {
			for i, u := range users {
				if u.UID == uid {
					s.UserIndex = i
					break
				}
			}
			for i, g := range groups {
				if g.GID == gid {
					s.GroupIndex = i
					break
				}
			}
		}
	}

	return s, nil
}

func ownerOf(path string) (uid, gid uint32, ok bool) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, 0, false
	}
	return system.OwnerIDs(info)
}

// CriticalWarnings returns one warning per target and sensitive prefix it
// lives under.
func CriticalWarnings(targets []string) []string {
	var warnings []string
	for _, path := range targets {
		clean := filepath.Clean(path)
		for _, prefix := range criticalPrefixes {
			if clean == prefix || strings.HasPrefix(clean, prefix+"/") {
				warnings = append(warnings, fmt.Sprintf("⚠️ %s is in a critical system directory!", path))
			}
		}
	}
	return warnings
}

// Warnings are computed once when the session opens
func (s *Session) Warnings() []string {
	return s.warnings
}

// History returns every change recorded by this session
func (s *Session) History() []Change {
	return s.history
}

func (s *Session) matches(name, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(s.fold.String(name), s.fold.String(filter))
}

// FilteredUsers is the user list narrowed by UserFilter
func (s *Session) FilteredUsers() []system.User {
	var out []system.User
	for _, u := range s.Users {
		if s.matches(u.Name, s.UserFilter) {
			out = append(out, u)
		}
	}
	return out
}

// FilteredGroups is the group list narrowed by GroupFilter
func (s *Session) FilteredGroups() []system.Group {
	var out []system.Group
	for _, g := range s.Groups {
		if s.matches(g.Name, s.GroupFilter) {
			out = append(out, g)
		}
	}
	return out
}

func clampIndex(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// SelectedUser resolves UserIndex in the filtered view, clamped to its bounds
func (s *Session) SelectedUser() (system.User, bool) {
	users := s.FilteredUsers()
	if len(users) == 0 {
		return system.User{}, false
	}
	return users[clampIndex(s.UserIndex, len(users))], true
}

// SelectedGroup resolves GroupIndex in the filtered view, clamped to its bounds
func (s *Session) SelectedGroup() (system.Group, bool) {
	groups := s.FilteredGroups()
	if len(groups) == 0 {
		return system.Group{}, false
	}
	return groups[clampIndex(s.GroupIndex, len(groups))], true
}

// HandleKey processes one key and reports whether the editor is done
func (s *Session) HandleKey(key string) bool {
	if s.Focus == Confirm {
		switch key {
		case "y", "Y", "enter":
			s.Apply()
			return true
		case "n", "N":
			return true
		case "esc":
			s.Focus = UserList
		}
		return false
	}

	switch key {
	case "tab":
		switch s.Focus {
		case UserList:
			s.Focus = GroupList
		case GroupList:
			s.Focus = Options
		case Options:
			s.Focus = UserList
		}
	case "up":
		s.moveSelection(-1)
	case "down":
		s.moveSelection(1)
	case "ctrl+r":
		s.Recursive = !s.Recursive
	case "ctrl+p":
		s.ShowPreview = !s.ShowPreview
	case "backspace":
		s.popFilter()
	case "enter":
		if len(s.warnings) > 0 {
			s.Focus = Confirm
			return false
		}
		s.Apply()
		return true
	case "esc":
		return true
	default:
		if s.Focus == Options {
			s.handleOptionKey(key)
			return false
		}
		if r, ok := filterRune(key); ok {
			s.pushFilter(r)
		}
	}
	return false
}

func (s *Session) handleOptionKey(key string) {
	switch key {
	case " ", "r", "R":
		s.Recursive = !s.Recursive
	case "p", "P":
		s.ShowPreview = !s.ShowPreview
	}
}

// filterRune accepts a single letter, digit, '_' or '-'
func filterRune(key string) (rune, bool) {
	runes := []rune(key)
	if len(runes) != 1 {
		return 0, false
	}
	r := runes[0]
	if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
		return r, true
	}
	return 0, false
}

func (s *Session) moveSelection(delta int) {
	switch s.Focus {
	case UserList:
		s.UserIndex = step(s.UserIndex, delta, len(s.FilteredUsers()))
	case GroupList:
		s.GroupIndex = step(s.GroupIndex, delta, len(s.FilteredGroups()))
	}
}

func step(i, delta, n int) int {
	if n == 0 {
		return 0
	}
	return clampIndex(clampIndex(i, n)+delta, n)
}

func (s *Session) pushFilter(r rune) {
	switch s.Focus {
	case UserList:
		s.UserFilter += string(r)
		s.UserIndex = 0
	case GroupList:
		s.GroupFilter += string(r)
		s.GroupIndex = 0
	}
}

func (s *Session) popFilter() {
	trim := func(f string) string {
		runes := []rune(f)
		if len(runes) == 0 {
			return f
		}
		return string(runes[:len(runes)-1])
	}

	switch s.Focus {
	case UserList:
		s.UserFilter = trim(s.UserFilter)
		s.UserIndex = 0
	case GroupList:
		s.GroupFilter = trim(s.GroupFilter)
		s.GroupIndex = 0
	}
}

// Apply chowns every target to the selected user and group, recursing into
// directories when Recursive is set. Nothing happens when either filtered
// list is empty.
func (s *Session) Apply() {
	user, okUser := s.SelectedUser()
	group, okGroup := s.SelectedGroup()
	if !okUser || !okGroup {
		return
	}

	now := time.Now()
	for _, path := range s.Targets {
		oldUID, oldGID, _ := ownerOf(path)
		s.history = append(s.history, Change{
			Path:   path,
			OldUID: oldUID,
			OldGID: oldGID,
			NewUID: user.UID,
			NewGID: group.GID,
			Time:   now,
		})
	}

	res := s.chownAll(s.Targets, int(user.UID), int(group.GID), s.Recursive)
	s.LastResult = &res
	logger.Info("chown %s:%s on %d targets: %s succeeded", user.Name, group.Name, len(s.Targets), res.Summary())
}

func (s *Session) userName(uid uint32) string {
	for _, u := range s.Users {
		if u.UID == uid {
			return u.Name
		}
	}
	return "?"
}

func (s *Session) groupName(gid uint32) string {
	for _, g := range s.Groups {
		if g.GID == gid {
			return g.Name
		}
	}
	return "?"
}

// PreviewLines describes the pending change for the first few targets
func (s *Session) PreviewLines() []string {
	user, okUser := s.SelectedUser()
	group, okGroup := s.SelectedGroup()
	newOwner := "?:?"
	if okUser && okGroup {
		newOwner = user.Name + ":" + group.Name
	}

	var lines []string
	for i, path := range s.Targets {
		if i == PreviewLimit {
			lines = append(lines, fmt.Sprintf("... and %d more", len(s.Targets)-PreviewLimit))
			break
		}
		old := "?:?"
		if uid, gid, ok := ownerOf(path); ok {
			old = s.userName(uid) + ":" + s.groupName(gid)
		}
		suffix := ""
		if s.Recursive {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				suffix = " (and all contents)"
			}
		}
		lines = append(lines, fmt.Sprintf("%s: %s → %s%s", filepath.Base(path), old, newOwner, suffix))
	}
	return lines
}
