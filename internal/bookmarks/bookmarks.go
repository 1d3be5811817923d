// Package bookmarks persists named directory shortcuts in
// ~/.config/fsnav/bookmarks.json.
package bookmarks

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/LFroesch/fsnav/internal/config"
	"github.com/LFroesch/fsnav/internal/logger"
)

const (
	fileName      = "bookmarks.json"
	formatVersion = 1

	// shortcutKeys is the shortcut pool in assignment order. c, i and m are
	// left out: terminals send ctrl+c as an interrupt and ctrl+i, ctrl+m as
	// tab and enter.
	shortcutKeys = "abdefghjklnopqrstuvwxyz0123456789"
)

var (
	ErrPathNotFound     = errors.New("path does not exist")
	ErrDuplicatePath    = errors.New("bookmark already exists for this path")
	ErrShortcutInUse    = errors.New("shortcut is already in use")
	ErrIndexOutOfRange  = errors.New("invalid bookmark index")
	ErrNoFreeShortcut   = errors.New("no shortcut available")
	errUnsupportedShort = errors.New("shortcut must be a letter other than c, i or m, or a digit")
)

// Bookmark is one saved directory
type Bookmark struct {
	Name         string     `json:"name" yaml:"name"`
	Path         string     `json:"path" yaml:"path"`
	Shortcut     string     `json:"shortcut,omitempty" yaml:"shortcut,omitempty"`
	CreatedAt    time.Time  `json:"created_at" yaml:"created_at"`
	LastAccessed *time.Time `json:"last_accessed,omitempty" yaml:"last_accessed,omitempty"`
	AccessCount  int        `json:"access_count" yaml:"access_count"`
}

// Key returns the shortcut as a rune, or 0 when unset
func (b Bookmark) Key() rune {
	for _, r := range b.Shortcut {
		return r
	}
	return 0
}

type document struct {
	Version   int        `json:"version" yaml:"version"`
	Bookmarks []Bookmark `json:"bookmarks" yaml:"bookmarks"`
}

// Store is the on-disk bookmark list
type Store struct {
	path      string
	bookmarks []Bookmark
}

// Open loads ~/.config/fsnav/bookmarks.json, seeding it on first run
func Open() (*Store, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	home, _ := os.UserHomeDir()
	return OpenAt(filepath.Join(dir, fileName), home)
}

// OpenAt loads the store at path. A missing file is seeded with the default
// set rooted at home and written immediately.
func OpenAt(path, home string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.seedDefaults(home)
		return s, s.Save()
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read bookmarks: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("cannot parse bookmarks %s: %w", path, err)
	}
	s.bookmarks = doc.Bookmarks
	return s, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (s *Store) seedDefaults(home string) {
	if home != "" {
		s.insert("Home", home, 'h')
		for _, d := range []struct {
			name string
			key  rune
		}{{"Downloads", 'd'}, {"Documents", 'o'}, {"Desktop", 'k'}} {
			if p := filepath.Join(home, d.name); exists(p) {
				s.insert(d.name, p, d.key)
			}
		}
	}

	s.insert("Root", "/", 'r')

	for _, d := range []struct {
		name, path string
		key        rune
	}{{"Local", "/usr/local", 'l'}, {"Config", "/etc", 'e'}, {"Temp", "/tmp", 't'}} {
		if exists(d.path) {
			s.insert(d.name, d.path, d.key)
		}
	}
}

func (s *Store) insert(name, path string, key rune) {
	b := Bookmark{Name: name, Path: path, CreatedAt: time.Now()}
	if validShortcut(key) && s.indexOfShortcut(key) < 0 {
		b.Shortcut = string(key)
	}
	s.bookmarks = append(s.bookmarks, b)
}

// Save writes the store as a versioned JSON document
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("cannot create bookmark directory: %w", err)
	}
	data, err := json.MarshalIndent(document{Version: formatVersion, Bookmarks: s.bookmarks}, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal bookmarks: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("cannot write bookmarks: %w", err)
	}
	return nil
}

// saveQuietly persists access statistics; failures are only logged
func (s *Store) saveQuietly() {
	if err := s.Save(); err != nil {
		logger.Warn("Failed to save bookmarks: %v", err)
	}
}

// List returns the bookmarks in display order
func (s *Store) List() []Bookmark {
	return s.bookmarks
}

// Len returns the number of bookmarks
func (s *Store) Len() int {
	return len(s.bookmarks)
}

func (s *Store) indexOfShortcut(key rune) int {
	for i, b := range s.bookmarks {
		if b.Key() == key {
			return i
		}
	}
	return -1
}

func validShortcut(key rune) bool {
	return strings.ContainsRune(shortcutKeys, key)
}

// Add saves a new bookmark. key may be 0 for no shortcut.
func (s *Store) Add(name, path string, key rune) error {
	if !exists(path) {
		return fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	if s.FindByPath(path) >= 0 {
		return ErrDuplicatePath
	}
	if key != 0 {
		if !validShortcut(key) {
			return errUnsupportedShort
		}
		if s.indexOfShortcut(key) >= 0 {
			return fmt.Errorf("%w: '%c'", ErrShortcutInUse, key)
		}
	}

	s.insert(name, path, key)
	return s.Save()
}

// AddWithFreeShortcut bookmarks path under the first available shortcut
func (s *Store) AddWithFreeShortcut(name, path string) (rune, error) {
	free := s.AvailableShortcuts()
	if len(free) == 0 {
		return 0, ErrNoFreeShortcut
	}
	return free[0], s.Add(name, path, free[0])
}

// Remove deletes the bookmark at index
func (s *Store) Remove(index int) error {
	if index < 0 || index >= len(s.bookmarks) {
		return ErrIndexOutOfRange
	}
	s.bookmarks = append(s.bookmarks[:index], s.bookmarks[index+1:]...)
	return s.Save()
}

// Rename changes the display name of the bookmark at index
func (s *Store) Rename(index int, name string) error {
	if index < 0 || index >= len(s.bookmarks) {
		return ErrIndexOutOfRange
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("bookmark name cannot be empty")
	}
	s.bookmarks[index].Name = name
	return s.Save()
}

// UpdateShortcut reassigns the shortcut of the bookmark at index; 0 clears it
func (s *Store) UpdateShortcut(index int, key rune) error {
	if index < 0 || index >= len(s.bookmarks) {
		return ErrIndexOutOfRange
	}
	if key != 0 {
		if !validShortcut(key) {
			return errUnsupportedShort
		}
		if i := s.indexOfShortcut(key); i >= 0 && i != index {
			return fmt.Errorf("%w: '%c'", ErrShortcutInUse, key)
		}
		s.bookmarks[index].Shortcut = string(key)
	} else {
		s.bookmarks[index].Shortcut = ""
	}
	return s.Save()
}

func (s *Store) touch(index int) Bookmark {
	now := time.Now()
	s.bookmarks[index].LastAccessed = &now
	s.bookmarks[index].AccessCount++
	s.saveQuietly()
	return s.bookmarks[index]
}

// GetByShortcut returns the bookmark bound to key and records the access
func (s *Store) GetByShortcut(key rune) (Bookmark, bool) {
	i := s.indexOfShortcut(key)
	if i < 0 {
		return Bookmark{}, false
	}
	return s.touch(i), true
}

// GetByIndex returns the bookmark at index and records the access
func (s *Store) GetByIndex(index int) (Bookmark, bool) {
	if index < 0 || index >= len(s.bookmarks) {
		return Bookmark{}, false
	}
	return s.touch(index), true
}

// FindByPath returns the index of the bookmark for path, or -1
func (s *Store) FindByPath(path string) int {
	clean := filepath.Clean(path)
	for i, b := range s.bookmarks {
		if filepath.Clean(b.Path) == clean {
			return i
		}
	}
	return -1
}

// AvailableShortcuts lists unused shortcuts, letters then digits
func (s *Store) AvailableShortcuts() []rune {
	var free []rune
	for _, r := range shortcutKeys {
		if s.indexOfShortcut(r) < 0 {
			free = append(free, r)
		}
	}
	return free
}

// SortByFrequency orders bookmarks by access count, most used first
func (s *Store) SortByFrequency() {
	sort.SliceStable(s.bookmarks, func(i, j int) bool {
		return s.bookmarks[i].AccessCount > s.bookmarks[j].AccessCount
	})
	s.saveQuietly()
}

// SortByName orders bookmarks alphabetically
func (s *Store) SortByName() {
	sort.SliceStable(s.bookmarks, func(i, j int) bool {
		return s.bookmarks[i].Name < s.bookmarks[j].Name
	})
	s.saveQuietly()
}
