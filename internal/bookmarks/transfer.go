package bookmarks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Export writes every bookmark to path, as YAML for .yaml/.yml files and
// JSON otherwise
func (s *Store) Export(path string) error {
	doc := document{Version: formatVersion, Bookmarks: s.bookmarks}

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(doc)
	} else {
		data, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("cannot encode bookmarks: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("cannot write export: %w", err)
	}
	return nil
}

// Import merges the bookmarks found in path. Paths already bookmarked are
// skipped; an imported shortcut that is already taken or unusable is
// dropped. It returns how many bookmarks were added.
func (s *Store) Import(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("cannot read import: %w", err)
	}

	var doc document
	if isYAML(path) {
		err = yaml.Unmarshal(data, &doc)
	} else {
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return 0, fmt.Errorf("cannot parse import %s: %w", path, err)
	}

	added := 0
	for _, b := range doc.Bookmarks {
		if s.FindByPath(b.Path) >= 0 {
			continue
		}
		if k := b.Key(); k != 0 && (!validShortcut(k) || s.indexOfShortcut(k) >= 0) {
			b.Shortcut = ""
		}
		s.bookmarks = append(s.bookmarks, b)
		added++
	}

	if added == 0 {
		return 0, nil
	}
	return added, s.Save()
}
