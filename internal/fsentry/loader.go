package fsentry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/LFroesch/fsnav/internal/system"
)

// Load reads dir into a Listing: the parent entry first (unless dir is the
// filesystem root), then directories, then files, each group sorted
// case-insensitively. It never fails; an unreadable directory yields a
// single inaccessible error entry after the parent entry.
func Load(dir string) Listing {
	dir = filepath.Clean(dir)
	var listing Listing

	if parent := filepath.Dir(dir); parent != dir {
		listing = append(listing, Entry{
			Name:         ParentName,
			Path:         parent,
			IsDir:        true,
			IsAccessible: true,
		})
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return append(listing, Entry{
			Name: fmt.Sprintf("⚠️  Error: %v", err),
			Path: dir,
		})
	}

	var dirs, files Listing
	for _, de := range entries {
		name := de.Name()
		if IsHidden(name) {
			continue
		}

		e := inspect(filepath.Join(dir, name), name)
		if e.IsDir {
			dirs = append(dirs, e)
		} else {
			files = append(files, e)
		}
	}

	sortByName(dirs)
	sortByName(files)

	listing = append(listing, dirs...)
	return append(listing, files...)
}

// inspect collects the metadata of one child. Symlink-ness comes from Lstat,
// everything else from the followed Stat.
func inspect(path, name string) Entry {
	e := Entry{Name: name, Path: path}

	if linfo, err := os.Lstat(path); err == nil {
		e.IsSymlink = linfo.Mode()&os.ModeSymlink != 0
	}

	info, err := os.Stat(path)
	if err != nil {
		return e
	}

	e.IsAccessible = true
	e.IsDir = info.IsDir()
	e.Size = info.Size()
	e.Modified = info.ModTime()
	e.Mode = info.Mode()
	e.HasMode = true

	if uid, gid, ok := system.OwnerIDs(info); ok {
		e.UID, e.GID = uid, gid
		e.Owner, e.Group = system.LookupOwner(uid, gid)
		e.HasOwner = true
	}
	return e
}

func sortByName(l Listing) {
	sort.SliceStable(l, func(i, j int) bool {
		return strings.ToLower(l[i].Name) < strings.ToLower(l[j].Name)
	})
}
