// Package fsentry reads a directory into the sorted listing the navigator
// and the dual-pane view render.
package fsentry

import (
	"fmt"
	"os"
	"time"
)

// ParentName is the name of the synthetic entry pointing one level up
const ParentName = ".."

// Entry represents a single file or directory on disk
type Entry struct {
	Name         string
	Path         string
	IsDir        bool
	IsAccessible bool
	IsSymlink    bool
	Size         int64
	Modified     time.Time

	// Optional metadata, valid only when the matching Has* flag is set
	Mode     os.FileMode
	HasMode  bool
	Owner    string
	Group    string
	UID      uint32
	GID      uint32
	HasOwner bool
}

// Listing is the ordered content of one directory
type Listing []Entry

// IsParent reports whether e is the synthetic ".." entry
func (e Entry) IsParent() bool {
	return e.Name == ParentName
}

// DisplayName prefixes the name with a type icon and suffixes real
// directories with a slash.
func (e Entry) DisplayName() string {
	icon := "📄"
	switch {
	case e.IsSymlink:
		icon = "🔗"
	case e.IsDir:
		icon = "📁"
	}

	name := e.Name
	if e.IsDir && !e.IsSymlink {
		name += "/"
	}
	return fmt.Sprintf("%s %s", icon, name)
}

// PermissionString renders the permission bits as rwxr-xr-x
func (e Entry) PermissionString() string {
	if !e.HasMode {
		return "---------"
	}
	return Symbolic(uint32(e.Mode.Perm()))
}

// OwnershipString renders "owner group" with "-" for unknown parts
func (e Entry) OwnershipString() string {
	owner, group := "-", "-"
	if e.Owner != "" {
		owner = e.Owner
	}
	if e.Group != "" {
		group = e.Group
	}
	return owner + " " + group
}

// Symbolic renders the low nine bits of mode as three rwx triplets
func Symbolic(mode uint32) string {
	const flags = "rwx"
	buf := make([]byte, 9)
	for i := 0; i < 9; i++ {
		if mode&(1<<uint(8-i)) != 0 {
			buf[i] = flags[i%3]
		} else {
			buf[i] = '-'
		}
	}
	return string(buf)
}

// Paths returns the paths of the entries at the given indices, skipping the
// parent entry and out-of-range indices.
func (l Listing) Paths(indices []int) []string {
	paths := make([]string, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(l) || l[i].IsParent() {
			continue
		}
		paths = append(paths, l[i].Path)
	}
	return paths
}

// IndexOf returns the index of the entry with path, or -1
func (l Listing) IndexOf(path string) int {
	for i, e := range l {
		if e.Path == path {
			return i
		}
	}
	return -1
}
