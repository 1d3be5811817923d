//go:build unix

package fsentry

// IsHidden reports whether name is a dotfile. The parent entry is never hidden.
func IsHidden(name string) bool {
	return len(name) > 0 && name[0] == '.' && name != ParentName
}
