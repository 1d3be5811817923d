//go:build !unix

package system

import "os"

// IsPrivileged is always false where chmod/chown semantics are unavailable
func IsPrivileged() bool {
	return false
}

// OwnerIDs is unavailable on this platform
func OwnerIDs(info os.FileInfo) (uid, gid uint32, ok bool) {
	return 0, 0, false
}
