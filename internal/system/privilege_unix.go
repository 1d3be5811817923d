//go:build unix

package system

import (
	"os"
	"syscall"
)

// IsPrivileged reports whether the process runs with an effective uid of 0
func IsPrivileged() bool {
	return os.Geteuid() == 0
}

// OwnerIDs extracts uid and gid from the platform stat data
func OwnerIDs(info os.FileInfo) (uid, gid uint32, ok bool) {
	if info == nil {
		return 0, 0, false
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0, false
	}
	return st.Uid, st.Gid, true
}
