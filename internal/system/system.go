// Package system wraps the host facts fsnav depends on: platform support,
// effective privilege, account databases and uid/gid name resolution.
package system

import (
	"errors"
	"os/user"
	"runtime"
	"strconv"
	"sync"
)

// ErrUnsupportedPlatform is returned by CheckPlatform on non-POSIX hosts
var ErrUnsupportedPlatform = errors.New("fsnav requires a POSIX system (Linux, macOS, BSD); on Windows use WSL")

// CheckPlatform reports whether the privileged operations can work here
func CheckPlatform() error {
	return checkPlatform(runtime.GOOS)
}

func checkPlatform(goos string) error {
	switch goos {
	case "windows", "plan9", "js", "wasip1":
		return ErrUnsupportedPlatform
	}
	return nil
}

var (
	namesMu    sync.Mutex
	userNames  = map[uint32]string{}
	groupNames = map[uint32]string{}
)

// LookupOwner resolves uid and gid to names. An id without an account
// resolves to its decimal string.
func LookupOwner(uid, gid uint32) (owner, group string) {
	namesMu.Lock()
	defer namesMu.Unlock()

	owner, ok := userNames[uid]
	if !ok {
		owner = strconv.FormatUint(uint64(uid), 10)
		if u, err := user.LookupId(owner); err == nil {
			owner = u.Username
		}
		userNames[uid] = owner
	}

	group, ok = groupNames[gid]
	if !ok {
		group = strconv.FormatUint(uint64(gid), 10)
		if g, err := user.LookupGroupId(group); err == nil {
			group = g.Name
		}
		groupNames[gid] = group
	}

	return owner, group
}
