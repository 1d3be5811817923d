package system

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

const (
	passwdPath = "/etc/passwd"
	groupPath  = "/etc/group"
)

// User is one record of the user database
type User struct {
	UID      uint32
	Name     string
	FullName string // first GECOS field, empty when unset
}

// Group is one record of the group database
type Group struct {
	GID  uint32
	Name string
}

// Accounts loads the user and group databases
type Accounts interface {
	Users() ([]User, error)
	Groups() ([]Group, error)
}

// FileAccounts reads /etc/passwd and /etc/group
type FileAccounts struct {
	PasswdPath string
	GroupPath  string
}

// DefaultAccounts returns the host's account databases
func DefaultAccounts() FileAccounts {
	return FileAccounts{PasswdPath: passwdPath, GroupPath: groupPath}
}

// Users parses the passwd file, sorted by name
func (a FileAccounts) Users() ([]User, error) {
	f, err := os.Open(a.PasswdPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open user database: %w", err)
	}
	defer f.Close()
	return ParsePasswd(f), nil
}

// Groups parses the group file, sorted by name
func (a FileAccounts) Groups() ([]Group, error) {
	f, err := os.Open(a.GroupPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open group database: %w", err)
	}
	defer f.Close()
	return ParseGroup(f), nil
}

// ParsePasswd reads passwd(5) lines. Records with fewer than five fields or a
// non-numeric uid are skipped.
func ParsePasswd(r io.Reader) []User {
	var users []User
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		parts := strings.Split(scanner.Text(), ":")
		if len(parts) < 5 {
			continue
		}
		uid, err := strconv.ParseUint(parts[2], 10, 32)
		if err != nil {
			continue
		}
		fullName, _, _ := strings.Cut(parts[4], ",")
		users = append(users, User{UID: uint32(uid), Name: parts[0], FullName: fullName})
	}

	sort.SliceStable(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users
}

// ParseGroup reads group(5) lines. Records with fewer than three fields or a
// non-numeric gid are skipped.
func ParseGroup(r io.Reader) []Group {
	var groups []Group
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		parts := strings.Split(scanner.Text(), ":")
		if len(parts) < 3 {
			continue
		}
		gid, err := strconv.ParseUint(parts[2], 10, 32)
		if err != nil {
			continue
		}
		groups = append(groups, Group{GID: uint32(gid), Name: parts[0]})
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups
}
