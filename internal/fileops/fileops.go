// Package fileops applies permission and ownership changes to many paths at
// once. Every path is attempted independently; one failure never stops the
// rest.
package fileops

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/LFroesch/fsnav/internal/logger"
)

// Failure records one path that could not be changed
type Failure struct {
	Path string
	Err  error
}

// Result summarizes a bulk operation
type Result struct {
	Attempted int
	Succeeded int
	Failures  []Failure
}

func (r *Result) record(path string, err error) {
	r.Attempted++
	if err != nil {
		r.Failures = append(r.Failures, Failure{Path: path, Err: err})
		logger.Warn("%s: %v", path, err)
		return
	}
	logger.Debug("%s: changed", path)
	r.Succeeded++
}

func (r *Result) merge(other Result) {
	r.Attempted += other.Attempted
	r.Succeeded += other.Succeeded
	r.Failures = append(r.Failures, other.Failures...)
}

// Summary renders "N of M" for status lines
func (r Result) Summary() string {
	return fmt.Sprintf("%d of %d", r.Succeeded, r.Attempted)
}

// chown, lchown and readDir are swapped out by tests running without
// privilege
var (
	chown   = os.Chown
	lchown  = os.Lchown
	readDir = os.ReadDir
)

// ChmodAll sets the permission bits of every existing path to perm. The
// file-type, setuid, setgid and sticky bits already on each path are kept.
// Paths that no longer exist are skipped without counting as attempts.
func ChmodAll(paths []string, perm os.FileMode) Result {
	var res Result
	for _, path := range paths {
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			res.record(path, fmt.Errorf("cannot stat: %w", err))
			continue
		}

		mode := (info.Mode() &^ os.ModePerm) | (perm & os.ModePerm)
		if err := os.Chmod(path, mode); err != nil {
			res.record(path, fmt.Errorf("cannot chmod: %w", err))
			continue
		}
		res.record(path, nil)
	}
	return res
}

// Chown sets the owner of a single path, following symlinks
func Chown(path string, uid, gid int) error {
	if err := chown(path, uid, gid); err != nil {
		return fmt.Errorf("cannot chown: %w", err)
	}
	return nil
}

// ChownTree changes the owner of everything below root (root itself is not
// touched). The walk is an explicit pre-order depth-first stack; symlinks are
// changed in place and never followed. An unreadable directory counts as a
// failed attempt and its subtree is skipped.
func ChownTree(root string, uid, gid int) Result {
	type node struct {
		path      string
		isDir     bool
		isSymlink bool
	}

	var res Result
	stack := []node{{path: root, isDir: true}}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.isSymlink {
			var err error
			if err = lchown(n.path, uid, gid); err != nil {
				err = fmt.Errorf("cannot lchown: %w", err)
			}
			res.record(n.path, err)
			continue
		}
		if n.path != root {
			res.record(n.path, Chown(n.path, uid, gid))
		}
		if !n.isDir {
			continue
		}

		entries, err := readDir(n.path)
		if err != nil {
			res.record(n.path, fmt.Errorf("cannot read: %w", err))
			continue
		}

		// reversed so children pop in directory order
		for i := len(entries) - 1; i >= 0; i-- {
			de := entries[i]
			stack = append(stack, node{
				path:      filepath.Join(n.path, de.Name()),
				isDir:     de.IsDir(),
				isSymlink: de.Type()&os.ModeSymlink != 0,
			})
		}
	}
	return res
}

// ChownAll changes the owner of every path. With recursive set, directory
// targets also have their whole subtree changed.
func ChownAll(paths []string, uid, gid int, recursive bool) Result {
	var res Result
	for _, path := range paths {
		res.record(path, Chown(path, uid, gid))

		if !recursive {
			continue
		}
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			res.merge(ChownTree(path, uid, gid))
		}
	}
	return res
}
