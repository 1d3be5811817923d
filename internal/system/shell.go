package system

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

const defaultShell = "/bin/sh"

// ResolveShell picks the shell to spawn: override, then $SHELL, then /bin/sh
func ResolveShell(override string) string {
	if override != "" {
		return override
	}
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return defaultShell
}

// SpawnShell runs an interactive shell in dir attached to the current
// terminal and returns its exit status.
func SpawnShell(shell, dir string) (int, error) {
	cmd := exec.Command(shell)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, fmt.Errorf("cannot start shell %s: %w", shell, err)
	}
	return 0, nil
}
