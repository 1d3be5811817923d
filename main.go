package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/LFroesch/fsnav/internal/bookmarks"
	"github.com/LFroesch/fsnav/internal/config"
	"github.com/LFroesch/fsnav/internal/logger"
	"github.com/LFroesch/fsnav/internal/system"
)

var version = "dev"

func main() {
	// refuse before the terminal is touched
	if err := system.CheckPlatform(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "fsnav [PATH]",
		Short:        "Terminal file browser with permission and ownership editors",
		Long:         `fsnav browses directories, previews files, keeps bookmarks and, when run as root, edits permissions and ownership of many files at once.`,
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := startDir(args)
			if err != nil {
				return err
			}
			return run(dir)
		},
	}
}

// startDir resolves the optional PATH argument, defaulting to the working
// directory
func startDir(args []string) (string, error) {
	if len(args) == 0 {
		dir, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("cannot determine current directory: %w", err)
		}
		return dir, nil
	}

	dir, err := filepath.Abs(args[0])
	if err != nil {
		return "", fmt.Errorf("cannot resolve %s: %w", args[0], err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("cannot open %s: %w", args[0], err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", args[0])
	}
	return dir, nil
}

func run(dir string) error {
	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		logger.Disable()
	}
	defer logger.Close()

	cfg := config.Load()
	if level, err := logger.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	store, err := bookmarks.Open()
	if err != nil {
		logger.Warn("Bookmarks: %v", err)
	}

	m := newModel(dir, cfg, system.IsPrivileged, system.DefaultAccounts(), store)
	logger.Info("starting in %s (privileged=%t)", dir, m.isPrivileged)

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("cannot run interface: %w", err)
	}

	fm, ok := final.(*model)
	if !ok || !fm.spawnShell {
		return nil
	}

	shell := system.ResolveShell(cfg.Shell)
	code, err := system.SpawnShell(shell, fm.dir)
	if err != nil {
		return err
	}
	if code != 0 {
		fmt.Fprintf(os.Stderr, "%s exited with status %d\n", filepath.Base(shell), code)
	}
	return nil
}
