package main

import (
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/skratchdot/open-golang/open"

	"github.com/LFroesch/fsnav/internal/logger"
)

// copyToClipboard is replaced in tests so they never touch the system clipboard
var copyToClipboard = clipboard.WriteAll

// openWithSystem starts the desktop handler without waiting for it
var openWithSystem = open.Start

func (m *model) copyPath(path string) {
	if err := copyToClipboard(path); err != nil {
		logger.Warn("clipboard: %v", err)
		m.setStatus("Failed to copy: %v", err)
		return
	}
	m.setStatus("Copied: %s", path)
}

func (m *model) openFile(path string) {
	if err := openWithSystem(path); err != nil {
		logger.Warn("open %s: %v", path, err)
		m.setStatus("Failed to open %s: %v", filepath.Base(path), err)
		return
	}
	m.setStatus("Opening %s", filepath.Base(path))
}
