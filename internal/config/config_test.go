package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LFroesch/fsnav/internal/logger"
)

func init() {
	logger.Disable()
}

func TestLoadDefaultConfig(t *testing.T) {
	homeDir := filepath.Join(t.TempDir(), "home")
	t.Setenv("HOME", homeDir)

	cfg := Load()

	if cfg == nil {
		t.Fatal("Load() returned nil")
	}

	if cfg.PreviewLines != 50 {
		t.Errorf("PreviewLines = %d, want 50", cfg.PreviewLines)
	}

	if cfg.SplitRatio != 0.5 {
		t.Errorf("SplitRatio = %v, want 0.5", cfg.SplitRatio)
	}

	configPath := filepath.Join(homeDir, ".config", "fsnav", "fsnav-config.json")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("default config was not written")
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	homeDir := filepath.Join(t.TempDir(), "home")
	t.Setenv("HOME", homeDir)

	cfg := &Config{
		PreviewLines:   120,
		PreviewOnStart: true,
		SplitRatio:     0.6,
		VerticalSplit:  false,
		Shell:          "/bin/zsh",
		StatusSeconds:  5,
	}

	if err := Save(cfg); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded := Load()

	if loaded.PreviewLines != 120 {
		t.Errorf("PreviewLines = %d, want 120", loaded.PreviewLines)
	}
	if !loaded.PreviewOnStart {
		t.Error("PreviewOnStart not persisted")
	}
	if loaded.VerticalSplit {
		t.Error("VerticalSplit should be false")
	}
	if loaded.Shell != "/bin/zsh" {
		t.Errorf("Shell = %q, want /bin/zsh", loaded.Shell)
	}
}

func TestConfigBounds(t *testing.T) {
	tests := []struct {
		name      string
		in        Config
		wantLines int
		wantRatio float64
		wantSecs  int
	}{
		{"zero values use defaults", Config{}, 50, 0.5, 3},
		{"too low", Config{PreviewLines: 2, SplitRatio: 0.05, StatusSeconds: 1}, 10, 0.2, 1},
		{"too high", Config{PreviewLines: 9000, SplitRatio: 0.95, StatusSeconds: 99}, 500, 0.8, 30},
		{"in range", Config{PreviewLines: 80, SplitRatio: 0.4, StatusSeconds: 7}, 80, 0.4, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.in
			cfg.clamp(Default())

			if cfg.PreviewLines != tt.wantLines {
				t.Errorf("PreviewLines = %d, want %d", cfg.PreviewLines, tt.wantLines)
			}
			if cfg.SplitRatio != tt.wantRatio {
				t.Errorf("SplitRatio = %v, want %v", cfg.SplitRatio, tt.wantRatio)
			}
			if cfg.StatusSeconds != tt.wantSecs {
				t.Errorf("StatusSeconds = %d, want %d", cfg.StatusSeconds, tt.wantSecs)
			}
		})
	}
}

func TestConfigLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "info"},
		{"debug", "debug"},
		{"WARN", "WARN"},
		{"loud", "info"},
	}

	for _, tt := range tests {
		cfg := Config{LogLevel: tt.in}
		cfg.clamp(Default())
		if cfg.LogLevel != tt.want {
			t.Errorf("LogLevel %q = %q, want %q", tt.in, cfg.LogLevel, tt.want)
		}
	}
}

func TestLoadCorruptConfig(t *testing.T) {
	homeDir := filepath.Join(t.TempDir(), "home")
	t.Setenv("HOME", homeDir)

	dir := filepath.Join(homeDir, ".config", "fsnav")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "fsnav-config.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Load()
	if cfg.PreviewLines != 50 {
		t.Errorf("corrupt config should fall back to defaults, got PreviewLines=%d", cfg.PreviewLines)
	}
}
