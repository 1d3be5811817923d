// Package logger writes a leveled log to ~/.config/fsnav/fsnav.log. The
// terminal belongs to the interface, so nothing is ever printed.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level orders messages by severity
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel accepts a level name in any case
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

var (
	logFile  *os.File
	mu       sync.Mutex
	enabled  = true
	minLevel = LevelInfo
	pid      = os.Getpid()
)

const (
	maxLogSize = 5 * 1024 * 1024 // 5MB
	logName    = "fsnav.log"
	timeLayout = "2006-01-02T15:04:05.000"
)

// Init opens ~/.config/fsnav/fsnav.log, rotating it first when it grew too large
func Init() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("cannot get home directory: %w", err)
	}
	return InitAt(filepath.Join(homeDir, ".config", "fsnav"))
}

// InitAt opens the log file inside dir
func InitAt(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create log directory: %w", err)
	}

	logPath := filepath.Join(dir, logName)
	rotate(logPath)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}

	mu.Lock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = file
	mu.Unlock()
	return nil
}

// rotate keeps a single .old backup once the log exceeds maxLogSize
func rotate(logPath string) {
	info, err := os.Stat(logPath)
	if err != nil || info.Size() <= maxLogSize {
		return
	}
	oldPath := logPath + ".old"
	os.Remove(oldPath)
	os.Rename(logPath, oldPath)
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// SetLevel drops messages below l
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = l
}

// Disable disables logging (useful for tests)
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// Enable enables logging
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

func Debug(format string, args ...any) {
	log(LevelDebug, format, args...)
}

func Info(format string, args ...any) {
	log(LevelInfo, format, args...)
}

func Warn(format string, args ...any) {
	log(LevelWarn, format, args...)
}

func Error(format string, args ...any) {
	log(LevelError, format, args...)
}

// log writes "<time> pid=<pid> <LEVEL> <message>". The pid separates
// concurrent sessions, e.g. a root and a user instance sharing one home.
func log(level Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || logFile == nil || level < minLevel {
		return
	}

	message := fmt.Sprintf(format, args...)
	fmt.Fprintf(logFile, "%s pid=%d %-5s %s\n", time.Now().Format(timeLayout), pid, level, message)
}
