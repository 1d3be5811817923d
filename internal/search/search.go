// Package search matches the entries of one listing by name and, optionally,
// by file content.
package search

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"github.com/LFroesch/fsnav/internal/fsentry"
	"github.com/LFroesch/fsnav/internal/logger"
)

const (
	maxContentSize  = 10 * 1024 * 1024 // 10MiB
	maxFileMatches  = 5
	maxContextRunes = 100
)

var textExtensions = map[string]bool{
	"txt": true, "md": true, "rs": true, "toml": true, "yaml": true, "yml": true,
	"json": true, "js": true, "ts": true, "py": true, "sh": true, "bash": true,
	"c": true, "cpp": true, "h": true, "hpp": true, "java": true, "go": true,
	"rb": true, "php": true, "html": true, "css": true, "xml": true,
	"conf": true, "cfg": true, "ini": true, "log": true,
}

var textNames = map[string]bool{
	"readme": true, "license": true, "makefile": true, "dockerfile": true, "changelog": true,
}

// Result is one hit: a filename match when LineNumber is 0, otherwise a
// content match with its 1-based line number and context
type Result struct {
	Entry      fsentry.Entry
	LineNumber int
	Line       string
}

// IsContent reports whether the hit came from the file's content
func (r Result) IsContent() bool {
	return r.LineNumber > 0
}

// Engine holds the query, its toggles and the latest results
type Engine struct {
	Query          string
	UseRegex       bool
	CaseSensitive  bool
	SearchContents bool

	Results []Result
	Index   int
}

// New returns an engine with every toggle off
func New() *Engine {
	return &Engine{}
}

type matcher func(string) bool

func (e *Engine) matcher() (matcher, bool) {
	if e.UseRegex {
		re, err := regexp.Compile(e.Query)
		if err != nil {
			return nil, false
		}
		return re.MatchString, true
	}
	if e.CaseSensitive {
		q := e.Query
		return func(s string) bool { return strings.Contains(s, q) }, true
	}
	fold := cases.Fold()
	q := fold.String(e.Query)
	return func(s string) bool { return strings.Contains(fold.String(s), q) }, true
}

// Execute replaces the results with the matches found in listing. An empty
// query or an invalid regular expression yields no results.
func (e *Engine) Execute(listing fsentry.Listing) {
	e.Clear()
	if e.Query == "" {
		return
	}

	match, ok := e.matcher()
	if !ok {
		return
	}

	for _, entry := range listing {
		if entry.IsParent() {
			continue
		}

		if match(entry.Name) {
			e.Results = append(e.Results, Result{Entry: entry})
		}

		if e.SearchContents && !entry.IsDir && entry.IsAccessible {
			e.Results = append(e.Results, scanFile(entry, match)...)
		}
	}
}

// IsTextFile judges a file searchable by extension or conventional name
func IsTextFile(path string) bool {
	name := filepath.Base(path)
	if ext := filepath.Ext(name); ext != "" {
		return textExtensions[strings.ToLower(ext[1:])]
	}
	return textNames[strings.ToLower(name)]
}

// scanFile returns up to maxFileMatches matching lines. Oversized, binary or
// unreadable files produce nothing.
func scanFile(entry fsentry.Entry, match matcher) []Result {
	if !IsTextFile(entry.Path) {
		return nil
	}
	info, err := os.Stat(entry.Path)
	if err != nil || info.Size() > maxContentSize {
		return nil
	}

	f, err := os.Open(entry.Path)
	if err != nil {
		logger.Warn("Cannot open %s for content search: %v", entry.Path, err)
		return nil
	}
	defer f.Close()

	var results []Result
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxContentSize)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if !match(text) {
			continue
		}
		results = append(results, Result{Entry: entry, LineNumber: line, Line: truncate(text)})
		if len(results) >= maxFileMatches {
			break
		}
	}
	return results
}

func truncate(line string) string {
	runes := []rune(line)
	if len(runes) <= maxContextRunes {
		return line
	}
	return string(runes[:maxContextRunes]) + "..."
}

// Current returns the result under the cursor
func (e *Engine) Current() (Result, bool) {
	if len(e.Results) == 0 {
		return Result{}, false
	}
	return e.Results[e.Index], true
}

// Next advances the cursor, wrapping to the first result
func (e *Engine) Next() {
	if len(e.Results) == 0 {
		return
	}
	e.Index = (e.Index + 1) % len(e.Results)
}

// Previous moves the cursor back, wrapping to the last result
func (e *Engine) Previous() {
	if len(e.Results) == 0 {
		return
	}
	e.Index = (e.Index - 1 + len(e.Results)) % len(e.Results)
}

// ToggleRegex flips regex mode and drops stale results
func (e *Engine) ToggleRegex() {
	e.UseRegex = !e.UseRegex
	e.Clear()
}

// ToggleCase flips case sensitivity and drops stale results
func (e *Engine) ToggleCase() {
	e.CaseSensitive = !e.CaseSensitive
	e.Clear()
}

// ToggleContents flips content search and drops stale results
func (e *Engine) ToggleContents() {
	e.SearchContents = !e.SearchContents
	e.Clear()
}

// Clear drops the results and resets the cursor
func (e *Engine) Clear() {
	e.Results = nil
	e.Index = 0
}
