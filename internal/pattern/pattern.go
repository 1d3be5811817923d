// Package pattern matches entry names against glob, regular expression or
// plain substring patterns.
package pattern

import (
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

// Kind is the interpretation chosen for a pattern
type Kind int

const (
	Empty Kind = iota
	Glob
	Regex
	Substring
)

func (k Kind) String() string {
	switch k {
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	case Substring:
		return "text"
	default:
		return "empty"
	}
}

// Classify reports how Matches will interpret pattern. A pattern containing
// '*' is a glob when its translation compiles, otherwise a valid regular
// expression, otherwise a literal.
func Classify(pattern string) Kind {
	if pattern == "" {
		return Empty
	}
	if strings.Contains(pattern, "*") {
		if _, err := regexp.Compile(globToRegexp(pattern)); err == nil {
			return Glob
		}
	}
	if _, err := regexp.Compile(pattern); err == nil {
		return Regex
	}
	return Substring
}

// Matcher is a compiled pattern
type Matcher struct {
	kind  Kind
	raw   string
	glob  glob.Glob
	regex *regexp.Regexp
}

// Compile prepares pattern for repeated matching
func Compile(pattern string) Matcher {
	m := Matcher{kind: Classify(pattern), raw: pattern}

	switch m.kind {
	case Glob:
		if plainGlob(pattern) {
			if g, err := glob.Compile(pattern); err == nil {
				m.glob = g
				break
			}
		}
		m.regex = regexp.MustCompile(globToRegexp(pattern))
	case Regex:
		m.regex = regexp.MustCompile(pattern)
	}
	return m
}

// Kind returns the interpretation of the compiled pattern
func (m Matcher) Kind() Kind {
	return m.kind
}

// Match reports whether name matches
func (m Matcher) Match(name string) bool {
	switch m.kind {
	case Glob:
		if m.glob != nil {
			return m.glob.Match(name)
		}
		return m.regex != nil && m.regex.MatchString(name)
	case Regex:
		return m.regex.MatchString(name)
	case Substring:
		return strings.Contains(name, m.raw)
	default:
		return false
	}
}

// Matches is Compile(pattern).Match(name)
func Matches(pattern, name string) bool {
	return Compile(pattern).Match(name)
}

// globToRegexp turns a glob into an anchored expression. Only '.', '*' and
// '?' are rewritten; every other character keeps its regexp meaning.
func globToRegexp(pattern string) string {
	expr := strings.ReplaceAll(pattern, ".", `\.`)
	expr = strings.ReplaceAll(expr, "*", ".*")
	expr = strings.ReplaceAll(expr, "?", ".")
	return "^" + expr + "$"
}

// plainGlob reports whether pattern uses no regexp syntax besides the glob
// wildcards, so the glob compiler and the translation agree on it
func plainGlob(pattern string) bool {
	return !strings.ContainsAny(pattern, `\()[]{}|+^$`)
}
