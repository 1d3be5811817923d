// Package permissions implements the interactive octal permission editor.
package permissions

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/LFroesch/fsnav/internal/fileops"
	"github.com/LFroesch/fsnav/internal/fsentry"
)

// View selects between manual digit editing and the preset picker
type View int

const (
	DigitView View = iota
	TemplateView
)

var defaultDigits = [3]uint8{6, 4, 4}

// Change is one applied permission update
type Change struct {
	Path    string
	OldMode os.FileMode
	NewMode os.FileMode
	Time    time.Time
}

// Session is one run of the editor over a fixed set of targets
type Session struct {
	Targets       []string
	Digits        [3]uint8
	Cursor        int
	View          View
	TemplateIndex int
	Preview       bool

	// LastResult is set once the session applied its digits
	LastResult *fileops.Result
	history    []Change
}

// New opens a session with digits taken from the first target's current
// mode, or 644 when it cannot be read.
func New(targets []string) *Session {
	s := &Session{
		Targets: targets,
		Digits:  defaultDigits,
		Preview: true,
	}
	if len(targets) > 0 {
		if info, err := os.Stat(targets[0]); err == nil {
			s.Digits = DigitsOf(info.Mode())
		}
	}
	return s
}

// DigitsOf splits the permission bits of mode into owner/group/other digits
func DigitsOf(mode os.FileMode) [3]uint8 {
	perm := uint32(mode.Perm())
	return [3]uint8{uint8(perm >> 6 & 7), uint8(perm >> 3 & 7), uint8(perm & 7)}
}

// HandleKey processes one key and reports whether the editor is done
func (s *Session) HandleKey(key string) bool {
	if s.View == TemplateView {
		return s.handleTemplateKey(key)
	}

	switch key {
	case "left", "h":
		if s.Cursor > 0 {
			s.Cursor--
		}
	case "right", "l":
		if s.Cursor < 2 {
			s.Cursor++
		}
	case "up", "k":
		if s.Digits[s.Cursor] < 7 {
			s.Digits[s.Cursor]++
		}
	case "down", "j":
		if s.Digits[s.Cursor] > 0 {
			s.Digits[s.Cursor]--
		}
	case "t", "T":
		s.View = TemplateView
		s.TemplateIndex = 0
	case "p", "P":
		s.Preview = !s.Preview
	case "enter":
		s.Apply()
		return true
	case "esc":
		return true
	}
	return false
}

func (s *Session) handleTemplateKey(key string) bool {
	switch key {
	case "up", "k":
		if s.TemplateIndex > 0 {
			s.TemplateIndex--
		}
	case "down", "j":
		if s.TemplateIndex < len(Templates)-1 {
			s.TemplateIndex++
		}
	case "t", "T":
		s.View = DigitView
	case "enter":
		s.Digits = Templates[s.TemplateIndex].Digits
		s.Apply()
		return true
	case "esc":
		return true
	}
	return false
}

// Apply sets the current digits on every target, best effort
func (s *Session) Apply() {
	perm := os.FileMode(s.Mode())

	before := make(map[string]os.FileMode, len(s.Targets))
	for _, path := range s.Targets {
		if info, err := os.Stat(path); err == nil {
			before[path] = info.Mode()
		}
	}

	res := fileops.ChmodAll(s.Targets, perm)
	s.LastResult = &res

	failed := make(map[string]bool, len(res.Failures))
	for _, f := range res.Failures {
		failed[f.Path] = true
	}
	now := time.Now()
	for path, old := range before {
		if failed[path] {
			continue
		}
		s.history = append(s.history, Change{
			Path:    path,
			OldMode: old,
			NewMode: (old &^ os.ModePerm) | perm,
			Time:    now,
		})
	}
}

// History returns every change applied by this session
func (s *Session) History() []Change {
	return s.history
}

// Mode combines the digits into owner*64 + group*8 + other
func (s *Session) Mode() uint32 {
	return uint32(s.Digits[0])*64 + uint32(s.Digits[1])*8 + uint32(s.Digits[2])
}

// Octal renders the digits as "755"
func (s *Session) Octal() string {
	return octal(s.Digits)
}

// Symbolic renders the digits as "rwxr-xr-x"
func (s *Session) Symbolic() string {
	return fsentry.Symbolic(s.Mode())
}

// Binary renders each digit as three bits, e.g. "111 101 101"
func (s *Session) Binary() string {
	return fmt.Sprintf("%03b %03b %03b", s.Digits[0], s.Digits[1], s.Digits[2])
}

// Explanations describes each digit in words and ends with a security remark
func (s *Session) Explanations() []string {
	return []string{
		"Owner can: " + Describe(s.Digits[0]),
		"Group members can: " + Describe(s.Digits[1]),
		"Everyone else can: " + Describe(s.Digits[2]),
		SecurityRemark(s.Digits),
	}
}

// Describe lists the access a single digit grants
func Describe(digit uint8) string {
	var perms []string
	if digit&4 != 0 {
		perms = append(perms, "read")
	}
	if digit&2 != 0 {
		perms = append(perms, "write")
	}
	if digit&1 != 0 {
		perms = append(perms, "execute/enter")
	}
	if len(perms) == 0 {
		return "nothing (no access)"
	}
	return strings.Join(perms, ", ")
}

// SecurityRemark returns the canned assessment for well-known modes
func SecurityRemark(digits [3]uint8) string {
	if remark, ok := securityRemarks[octal(digits)]; ok {
		return remark
	}
	if digits[2]&2 != 0 {
		return "⚠️ World-writable - Consider restricting"
	}
	return "Custom permissions set"
}

func octal(d [3]uint8) string {
	return fmt.Sprintf("%d%d%d", d[0], d[1], d[2])
}
