package dualpane

import "path/filepath"

// Side identifies a pane
type Side int

const (
	Left Side = iota
	Right
)

const (
	minRatio  = 0.2
	maxRatio  = 0.8
	ratioStep = 0.05
)

// View is the dual-pane session
type View struct {
	Left     *Pane
	Right    *Pane
	Focus    Side
	Vertical bool
	Ratio    float64
}

// New opens dir on the left and its parent on the right
func New(dir string) *View {
	return &View{
		Left:     NewPane(dir),
		Right:    NewPane(filepath.Dir(filepath.Clean(dir))),
		Focus:    Left,
		Vertical: true,
		Ratio:    0.5,
	}
}

// Focused returns the pane receiving navigation keys
func (v *View) Focused() *Pane {
	if v.Focus == Right {
		return v.Right
	}
	return v.Left
}

// Other returns the pane without focus
func (v *View) Other() *Pane {
	if v.Focus == Right {
		return v.Left
	}
	return v.Right
}

// SwitchFocus moves focus to the other pane
func (v *View) SwitchFocus() {
	if v.Focus == Left {
		v.Focus = Right
	} else {
		v.Focus = Left
	}
}

// Sync loads the focused pane's directory into the other pane
func (v *View) Sync() {
	v.Other().Load(v.Focused().Dir)
}

// ToggleLayout switches between side-by-side and stacked panes
func (v *View) ToggleLayout() {
	v.Vertical = !v.Vertical
}

// AdjustSplit moves the split by delta, clamped to [0.2, 0.8]
func (v *View) AdjustSplit(delta float64) {
	r := v.Ratio + delta
	if r < minRatio {
		r = minRatio
	}
	if r > maxRatio {
		r = maxRatio
	}
	v.Ratio = r
}

// Sizes splits total cells between the two panes by Ratio. Each side gets
// at least one cell when total allows it.
func (v *View) Sizes(total int) (first, second int) {
	first = int(float64(total) * v.Ratio)
	if total >= 2 {
		if first < 1 {
			first = 1
		}
		if first > total-1 {
			first = total - 1
		}
	}
	return first, total - first
}

// HandleKey processes one key and reports whether the view should close
func (v *View) HandleKey(key string, height int) bool {
	p := v.Focused()
	switch key {
	case "tab":
		v.SwitchFocus()
	case "up", "k":
		p.MoveUp()
	case "down", "j":
		p.MoveDown()
	case "enter", "right", "l":
		p.Enter()
	case "backspace", "left", "h":
		p.Up()
	case "f5":
		v.Sync()
	case "f6":
		v.ToggleLayout()
	case "+", "=":
		v.AdjustSplit(ratioStep)
	case "-":
		v.AdjustSplit(-ratioStep)
	case " ":
		p.ToggleMark()
	case "esc", "q":
		return true
	}
	v.Focused().AdjustScroll(height)
	return false
}
