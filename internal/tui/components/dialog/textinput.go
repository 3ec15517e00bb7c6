package dialog

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/emerginginv/trace-aid-sub006/internal/tui/styles"
)

// SimpleTextInput is a basic single-line text input for dialog fields.
type SimpleTextInput struct {
	value       string
	placeholder string
	focused     bool
	cursorPos   int
}

// NewSimpleTextInput creates a new text input
func NewSimpleTextInput() *SimpleTextInput {
	return &SimpleTextInput{}
}

// Value returns the current value
func (t *SimpleTextInput) Value() string {
	return t.value
}

// SetValue sets the value
func (t *SimpleTextInput) SetValue(value string) {
	t.value = value
	t.cursorPos = len(value)
}

// Placeholder sets the placeholder text
func (t *SimpleTextInput) Placeholder(placeholder string) {
	t.placeholder = placeholder
}

// Focus focuses the input
func (t *SimpleTextInput) Focus() {
	t.focused = true
}

// Blur removes focus
func (t *SimpleTextInput) Blur() {
	t.focused = false
}

// Update handles input events
func (t *SimpleTextInput) Update(msg tea.Msg) tea.Cmd {
	if !t.focused {
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "backspace":
			if t.cursorPos > 0 {
				t.value = t.value[:t.cursorPos-1] + t.value[t.cursorPos:]
				t.cursorPos--
			}
		case "left":
			if t.cursorPos > 0 {
				t.cursorPos--
			}
		case "right":
			if t.cursorPos < len(t.value) {
				t.cursorPos++
			}
		case "home", "ctrl+a":
			t.cursorPos = 0
		case "end", "ctrl+e":
			t.cursorPos = len(t.value)
		case "ctrl+u":
			t.value = t.value[t.cursorPos:]
			t.cursorPos = 0
		default:
			// Regular character input
			if len(msg.String()) == 1 {
				t.value = t.value[:t.cursorPos] + msg.String() + t.value[t.cursorPos:]
				t.cursorPos++
			}
		}
	}

	return nil
}

// View renders the input
func (t *SimpleTextInput) View() string {
	theme := styles.CurrentTheme()
	s := theme.S()

	if !t.focused {
		if t.value == "" && t.placeholder != "" {
			return s.Muted.Render(t.placeholder)
		}
		return s.Text.Render(t.value)
	}

	cursorStyle := s.Base.
		Background(theme.Primary).
		Foreground(theme.BgBase)

	display := t.value
	if t.cursorPos < len(display) {
		before := display[:t.cursorPos]
		after := display[t.cursorPos+1:]
		display = before + cursorStyle.Render(string(display[t.cursorPos])) + after
	} else {
		display += cursorStyle.Render(" ")
	}

	return s.Text.Render(display)
}
