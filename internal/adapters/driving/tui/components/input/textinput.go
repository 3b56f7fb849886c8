// Package input provides text input components for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/holdings-cli/internal/adapters/driving/tui/styles"
)

// cusipLength is the fixed length of a CUSIP.
const cusipLength = 9

// CUSIPInput wraps a bubbles textinput for entering a CUSIP.
// Input is upper-cased and limited to nine characters.
type CUSIPInput struct {
	textinput textinput.Model
	styles    *styles.Styles
}

// NewCUSIPInput creates a new CUSIP input component.
func NewCUSIPInput(s *styles.Styles) *CUSIPInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "037833100"
	ti.CharLimit = cusipLength
	ti.Width = cusipLength + 2
	ti.Focus()

	return &CUSIPInput{
		textinput: ti,
		styles:    s,
	}
}

// Init initialises the input.
func (c *CUSIPInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (c *CUSIPInput) Update(msg tea.Msg) (*CUSIPInput, tea.Cmd) {
	var cmd tea.Cmd
	c.textinput, cmd = c.textinput.Update(msg)
	if v := c.textinput.Value(); v != strings.ToUpper(v) {
		c.textinput.SetValue(strings.ToUpper(v))
	}
	return c, cmd
}

// View renders the input.
func (c *CUSIPInput) View() string {
	label := c.styles.Title.Render("CUSIP: ")
	field := c.styles.InputField.Render(c.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the trimmed CUSIP.
func (c *CUSIPInput) Value() string {
	return strings.TrimSpace(c.textinput.Value())
}

// Complete reports whether a full-length CUSIP has been entered.
func (c *CUSIPInput) Complete() bool {
	return len(c.Value()) == cusipLength
}

// SetValue sets the input value.
func (c *CUSIPInput) SetValue(value string) {
	c.textinput.SetValue(strings.ToUpper(value))
}

// Focus sets focus on the input.
func (c *CUSIPInput) Focus() tea.Cmd {
	return c.textinput.Focus()
}

// Blur removes focus from the input.
func (c *CUSIPInput) Blur() {
	c.textinput.Blur()
}

// Focused returns whether the input is focused.
func (c *CUSIPInput) Focused() bool {
	return c.textinput.Focused()
}

// Reset clears the input.
func (c *CUSIPInput) Reset() {
	c.textinput.Reset()
}
