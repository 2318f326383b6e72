package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ghostnote/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

const maxSuggestions = 5

// Palette is the command line overlay. Hints are usage strings such as
// "seal <days> <prediction>"; the first word of each is completable with tab.
type Palette struct {
	input   textinput.Model
	hints   []string
	history []string
	visible bool
	width   int
}

// NewPalette creates an inactive Palette that suggests the given commands.
func NewPalette(hints []string) Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command…"
	ti.CharLimit = 256
	return Palette{input: ti, hints: hints}
}

// Visible reports whether the palette is currently shown.
func (p Palette) Visible() bool { return p.visible }

// Open shows the palette, clears the input, and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

// OpenWith opens the palette with value already typed.
func (p *Palette) OpenWith(value string) tea.Cmd {
	cmd := p.Open()
	p.input.SetValue(value)
	p.input.CursorEnd()
	return cmd
}

// Value returns the text currently typed.
func (p Palette) Value() string { return p.input.Value() }

// SetWidth sets the render width for the overlay.
func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			if val != "" {
				p.history = append(p.history, val)
			}
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			if s := p.Suggestions(); len(s) == 1 {
				p.input.SetValue(command(s[0]) + " ")
				p.input.CursorEnd()
			}
			return p, nil
		case "up":
			if n := len(p.history); n > 0 {
				p.input.SetValue(p.history[n-1])
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// Suggestions lists the hints whose command starts with what has been typed
// so far. Once arguments are being typed only the matching command remains.
func (p Palette) Suggestions() []string {
	typed := strings.ToLower(strings.TrimLeft(p.input.Value(), " "))
	word, _, hasArgs := strings.Cut(typed, " ")
	var out []string
	for _, h := range p.hints {
		name := command(h)
		if hasArgs && name != word {
			continue
		}
		if !strings.HasPrefix(name, word) {
			continue
		}
		out = append(out, h)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

func command(hint string) string {
	name, _, _ := strings.Cut(hint, " ")
	return name
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	matching := p.Suggestions()

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if len(matching) > 0 {
		sb.WriteString("\n")
		for _, h := range matching {
			sb.WriteString(hintStyle.Render("  "+h) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
