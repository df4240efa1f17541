package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Option is one entry in a select prompt.
type Option struct {
	Label  string
	Detail string
}

// SelectModel is a single-select cursor list. Enter confirms the item under
// the cursor; esc dismisses the prompt without choosing.
type SelectModel struct {
	title   string
	options []Option
	cursor  int
	choice  int // -1 until confirmed
	done    bool
}

// NewSelectModel creates a select prompt over the given options.
func NewSelectModel(title string, options []Option) SelectModel {
	return SelectModel{
		title:   title,
		options: options,
		choice:  -1,
	}
}

// Init implements tea.Model.
func (m SelectModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "q", "ctrl+c":
			m.done = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case "enter":
			m.choice = m.cursor
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m SelectModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.title))
	b.WriteString("\n\n")

	for i, opt := range m.options {
		indicator := "○"
		line := fmt.Sprintf("%s %s", indicator, opt.Label)
		if i == m.cursor {
			line = SelectedStyle.Render(fmt.Sprintf("● %s", opt.Label))
		} else {
			line = SubtleStyle.Render(line)
		}
		if opt.Detail != "" {
			line += "  " + SubtleStyle.Render(opt.Detail)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render("↑↓ Navigate · Enter Select · Esc Cancel"))
	b.WriteString("\n")
	return b.String()
}

// Choice returns the confirmed option index, or -1 if the prompt was
// dismissed.
func (m SelectModel) Choice() int {
	return m.choice
}

// RunSelect shows the prompt and blocks until the user chooses or dismisses.
func RunSelect(title string, options []Option) (int, error) {
	final, err := tea.NewProgram(NewSelectModel(title, options)).Run()
	if err != nil {
		return -1, err
	}
	return final.(SelectModel).Choice(), nil
}
