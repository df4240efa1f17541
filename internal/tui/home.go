package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Action is what the user picked on the home screen.
type Action int

const (
	ActionNone Action = iota
	ActionNew
	ActionResume
	ActionStatus
)

// menuItem is one entry on the home menu.
type menuItem struct {
	label       string
	shortcut    string
	description string
	action      Action
}

var homeMenu = []menuItem{
	{label: "New task", shortcut: "n", description: "Start a new planning task", action: ActionNew},
	{label: "Resume task", shortcut: "r", description: "Continue an incomplete task", action: ActionResume},
	{label: "Status", shortcut: "s", description: "List all tasks and their stages", action: ActionStatus},
	{label: "Quit", shortcut: "q", action: ActionNone},
}

// HomeModel is the landing screen shown when guia runs without arguments.
type HomeModel struct {
	cursor int
	chosen Action
	width  int
	height int
}

// NewHomeModel creates the home screen model.
func NewHomeModel() HomeModel {
	return HomeModel{}
}

// Init implements tea.Model.
func (m HomeModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m HomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.chosen = ActionNone
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(homeMenu)-1 {
				m.cursor++
			}
		case "enter":
			m.chosen = homeMenu[m.cursor].action
			return m, tea.Quit
		default:
			for _, item := range homeMenu {
				if msg.String() == item.shortcut {
					m.chosen = item.action
					return m, tea.Quit
				}
			}
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m HomeModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	title := TitleStyle.Render("G U I A")
	tagline := SubtleStyle.Render("Guided planning workflows")

	var menuLines []string
	for i, item := range homeMenu {
		line := "[" + item.shortcut + "] " + item.label
		if i == m.cursor {
			line = SelectedStyle.Render(line)
		} else {
			line = SubtleStyle.Render(line)
		}
		if item.description != "" {
			line += "  " + SubtleStyle.Render(item.description)
		}
		menuLines = append(menuLines, line)
	}
	menu := strings.Join(menuLines, "\n")

	contentHeight := 4 + len(menuLines)
	topPadding := (m.height - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("\n", topPadding))
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tagline))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, menu))
	return b.String()
}

// Chosen returns the action picked by the user.
func (m HomeModel) Chosen() Action {
	return m.chosen
}

// Cursor returns the current cursor position.
func (m HomeModel) Cursor() int {
	return m.cursor
}

// RunHome shows the home screen and returns the chosen action.
func RunHome() (Action, error) {
	final, err := tea.NewProgram(NewHomeModel(), tea.WithAltScreen()).Run()
	if err != nil {
		return ActionNone, err
	}
	return final.(HomeModel).Chosen(), nil
}
