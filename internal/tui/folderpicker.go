package tui

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
)

// FolderPickerModel lets the user navigate the file system and select a
// directory. Esc dismisses without selecting.
type FolderPickerModel struct {
	title    string
	picker   filepicker.Model
	selected string
	done     bool
	err      error
}

// NewFolderPickerModel creates a folder picker starting at the user's home
// directory, falling back to the current directory.
func NewFolderPickerModel(title string) FolderPickerModel {
	fp := filepicker.New()
	if home, err := os.UserHomeDir(); err == nil {
		fp.CurrentDirectory = home
	}
	fp.ShowHidden = false
	fp.ShowPermissions = false
	fp.ShowSize = false
	fp.DirAllowed = true
	fp.FileAllowed = false
	fp.Height = 15

	return FolderPickerModel{
		title:  title,
		picker: fp,
	}
}

// Init implements tea.Model.
func (m FolderPickerModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update implements tea.Model.
func (m FolderPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		abs, err := filepath.Abs(path)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.selected = abs
		m.done = true
		return m, tea.Quit
	}

	return m, cmd
}

// View implements tea.Model.
func (m FolderPickerModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.picker.View())
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render("↑↓ Navigate · Enter Select · Esc Cancel"))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen directory, or "" if the picker was dismissed.
func (m FolderPickerModel) Selected() string {
	return m.selected
}

// RunFolderPicker shows the picker and blocks until a directory is chosen
// or the prompt is dismissed.
func RunFolderPicker(title string) (string, error) {
	final, err := tea.NewProgram(NewFolderPickerModel(title)).Run()
	if err != nil {
		return "", err
	}
	return final.(FolderPickerModel).Selected(), nil
}
