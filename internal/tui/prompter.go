package tui

import "github.com/pablasso/guia/internal/workflow"

// Prompter implements workflow.Prompter with Bubble Tea programs.
type Prompter struct{}

// Select shows a single-select prompt and returns the chosen index, or
// workflow.Dismissed when the user cancels.
func (Prompter) Select(title string, choices []workflow.Choice) (int, error) {
	options := make([]Option, len(choices))
	for i, c := range choices {
		options[i] = Option{Label: c.Label, Detail: c.Detail}
	}
	return RunSelect(title, options)
}

// PickFolder shows a directory picker and returns the chosen path, or ""
// when the user cancels.
func (Prompter) PickFolder(title string) (string, error) {
	return RunFolderPicker(title)
}
