package cli

import (
	"os"

	"github.com/spf13/afero"

	"github.com/pablasso/guia/internal/config"
	"github.com/pablasso/guia/internal/tui"
	"github.com/pablasso/guia/internal/workflow"
	"github.com/pablasso/guia/internal/workspace"
)

// newEngine wires the workflow engine to the real environment: the OS file
// system, the user config file, Bubble Tea prompts and the editor opener.
func newEngine() (*workflow.Engine, error) {
	fsys := afero.NewOsFs()
	store, err := config.NewFileStore(fsys)
	if err != nil {
		return nil, err
	}
	opener := workspace.Opener{Out: os.Stdout}
	return workflow.New(fsys, store, tui.Prompter{}, opener, os.Stdout), nil
}

// NewTask starts a fresh task workflow. Exposed for the home screen.
func NewTask() error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	return engine.StartNew()
}

// ResumeTask resumes an incomplete task, a specific one when name is
// non-empty. Exposed for the home screen.
func ResumeTask(name string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	if name != "" {
		return engine.ResumeTask(name)
	}
	return engine.Resume()
}
