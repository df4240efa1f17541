// Package workspace surfaces artifact documents to the user: it launches
// the configured editor, prints the path, and copies it to the clipboard.
package workspace

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/atotto/clipboard"
)

// Opener implements workflow.Opener against the local environment.
type Opener struct {
	Out io.Writer
}

// Open prints the artifact path, copies it to the clipboard and, when
// $EDITOR or $VISUAL is set, opens the file in that editor and waits for it
// to exit. The clipboard copy is best effort; a headless environment
// without a clipboard is not an error.
func (o Opener) Open(path string) error {
	if err := clipboard.WriteAll(path); err == nil {
		fmt.Fprintf(o.Out, "%s (path copied to clipboard)\n", path)
	} else {
		fmt.Fprintln(o.Out, path)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		return nil
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}
	return nil
}
