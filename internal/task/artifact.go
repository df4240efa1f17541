package task

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Artifact file names, one per document-producing stage.
const (
	ArtifactPlan              = "plan.md"
	ArtifactPlanReview        = "plan-review.md"
	ArtifactPlanUpdated       = "plan-updated.md"
	ArtifactPlanUpdatedReview = "plan-updated-review.md"
	ArtifactPlanFinal         = "plan-final.md"
)

// EnsureArtifact makes sure the named artifact exists in taskDir and returns
// its full path. A missing file is created empty; an existing file is left
// exactly as it is, never truncated.
func EnsureArtifact(fsys afero.Fs, taskDir, name string) (string, error) {
	path := filepath.Join(taskDir, name)

	if _, err := fsys.Stat(path); err == nil {
		return path, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to check %s: %w", name, err)
	}

	if err := afero.WriteFile(fsys, path, []byte{}, 0o644); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", name, err)
	}
	return path, nil
}

// CopyArtifact duplicates the content of src into dst inside taskDir,
// overwriting dst, and returns dst's full path. A missing src copies as
// empty content: the shortcut to completion must succeed even when the
// earlier document was never written.
func CopyArtifact(fsys afero.Fs, taskDir, src, dst string) (string, error) {
	content, err := afero.ReadFile(fsys, filepath.Join(taskDir, src))
	if err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to read %s: %w", src, err)
		}
		content = []byte{}
	}

	path := filepath.Join(taskDir, dst)
	if err := afero.WriteFile(fsys, path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return path, nil
}
