package task

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// NextFolderName returns the folder name for a task created at the given
// instant: {YYYY-MM-DD}_task_{n}, where n is one past the highest number
// already used for that date among the root's subfolders. Gaps in the
// numbering are not refilled; the first task of a day gets n=1.
func NextFolderName(fsys afero.Fs, root string, now time.Time) string {
	prefix := now.Format("2006-01-02") + "_task_"

	max := 0
	entries, err := afero.ReadDir(fsys, root)
	if err == nil {
		for _, entry := range entries {
			if !entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
				continue
			}
			n, err := strconv.Atoi(strings.TrimPrefix(entry.Name(), prefix))
			if err != nil || n <= 0 {
				continue
			}
			if n > max {
				max = n
			}
		}
	}

	return fmt.Sprintf("%s%d", prefix, max+1)
}
