package task

import (
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// Info pairs a task folder with its loaded progress record.
type Info struct {
	Dir    string // full path to the task folder
	Name   string // folder name, e.g. 2025-01-01_task_1
	Record ProgressRecord
}

// List returns every subfolder of root that carries a readable progress
// record, most recently updated first. A missing or unreadable root yields
// an empty list; from the caller's perspective that is indistinguishable
// from having no tasks.
func List(fsys afero.Fs, root string) []Info {
	var tasks []Info

	entries, err := afero.ReadDir(fsys, root)
	if err != nil {
		return tasks
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		rec, ok := LoadRecord(fsys, dir)
		if !ok {
			continue
		}
		tasks = append(tasks, Info{Dir: dir, Name: entry.Name(), Record: rec})
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Record.UpdatedAt.After(tasks[j].Record.UpdatedAt)
	})
	return tasks
}

// FindIncomplete returns the tasks under root whose workflow has not
// reached the completed stage, most recently updated first.
func FindIncomplete(fsys afero.Fs, root string) []Info {
	var incomplete []Info
	for _, t := range List(fsys, root) {
		if t.Record.CurrentStage != StageCompleted {
			incomplete = append(incomplete, t)
		}
	}
	return incomplete
}
