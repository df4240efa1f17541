package task

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

const journalFileName = "events.log"

// Event type constants for the per-task journal.
const (
	EventTaskCreated   = "task_created"
	EventStageAdvanced = "stage_advanced"
	EventStageSkipped  = "stage_skipped"
	EventTaskCompleted = "task_completed"
)

// JournalEntry is a single event in a task's journal.
type JournalEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Event     string                 `json:"event"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Journal appends workflow events to a JSON Lines file inside the task
// folder. It is write-only from the engine's point of view; nothing in the
// workflow reads it back.
type Journal struct {
	fsys afero.Fs
	path string
}

// NewJournal creates a journal for the given task folder.
func NewJournal(fsys afero.Fs, taskDir string) *Journal {
	return &Journal{
		fsys: fsys,
		path: filepath.Join(taskDir, journalFileName),
	}
}

// Log appends one event to the journal file.
func (j *Journal) Log(event string, data map[string]interface{}) error {
	entry := JournalEntry{
		Timestamp: time.Now(),
		Event:     event,
		Data:      data,
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	line = append(line, '\n')

	f, err := j.fsys.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(line)
	return err
}

// TaskCreated logs a task_created event.
func (j *Journal) TaskCreated(folder string) error {
	return j.Log(EventTaskCreated, map[string]interface{}{
		"task_folder": folder,
	})
}

// StageAdvanced logs a stage_advanced event.
func (j *Journal) StageAdvanced(from, to Stage) error {
	return j.Log(EventStageAdvanced, map[string]interface{}{
		"from": string(from),
		"to":   string(to),
	})
}

// StageSkipped logs a stage_skipped event for the shortcut to completion.
func (j *Journal) StageSkipped(from Stage, source string) error {
	return j.Log(EventStageSkipped, map[string]interface{}{
		"from":   string(from),
		"source": source,
	})
}

// TaskCompleted logs a task_completed event.
func (j *Journal) TaskCompleted(folder string) error {
	return j.Log(EventTaskCompleted, map[string]interface{}{
		"task_folder": folder,
	})
}
