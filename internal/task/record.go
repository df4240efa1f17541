package task

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/pablasso/guia/internal/fsutil"
)

// RecordFileName is the fixed name of the progress record inside a task folder.
const RecordFileName = "progress.json"

// ProgressRecord tracks one task's position in the workflow. Records are
// rewritten in full at every stage transition and never deleted here.
type ProgressRecord struct {
	TaskFolder   string    `json:"taskFolder"`
	CurrentStage Stage     `json:"currentStage"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewRecord builds a fresh record for a just-created task folder. Both
// timestamps are set to the same instant.
func NewRecord(folder string) ProgressRecord {
	now := time.Now()
	return ProgressRecord{
		TaskFolder:   folder,
		CurrentStage: StageCreated,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Advance returns a copy of rec positioned at the given stage with a
// refreshed UpdatedAt. The new UpdatedAt is strictly greater than the old
// one even when the clock has not visibly moved between transitions.
// Forward motion is not validated here; the workflow engine only ever
// moves forward.
func Advance(rec ProgressRecord, stage Stage) ProgressRecord {
	now := time.Now()
	if !now.After(rec.UpdatedAt) {
		now = rec.UpdatedAt.Add(time.Nanosecond)
	}
	rec.CurrentStage = stage
	rec.UpdatedAt = now
	return rec
}

// SaveRecord serializes rec as pretty-printed JSON and writes it to
// progress.json in taskDir, fully replacing any previous content. The write
// goes through a temp file + rename so a crash mid-write cannot corrupt an
// existing record.
func SaveRecord(fsys afero.Fs, taskDir string, rec ProgressRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal progress record: %w", err)
	}
	data = append(data, '\n')

	path := filepath.Join(taskDir, RecordFileName)
	if err := fsutil.WriteFileAtomic(fsys, path, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", RecordFileName, err)
	}
	return nil
}

// LoadRecord reads the progress record from taskDir. A missing file,
// unreadable content, malformed JSON or an unknown stage all yield ok=false;
// callers treat that as "this folder has no progress record" rather than an
// error.
func LoadRecord(fsys afero.Fs, taskDir string) (ProgressRecord, bool) {
	data, err := afero.ReadFile(fsys, filepath.Join(taskDir, RecordFileName))
	if err != nil {
		return ProgressRecord{}, false
	}

	var rec ProgressRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return ProgressRecord{}, false
	}
	if rec.TaskFolder == "" || !rec.CurrentStage.IsValid() {
		return ProgressRecord{}, false
	}
	return rec, true
}
