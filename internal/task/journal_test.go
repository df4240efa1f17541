package task

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
)

func TestJournal(t *testing.T) {
	fsys := afero.NewMemMapFs()
	fsys.MkdirAll("/t", 0o755)
	j := NewJournal(fsys, "/t")

	if err := j.TaskCreated("2025-01-01_task_1"); err != nil {
		t.Fatalf("TaskCreated: %v", err)
	}
	if err := j.StageAdvanced(StageCreated, StagePlan); err != nil {
		t.Fatalf("StageAdvanced: %v", err)
	}
	if err := j.StageSkipped(StagePlan, ArtifactPlan); err != nil {
		t.Fatalf("StageSkipped: %v", err)
	}
	if err := j.TaskCompleted("2025-01-01_task_1"); err != nil {
		t.Fatalf("TaskCompleted: %v", err)
	}

	data, err := afero.ReadFile(fsys, "/t/events.log")
	if err != nil {
		t.Fatalf("journal file missing: %v", err)
	}

	var events []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		var entry JournalEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("line is not valid JSON: %v", err)
		}
		if entry.Timestamp.IsZero() {
			t.Error("entry has no timestamp")
		}
		events = append(events, entry.Event)
	}

	want := []string{EventTaskCreated, EventStageAdvanced, EventStageSkipped, EventTaskCompleted}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, events[i], want[i])
		}
	}
}
