package workflow

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/pablasso/guia/internal/config"
	"github.com/pablasso/guia/internal/task"
)

// fakeStore is an in-memory config.Store.
type fakeStore struct {
	cfg   config.Settings
	saved []config.Settings
}

func (s *fakeStore) Load() (config.Settings, error) { return s.cfg, nil }
func (s *fakeStore) Save(cfg config.Settings) error {
	s.cfg = cfg
	s.saved = append(s.saved, cfg)
	return nil
}

// fakePrompter answers prompts from a script. Once the script runs out,
// every prompt is dismissed.
type fakePrompter struct {
	selections []int
	folders    []string
	titles     []string
	choices    [][]Choice
}

func (p *fakePrompter) Select(title string, choices []Choice) (int, error) {
	p.titles = append(p.titles, title)
	p.choices = append(p.choices, choices)
	if len(p.selections) == 0 {
		return Dismissed, nil
	}
	answer := p.selections[0]
	p.selections = p.selections[1:]
	return answer, nil
}

func (p *fakePrompter) PickFolder(title string) (string, error) {
	p.titles = append(p.titles, title)
	if len(p.folders) == 0 {
		return "", nil
	}
	dir := p.folders[0]
	p.folders = p.folders[1:]
	return dir, nil
}

// fakeOpener records the artifacts it was asked to present.
type fakeOpener struct {
	opened []string
}

func (o *fakeOpener) Open(path string) error {
	o.opened = append(o.opened, path)
	return nil
}

type fixture struct {
	fsys    afero.Fs
	store   *fakeStore
	prompt  *fakePrompter
	opener  *fakeOpener
	out     *bytes.Buffer
	engine  *Engine
}

func newFixture(root string, selections ...int) *fixture {
	f := &fixture{
		fsys:   afero.NewMemMapFs(),
		store:  &fakeStore{cfg: config.Settings{TasksRoot: root}},
		prompt: &fakePrompter{selections: selections},
		opener: &fakeOpener{},
		out:    &bytes.Buffer{},
	}
	f.engine = New(f.fsys, f.store, f.prompt, f.opener, f.out)
	return f
}

func (f *fixture) seedTask(t *testing.T, root, name string, stage task.Stage) {
	t.Helper()
	rec := task.ProgressRecord{
		TaskFolder:   name,
		CurrentStage: stage,
		CreatedAt:    time.Now().Add(-time.Hour),
		UpdatedAt:    time.Now().Add(-time.Minute),
	}
	if err := task.SaveRecord(f.fsys, root+"/"+name, rec); err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
}

func (f *fixture) loadRecord(t *testing.T, root, name string) task.ProgressRecord {
	t.Helper()
	rec, ok := task.LoadRecord(f.fsys, root+"/"+name)
	if !ok {
		t.Fatalf("no record in %s", name)
	}
	return rec
}

func todayFolder(n string) string {
	return time.Now().Format("2006-01-02") + "_task_" + n
}

func TestStartNewProducesEveryArtifact(t *testing.T) {
	f := newFixture("/tasks", 0, 0, 0, 0, 0)

	if err := f.engine.StartNew(); err != nil {
		t.Fatalf("StartNew: %v", err)
	}

	name := todayFolder("1")
	rec := f.loadRecord(t, "/tasks", name)
	if rec.CurrentStage != task.StageCompleted {
		t.Errorf("stage = %q, want completed", rec.CurrentStage)
	}

	for _, artifact := range []string{
		task.ArtifactPlan,
		task.ArtifactPlanReview,
		task.ArtifactPlanUpdated,
		task.ArtifactPlanUpdatedReview,
		task.ArtifactPlanFinal,
	} {
		if ok, _ := afero.Exists(f.fsys, "/tasks/"+name+"/"+artifact); !ok {
			t.Errorf("artifact %s missing", artifact)
		}
	}

	if len(f.prompt.titles) != 5 {
		t.Errorf("got %d prompts, want 5", len(f.prompt.titles))
	}
	if len(f.opener.opened) != 5 {
		t.Errorf("opened %d artifacts, want 5", len(f.opener.opened))
	}
}

func TestDismissingFirstPromptLeavesTaskAtCreated(t *testing.T) {
	f := newFixture("/tasks") // empty script: every prompt dismissed

	if err := f.engine.StartNew(); err != nil {
		t.Fatalf("StartNew: %v", err)
	}

	name := todayFolder("1")
	rec := f.loadRecord(t, "/tasks", name)
	if rec.CurrentStage != task.StageCreated {
		t.Fatalf("stage = %q, want created", rec.CurrentStage)
	}
	firstTitle := f.prompt.titles[0]

	// A second resume re-offers exactly the same first prompt.
	if err := f.engine.Resume(); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if got := f.prompt.titles[len(f.prompt.titles)-1]; got != firstTitle {
		t.Errorf("resume prompt = %q, want %q", got, firstTitle)
	}
	rec = f.loadRecord(t, "/tasks", name)
	if rec.CurrentStage != task.StageCreated {
		t.Errorf("stage after dismissed resume = %q, want created", rec.CurrentStage)
	}
}

func TestSkipCopiesPlanToFinal(t *testing.T) {
	f := newFixture("/tasks", 1)
	f.seedTask(t, "/tasks", "2025-01-01_task_1", task.StagePlan)
	afero.WriteFile(f.fsys, "/tasks/2025-01-01_task_1/plan.md", []byte("the draft"), 0o644)

	if err := f.engine.Resume(); err != nil {
		t.Fatalf("Resume: %v", err)
	}

	rec := f.loadRecord(t, "/tasks", "2025-01-01_task_1")
	if rec.CurrentStage != task.StageCompleted {
		t.Errorf("stage = %q, want completed", rec.CurrentStage)
	}
	data, err := afero.ReadFile(f.fsys, "/tasks/2025-01-01_task_1/plan-final.md")
	if err != nil {
		t.Fatalf("plan-final.md missing: %v", err)
	}
	if string(data) != "the draft" {
		t.Errorf("plan-final.md = %q, want the plan content", data)
	}
}

func TestProducingFinalCompletesDirectly(t *testing.T) {
	f := newFixture("/tasks", 0)
	f.seedTask(t, "/tasks", "2025-01-01_task_1", task.StagePlanUpdatedReview)

	if err := f.engine.Resume(); err != nil {
		t.Fatalf("Resume: %v", err)
	}

	rec := f.loadRecord(t, "/tasks", "2025-01-01_task_1")
	if rec.CurrentStage != task.StageCompleted {
		t.Errorf("stage = %q, want completed (not plan-final)", rec.CurrentStage)
	}
	if len(f.prompt.titles) != 1 {
		t.Errorf("got %d prompts, want exactly 1", len(f.prompt.titles))
	}
	if ok, _ := afero.Exists(f.fsys, "/tasks/2025-01-01_task_1/plan-final.md"); !ok {
		t.Error("plan-final.md missing")
	}
}

func TestPlanFinalStageAutoCompletes(t *testing.T) {
	f := newFixture("/tasks")
	f.seedTask(t, "/tasks", "2025-01-01_task_1", task.StagePlanFinal)

	if err := f.engine.Resume(); err != nil {
		t.Fatalf("Resume: %v", err)
	}

	rec := f.loadRecord(t, "/tasks", "2025-01-01_task_1")
	if rec.CurrentStage != task.StageCompleted {
		t.Errorf("stage = %q, want completed", rec.CurrentStage)
	}
	if len(f.prompt.titles) != 0 {
		t.Errorf("no prompt expected at plan-final, got %d", len(f.prompt.titles))
	}
}

func TestResumingCompletedTaskIsANoOp(t *testing.T) {
	f := newFixture("/tasks")
	f.seedTask(t, "/tasks", "2025-01-01_task_1", task.StageCompleted)
	before := f.loadRecord(t, "/tasks", "2025-01-01_task_1")

	if err := f.engine.ResumeTask("2025-01-01_task_1"); err != nil {
		t.Fatalf("ResumeTask: %v", err)
	}

	after := f.loadRecord(t, "/tasks", "2025-01-01_task_1")
	if !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Error("completed task was rewritten")
	}
	if len(f.prompt.titles) != 0 {
		t.Errorf("no prompt expected for a completed task, got %d", len(f.prompt.titles))
	}
	if !strings.Contains(f.out.String(), "already completed") {
		t.Errorf("output = %q, want an already-completed report", f.out.String())
	}
}

func TestResumeWithSeveralIncompleteShowsPicker(t *testing.T) {
	f := newFixture("/tasks", 0) // pick the first entry, then dismiss
	f.seedTask(t, "/tasks", "2025-01-01_task_1", task.StagePlan)
	f.seedTask(t, "/tasks", "2025-01-02_task_1", task.StagePlanReview)

	// Make the second task the most recently touched one.
	rec := f.loadRecord(t, "/tasks", "2025-01-02_task_1")
	rec = task.Advance(rec, task.StagePlanReview)
	if err := task.SaveRecord(f.fsys, "/tasks/2025-01-02_task_1", rec); err != nil {
		t.Fatal(err)
	}

	if err := f.engine.Resume(); err != nil {
		t.Fatalf("Resume: %v", err)
	}

	if len(f.prompt.choices) < 1 || len(f.prompt.choices[0]) != 2 {
		t.Fatalf("expected a two-entry picker, got %+v", f.prompt.choices)
	}
	if f.prompt.choices[0][0].Label != "2025-01-02_task_1" {
		t.Errorf("picker order: first = %q, want the most recently updated", f.prompt.choices[0][0].Label)
	}

	// The dismissed stage prompt belongs to the picked task's stage.
	if len(f.prompt.titles) != 2 {
		t.Fatalf("got %d prompts, want picker + stage prompt", len(f.prompt.titles))
	}
}

func TestResumeWithSingleIncompleteSkipsPicker(t *testing.T) {
	f := newFixture("/tasks")
	f.seedTask(t, "/tasks", "2025-01-01_task_1", task.StagePlanUpdated)

	if err := f.engine.Resume(); err != nil {
		t.Fatalf("Resume: %v", err)
	}

	if len(f.prompt.titles) != 1 {
		t.Fatalf("got %d prompts, want only the stage prompt", len(f.prompt.titles))
	}
	if f.prompt.titles[0] == "Select a task to resume" {
		t.Error("picker shown for a single incomplete task")
	}
}

func TestResumeWithNoIncompleteTasks(t *testing.T) {
	f := newFixture("/tasks")
	f.seedTask(t, "/tasks", "2025-01-01_task_1", task.StageCompleted)

	if err := f.engine.Resume(); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if !strings.Contains(f.out.String(), "No incomplete tasks") {
		t.Errorf("output = %q", f.out.String())
	}
}

func TestResumeTaskWithoutRecord(t *testing.T) {
	f := newFixture("/tasks")
	f.fsys.MkdirAll("/tasks/2025-01-01_task_1", 0o755)

	err := f.engine.ResumeTask("2025-01-01_task_1")
	if err == nil {
		t.Fatal("expected an error for a folder without a record")
	}
}

func TestUnconfiguredRoot(t *testing.T) {
	t.Run("choosing a folder configures and proceeds", func(t *testing.T) {
		f := newFixture("", 0) // "Choose a folder now", then dismiss the stage prompt
		f.prompt.folders = []string{"/picked"}

		if err := f.engine.StartNew(); err != nil {
			t.Fatalf("StartNew: %v", err)
		}
		if f.store.cfg.TasksRoot != "/picked" {
			t.Errorf("TasksRoot = %q, want /picked", f.store.cfg.TasksRoot)
		}
		if _, ok := task.LoadRecord(f.fsys, "/picked/"+todayFolder("1")); !ok {
			t.Error("task folder not created under the picked root")
		}
	})

	t.Run("don't ask again persists the dismissal flag", func(t *testing.T) {
		f := newFixture("", 1)

		if err := f.engine.StartNew(); err == nil {
			t.Fatal("expected a not-configured error")
		}
		if !f.store.cfg.SetupHintDismissed {
			t.Error("dismissal flag not persisted")
		}

		// With the flag set, later invocations fail fast without prompting.
		prompts := len(f.prompt.titles)
		if err := f.engine.StartNew(); err == nil {
			t.Fatal("expected a not-configured error")
		}
		if len(f.prompt.titles) != prompts {
			t.Error("prompt shown despite the dismissal flag")
		}
	})

	t.Run("dismissing the offer does nothing", func(t *testing.T) {
		f := newFixture("")

		if err := f.engine.StartNew(); err != nil {
			t.Fatalf("StartNew: %v", err)
		}
		if f.store.cfg.TasksRoot != "" || len(f.store.saved) != 0 {
			t.Error("config changed by a dismissed offer")
		}
	})
}
