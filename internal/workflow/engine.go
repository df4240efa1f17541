// Package workflow drives a task through its stage-gated lifecycle: one
// prompt per stage boundary, an artifact produced or a shortcut taken, and
// the progress record persisted after every transition.
package workflow

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/pablasso/guia/internal/config"
	"github.com/pablasso/guia/internal/display"
	"github.com/pablasso/guia/internal/task"
)

// Dismissed is the Select result when the user cancelled without choosing.
const Dismissed = -1

// Choice is one selectable option in a prompt.
type Choice struct {
	Label  string
	Detail string
}

// Prompter presents blocking interactive prompts. Select returns the index
// of the chosen option, or Dismissed when the prompt was cancelled.
// PickFolder returns the chosen path, or "" when cancelled.
type Prompter interface {
	Select(title string, choices []Choice) (int, error)
	PickFolder(title string) (string, error)
}

// Opener surfaces a produced artifact to the user, e.g. by launching an
// editor and copying its path to the clipboard. Failures here never abort
// the workflow.
type Opener interface {
	Open(path string) error
}

// Engine walks tasks through the workflow. All collaborators are injected;
// the engine itself holds no global state.
type Engine struct {
	fsys   afero.Fs
	cfg    config.Store
	prompt Prompter
	opener Opener
	out    io.Writer
}

// New creates an engine.
func New(fsys afero.Fs, cfg config.Store, prompt Prompter, opener Opener, out io.Writer) *Engine {
	return &Engine{fsys: fsys, cfg: cfg, prompt: prompt, opener: opener, out: out}
}

// transition is one row of the stage table: the question asked at the stage
// boundary, what producing the next artifact does, and what the shortcut to
// completion copies. An empty skipSource means the skip choice aborts
// instead of finalizing (only the created stage does that).
type transition struct {
	question     string
	produceLabel string
	produce      string // artifact created on "produce"
	produceNext  task.Stage
	skipLabel    string
	skipSource   string // artifact copied to plan-final.md on "skip"
}

// transitions defines the whole workflow. The plan-final and completed
// stages are absent on purpose: neither offers a decision.
var transitions = map[task.Stage]transition{
	task.StageCreated: {
		question:     "Start this task by drafting the initial plan?",
		produceLabel: "Create " + task.ArtifactPlan,
		produce:      task.ArtifactPlan,
		produceNext:  task.StagePlan,
		skipLabel:    "Not now",
	},
	task.StagePlan: {
		question:     "The plan is drafted. Review it?",
		produceLabel: "Create " + task.ArtifactPlanReview,
		produce:      task.ArtifactPlanReview,
		produceNext:  task.StagePlanReview,
		skipLabel:    "Skip ahead and finalize the plan",
		skipSource:   task.ArtifactPlan,
	},
	task.StagePlanReview: {
		question:     "The review is done. Update the plan?",
		produceLabel: "Create " + task.ArtifactPlanUpdated,
		produce:      task.ArtifactPlanUpdated,
		produceNext:  task.StagePlanUpdated,
		skipLabel:    "Skip ahead and finalize the plan",
		skipSource:   task.ArtifactPlan,
	},
	task.StagePlanUpdated: {
		question:     "The plan is updated. Review it again?",
		produceLabel: "Create " + task.ArtifactPlanUpdatedReview,
		produce:      task.ArtifactPlanUpdatedReview,
		produceNext:  task.StagePlanUpdatedReview,
		skipLabel:    "Skip ahead and finalize the plan",
		skipSource:   task.ArtifactPlanUpdated,
	},
	task.StagePlanUpdatedReview: {
		question:     "The second review is done. Finalize the plan?",
		produceLabel: "Create " + task.ArtifactPlanFinal,
		produce:      task.ArtifactPlanFinal,
		produceNext:  task.StagePlanFinal,
		skipLabel:    "Finalize from the updated plan",
		skipSource:   task.ArtifactPlanUpdated,
	},
}

// StartNew creates a fresh task folder under the configured root and walks
// the workflow from the beginning.
func (e *Engine) StartNew() error {
	root, ok, err := e.tasksRoot()
	if err != nil || !ok {
		return err
	}

	name := task.NextFolderName(e.fsys, root, time.Now())
	dir := filepath.Join(root, name)
	if err := e.fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create task folder %s: %w", name, err)
	}

	rec := task.NewRecord(name)
	if err := task.SaveRecord(e.fsys, dir, rec); err != nil {
		return err
	}
	task.NewJournal(e.fsys, dir).TaskCreated(name)

	fmt.Fprintf(e.out, "Created task %s\n", name)
	return e.walk(dir, rec)
}

// Resume picks up an incomplete task and re-enters the workflow at its
// persisted stage. With exactly one incomplete task it is selected
// automatically; with several, the user chooses; with none, there is
// nothing to do.
func (e *Engine) Resume() error {
	root, ok, err := e.tasksRoot()
	if err != nil || !ok {
		return err
	}

	incomplete := task.FindIncomplete(e.fsys, root)
	switch len(incomplete) {
	case 0:
		fmt.Fprintln(e.out, "No incomplete tasks.")
		return nil
	case 1:
		return e.walk(incomplete[0].Dir, incomplete[0].Record)
	}

	choices := make([]Choice, len(incomplete))
	for i, t := range incomplete {
		choices[i] = Choice{
			Label:  t.Name,
			Detail: fmt.Sprintf("%s · %s", t.Record.CurrentStage, display.FormatAge(t.Record.UpdatedAt)),
		}
	}
	idx, err := e.prompt.Select("Select a task to resume", choices)
	if err != nil {
		return err
	}
	if idx == Dismissed {
		return nil
	}
	return e.walk(incomplete[idx].Dir, incomplete[idx].Record)
}

// ResumeTask resumes one specific task folder under the configured root,
// bypassing discovery.
func (e *Engine) ResumeTask(name string) error {
	root, ok, err := e.tasksRoot()
	if err != nil || !ok {
		return err
	}

	dir := filepath.Join(root, name)
	rec, ok := task.LoadRecord(e.fsys, dir)
	if !ok {
		return fmt.Errorf("no progress record found in %s", name)
	}
	return e.walk(dir, rec)
}

// walk runs the per-stage decision loop starting at rec's persisted stage.
// Every boundary before the current stage is skipped outright; dismissing a
// prompt returns without touching the persisted state, which is the
// resumable pause point.
func (e *Engine) walk(dir string, rec task.ProgressRecord) error {
	journal := task.NewJournal(e.fsys, dir)

	for {
		switch rec.CurrentStage {
		case task.StageCompleted:
			fmt.Fprintf(e.out, "Task %s is already completed.\n", rec.TaskFolder)
			return nil
		case task.StagePlanFinal:
			// The final document exists; only the terminal stage remains
			// to be recorded. No decision is offered.
			next := task.Advance(rec, task.StageCompleted)
			if err := task.SaveRecord(e.fsys, dir, next); err != nil {
				return err
			}
			journal.StageAdvanced(rec.CurrentStage, task.StageCompleted)
			journal.TaskCompleted(rec.TaskFolder)
			fmt.Fprintf(e.out, "Task %s completed.\n", rec.TaskFolder)
			return nil
		}

		tr := transitions[rec.CurrentStage]
		idx, err := e.prompt.Select(tr.question, []Choice{
			{Label: tr.produceLabel},
			{Label: tr.skipLabel},
		})
		if err != nil {
			return err
		}

		switch idx {
		case Dismissed:
			return nil

		case 0: // produce the next artifact
			path, err := task.EnsureArtifact(e.fsys, dir, tr.produce)
			if err != nil {
				return err
			}
			e.present(path)

			next := tr.produceNext
			if next == task.StagePlanFinal {
				// Producing the final document completes the task in a
				// single transition; plan-final is never persisted as a
				// resumable stage on this path.
				next = task.StageCompleted
			}
			advanced := task.Advance(rec, next)
			if err := task.SaveRecord(e.fsys, dir, advanced); err != nil {
				return err
			}
			journal.StageAdvanced(rec.CurrentStage, next)
			rec = advanced

			if rec.CurrentStage == task.StageCompleted {
				journal.TaskCompleted(rec.TaskFolder)
				fmt.Fprintf(e.out, "Task %s completed.\n", rec.TaskFolder)
				return nil
			}

		case 1: // shortcut to completion, or abort at the created stage
			if tr.skipSource == "" {
				return nil
			}
			path, err := task.CopyArtifact(e.fsys, dir, tr.skipSource, task.ArtifactPlanFinal)
			if err != nil {
				return err
			}
			e.present(path)

			advanced := task.Advance(rec, task.StageCompleted)
			if err := task.SaveRecord(e.fsys, dir, advanced); err != nil {
				return err
			}
			journal.StageSkipped(rec.CurrentStage, tr.skipSource)
			journal.TaskCompleted(rec.TaskFolder)
			fmt.Fprintf(e.out, "Task %s completed.\n", rec.TaskFolder)
			return nil
		}
	}
}

// present surfaces an artifact to the user. Presentation is convenience,
// not correctness: failures are reported and ignored.
func (e *Engine) present(path string) {
	if err := e.opener.Open(path); err != nil {
		fmt.Fprintf(e.out, "Warning: could not open %s: %v\n", path, err)
	}
}

// tasksRoot resolves the configured tasks folder. When none is configured
// it offers to pick one, unless that offer was dismissed for good earlier.
// ok=false with a nil error means the user declined for now.
func (e *Engine) tasksRoot() (string, bool, error) {
	cfg, err := e.cfg.Load()
	if err != nil {
		return "", false, err
	}
	if cfg.TasksRoot != "" {
		return cfg.TasksRoot, true, nil
	}
	if cfg.SetupHintDismissed {
		return "", false, fmt.Errorf("no tasks folder configured. Run `guia init` first")
	}

	idx, err := e.prompt.Select("No tasks folder is configured yet.", []Choice{
		{Label: "Choose a folder now"},
		{Label: "Don't ask again"},
	})
	if err != nil {
		return "", false, err
	}

	switch idx {
	case 0:
		dir, err := e.prompt.PickFolder("Select the tasks folder")
		if err != nil {
			return "", false, err
		}
		if dir == "" {
			return "", false, nil
		}
		cfg.TasksRoot = dir
		if err := e.cfg.Save(cfg); err != nil {
			return "", false, err
		}
		return dir, true, nil
	case 1:
		cfg.SetupHintDismissed = true
		if err := e.cfg.Save(cfg); err != nil {
			return "", false, err
		}
		return "", false, fmt.Errorf("no tasks folder configured. Run `guia init` first")
	}
	return "", false, nil
}
