package task

import "fmt"

// Stage is a named point in the fixed planning workflow.
type Stage string

// Workflow stages, in canonical order.
const (
	StageCreated           Stage = "created"
	StagePlan              Stage = "plan"
	StagePlanReview        Stage = "plan-review"
	StagePlanUpdated       Stage = "plan-updated"
	StagePlanUpdatedReview Stage = "plan-updated-review"
	StagePlanFinal         Stage = "plan-final"
	StageCompleted         Stage = "completed"
)

// stageOrder is the single definition of stage progression. All comparisons
// go through Index; no other code enumerates stages.
var stageOrder = []Stage{
	StageCreated,
	StagePlan,
	StagePlanReview,
	StagePlanUpdated,
	StagePlanUpdatedReview,
	StagePlanFinal,
	StageCompleted,
}

// Index returns the 0-based position of s in the canonical order.
// Calling it with an unknown stage is a programming error.
func (s Stage) Index() int {
	for i, stage := range stageOrder {
		if stage == s {
			return i
		}
	}
	panic(fmt.Sprintf("unknown stage: %q", s))
}

// IsValid reports whether s is one of the canonical stages. Records read
// from disk are checked with IsValid before Index is ever called on them.
func (s Stage) IsValid() bool {
	for _, stage := range stageOrder {
		if stage == s {
			return true
		}
	}
	return false
}

// Before reports whether s comes strictly before other in the workflow.
func (s Stage) Before(other Stage) bool {
	return s.Index() < other.Index()
}
