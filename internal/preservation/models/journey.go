package models

import (
	"sort"

	id "preservation/pkg/domain"
)

// Step is one stage of a journey. Tags sit on exactly one step at a time.
type Step struct {
	ID       id.StepID `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	SortKey  int       `json:"sort_key" yaml:"sort_key"`
	IsVoided bool      `json:"is_voided" yaml:"is_voided"`
}

// Journey is the ordered workflow path a tag is transferred along. It is read-only
// configuration owned by the catalog.
type Journey struct {
	ID    id.JourneyID `json:"id" yaml:"id"`
	Title string       `json:"title" yaml:"title"`
	Steps []Step       `json:"steps" yaml:"steps"`
}

// OrderedSteps returns the non-voided steps by ascending SortKey.
func (j *Journey) OrderedSteps() []Step {
	steps := make([]Step, 0, len(j.Steps))
	for _, s := range j.Steps {
		if !s.IsVoided {
			steps = append(steps, s)
		}
	}
	sort.SliceStable(steps, func(a, b int) bool { return steps[a].SortKey < steps[b].SortKey })
	return steps
}

// NextStep returns the step following stepID. It reports false when stepID is
// the last step or is not part of the journey.
func (j *Journey) NextStep(stepID id.StepID) (Step, bool) {
	steps := j.OrderedSteps()
	for i, s := range steps {
		if s.ID != stepID {
			continue
		}
		if i+1 < len(steps) {
			return steps[i+1], true
		}
		return Step{}, false
	}
	return Step{}, false
}

// HasStep reports whether stepID is a non-voided step of the journey.
func (j *Journey) HasStep(stepID id.StepID) bool {
	for _, s := range j.Steps {
		if s.ID == stepID && !s.IsVoided {
			return true
		}
	}
	return false
}
