package service

import (
	"deepeng_backend/internal/model"
)

type StepType string

const (
	StepTheory     StepType = "theory"
	StepExercise   StepType = "exercise"
	StepAITask     StepType = "ai_task"
	StepReflection StepType = "reflection"
)

// Step is one displayable unit of a module walk. The sequence is derived
// on every view and never persisted, so Index has to be stable: the
// builder is pure and two builds over the same module agree step for
// step.
type Step struct {
	Type  StepType `json:"type"`
	Index int      `json:"index"`

	// theory
	Theory      []model.TheoryBlock `json:"theory,omitempty"`
	Text        string              `json:"text,omitempty"`
	Translation string              `json:"translation,omitempty"`

	// exercise
	Exercise *model.Exercise   `json:"exercise,omitempty"`
	Choices  []string          `json:"choices,omitempty"`
	Pairs    []model.MatchPair `json:"pairs,omitempty"`

	// ai_task
	AITask *model.AITask `json:"aiTask,omitempty"`

	// reflection
	Reflection []string `json:"reflection,omitempty"`
}

// BuildTimeline materializes the ordered step list for a module:
// theory (if any), each exercise in stored order, the AI task (if any),
// reflection (if any). Only the exercise type repeats.
//
// Matching exercises whose options do not decode to a pair list are not
// presentable and are dropped here, before the evaluator can see them.
// A module with no content at all yields an empty timeline, which the
// consumer treats as immediately completable.
func BuildTimeline(content model.ModuleContent, exercises []model.Exercise) []Step {
	steps := make([]Step, 0, len(exercises)+3)

	if content.HasTheory() {
		steps = append(steps, Step{
			Type:        StepTheory,
			Theory:      content.Theory,
			Text:        content.Text,
			Translation: content.Translation,
		})
	}

	for i := range exercises {
		ex := exercises[i]
		opts, err := model.ParseExerciseOptions(ex.Options)
		if ex.Type == model.Matching && (err != nil || len(opts.Pairs) == 0) {
			continue
		}
		steps = append(steps, Step{
			Type:     StepExercise,
			Exercise: &ex,
			Choices:  opts.Choices,
			Pairs:    opts.Pairs,
		})
	}

	if content.AITask != nil {
		steps = append(steps, Step{Type: StepAITask, AITask: content.AITask})
	}

	if len(content.Reflection) > 0 {
		steps = append(steps, Step{Type: StepReflection, Reflection: content.Reflection})
	}

	for i := range steps {
		steps[i].Index = i
	}
	return steps
}
