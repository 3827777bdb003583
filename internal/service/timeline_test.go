package service

import (
	"reflect"
	"testing"

	"deepeng_backend/internal/model"

	"gorm.io/datatypes"
)

func exercise(id uint, typ model.ExerciseType, question, answer, options string) model.Exercise {
	ex := model.Exercise{
		Type:          typ,
		Question:      question,
		CorrectAnswer: answer,
	}
	ex.ID = id
	if options != "" {
		ex.Options = datatypes.JSON(options)
	}
	return ex
}

func stepTypes(steps []Step) []StepType {
	types := make([]StepType, len(steps))
	for i, s := range steps {
		types[i] = s.Type
	}
	return types
}

func TestBuildTimelineFullModule(t *testing.T) {
	content := model.ModuleContent{
		Theory:     []model.TheoryBlock{{Kind: model.TheoryText, Text: "The verb to be"}},
		AITask:     &model.AITask{Prompt: "Tell me about your family"},
		Reflection: []string{"What was hard?"},
	}
	exercises := []model.Exercise{
		exercise(1, model.MultipleChoice, "I __ a student", "am", `["am","is","are"]`),
		exercise(2, model.FillGap, "She __ happy", "is", ""),
	}

	steps := BuildTimeline(content, exercises)

	want := []StepType{StepTheory, StepExercise, StepExercise, StepAITask, StepReflection}
	if got := stepTypes(steps); !reflect.DeepEqual(got, want) {
		t.Fatalf("step types = %v, want %v", got, want)
	}
	for i, s := range steps {
		if s.Index != i {
			t.Fatalf("step %d has Index %d", i, s.Index)
		}
	}
	if steps[1].Exercise.ID != 1 || steps[2].Exercise.ID != 2 {
		t.Fatalf("exercises out of stored order: %d, %d", steps[1].Exercise.ID, steps[2].Exercise.ID)
	}
	if !reflect.DeepEqual(steps[1].Choices, []string{"am", "is", "are"}) {
		t.Fatalf("choices = %v", steps[1].Choices)
	}
}

func TestBuildTimelineOmitsAbsentSections(t *testing.T) {
	steps := BuildTimeline(model.ModuleContent{}, nil)
	if len(steps) != 0 {
		t.Fatalf("empty module yielded %d steps", len(steps))
	}
	if steps == nil {
		t.Fatalf("timeline should be empty, not nil")
	}

	content := model.ModuleContent{Text: "My family is big."}
	steps = BuildTimeline(content, nil)
	if got := stepTypes(steps); !reflect.DeepEqual(got, []StepType{StepTheory}) {
		t.Fatalf("text-only module steps = %v", got)
	}
}

func TestBuildTimelineDropsUnpresentableMatching(t *testing.T) {
	exercises := []model.Exercise{
		exercise(1, model.Matching, "Match the words", "", `[{"left":"cat","right":"кошка"}]`),
		exercise(2, model.Matching, "Broken", "", `["not","pairs"]`),
		exercise(3, model.Matching, "Empty", "", `[]`),
	}

	steps := BuildTimeline(model.ModuleContent{}, exercises)
	if len(steps) != 1 {
		t.Fatalf("got %d steps, want 1", len(steps))
	}
	if steps[0].Exercise.ID != 1 {
		t.Fatalf("kept wrong matching exercise: %d", steps[0].Exercise.ID)
	}
	if len(steps[0].Pairs) != 1 {
		t.Fatalf("pairs = %v", steps[0].Pairs)
	}
}

func TestBuildTimelineIsDeterministic(t *testing.T) {
	content := model.ModuleContent{
		Theory:     []model.TheoryBlock{{Kind: model.TheoryText, Text: "rules"}},
		Reflection: []string{"note"},
	}
	exercises := []model.Exercise{
		exercise(1, model.TrueFalse, "Is this right?", "true", `["true","false"]`),
	}

	first := BuildTimeline(content, exercises)
	second := BuildTimeline(content, exercises)
	if !reflect.DeepEqual(stepTypes(first), stepTypes(second)) {
		t.Fatalf("repeat builds disagree: %v vs %v", stepTypes(first), stepTypes(second))
	}
	for i := range first {
		if first[i].Index != second[i].Index {
			t.Fatalf("index drift at step %d", i)
		}
	}
}
