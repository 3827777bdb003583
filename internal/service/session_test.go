package service

import (
	"testing"

	"deepeng_backend/internal/model"
)

func sessionContent() model.ModuleContent {
	return model.ModuleContent{
		Theory:     []model.TheoryBlock{{Kind: model.TheoryText, Text: "intro"}},
		AITask:     &model.AITask{Prompt: "Describe your day"},
		Reflection: []string{"What did you learn?"},
	}
}

func TestSessionWalk(t *testing.T) {
	exercises := []model.Exercise{
		exercise(1, model.MultipleChoice, "I __ a student", "am", `["am","is"]`),
	}
	s := NewSession(7, sessionContent(), exercises)

	if s.Complete() {
		t.Fatalf("fresh session already complete")
	}
	if cur := s.Current(); cur == nil || cur.Type != StepTheory {
		t.Fatalf("first step = %+v, want theory", cur)
	}

	s.Next()
	if cur := s.Current(); cur == nil || cur.Type != StepExercise {
		t.Fatalf("second step = %+v, want exercise", cur)
	}
	if !s.SubmitAnswer(1, "am") {
		t.Fatalf("correct answer rejected")
	}

	s.Next()
	s.Next()
	s.Next()
	if !s.Complete() {
		t.Fatalf("session not complete after last step")
	}
	if s.Current() != nil {
		t.Fatalf("Current past the end should be nil")
	}

	// walking back reopens the session
	s.Back()
	if s.Complete() {
		t.Fatalf("session complete after stepping back")
	}
}

func TestSessionBackStopsAtStart(t *testing.T) {
	s := NewSession(1, sessionContent(), nil)
	s.Back()
	s.Back()
	if s.StepIndex != 0 {
		t.Fatalf("StepIndex = %d after Back at start", s.StepIndex)
	}
}

func TestSessionEmptyModuleIsComplete(t *testing.T) {
	s := NewSession(1, model.ModuleContent{}, nil)
	if !s.Complete() {
		t.Fatalf("empty module session should be trivially complete")
	}
	if got := s.Finalize(); got != 0 {
		t.Fatalf("empty module score = %d, want 0", got)
	}
}

func TestSessionResubmitOverwrites(t *testing.T) {
	exercises := []model.Exercise{
		exercise(1, model.FillGap, "She __ happy", "is", ""),
	}
	s := NewSession(1, model.ModuleContent{}, exercises)

	if s.SubmitAnswer(1, "are") {
		t.Fatalf("wrong answer accepted")
	}
	if !s.SubmitAnswer(1, "is") {
		t.Fatalf("corrected answer rejected")
	}
	if s.Answers[1] != "is" {
		t.Fatalf("recorded answer = %q, want the latest submission", s.Answers[1])
	}
	if s.SubmitAnswer(99, "anything") {
		t.Fatalf("answer for unknown exercise accepted")
	}
}

func TestSessionMatchingAutoCompletes(t *testing.T) {
	exercises := []model.Exercise{
		exercise(1, model.Matching, "Match", "", `[{"left":"cat","right":"кошка"},{"left":"dog","right":"собака"}]`),
	}
	s := NewSession(1, model.ModuleContent{}, exercises)

	if s.ProposeMatch(1, "cat", "собака") {
		t.Fatalf("wrong pair accepted")
	}
	if _, ok := s.Answers[1]; ok {
		t.Fatalf("answer recorded before completion")
	}

	s.ProposeMatch(1, "cat", "кошка")
	s.ProposeMatch(1, "dog", "собака")
	if s.Answers[1] != MatchingCompleted {
		t.Fatalf("answer = %q after all pairs, want %q", s.Answers[1], MatchingCompleted)
	}

	if s.ProposeMatch(99, "a", "b") {
		t.Fatalf("proposal against unknown exercise accepted")
	}
}

func TestSessionFinalizeUsesTranscriptScore(t *testing.T) {
	exercises := []model.Exercise{
		exercise(1, model.FillGap, "She __ happy", "is", ""),
	}
	s := NewSession(1, sessionContent(), exercises)
	s.SubmitAnswer(1, "is")
	s.AppendAITurn("user", "Here is my day")
	s.AppendAITurn("assistant", "Well written! [[SCORE: 90]]")

	// 100*0.67 + 90*0.33
	if got := s.Finalize(); got != 97 {
		t.Fatalf("Finalize = %d, want 97", got)
	}

	// without a scored turn the task contributes nothing
	s2 := NewSession(1, sessionContent(), exercises)
	s2.SubmitAnswer(1, "is")
	if got := s2.Finalize(); got != 67 {
		t.Fatalf("Finalize without AI score = %d, want 67", got)
	}
}
