package service

import (
	"testing"

	"deepeng_backend/internal/model"
)

func TestEvaluateNormalization(t *testing.T) {
	tests := []struct {
		name      string
		question  string
		answer    string
		submitted string
		want      bool
	}{
		{"exact", "I __ a student", "am", "am", true},
		{"case insensitive", "I __ a student", "am", "AM", true},
		{"surrounding spaces", "I __ a student", "am", "  am  ", true},
		{"trailing period", "Write the sentence", "She is happy", "She is happy.", true},
		{"period both sides", "Write the sentence", "She is happy.", "she is happy", true},
		{"only one period stripped", "Write the sentence", "Wait", "Wait..", false},
		{"wrong answer", "I __ a student", "am", "is", false},
		{"empty submission", "I __ a student", "am", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := exercise(1, model.FillGap, tt.question, tt.answer, "")
			if got := Evaluate(ex, tt.submitted); got != tt.want {
				t.Fatalf("Evaluate(%q vs %q) = %t, want %t", tt.submitted, tt.answer, got, tt.want)
			}
		})
	}
}

func TestEvaluateCorrectionTaskComparesExactly(t *testing.T) {
	ex := exercise(1, model.TextInput, "Correct the mistake: she are happy", "She is happy.", "")

	if !Evaluate(ex, "She is happy.") {
		t.Fatalf("exact submission rejected")
	}
	if !Evaluate(ex, "  She is happy.  ") {
		t.Fatalf("trimmed submission rejected")
	}
	if Evaluate(ex, "she is happy.") {
		t.Fatalf("capitalization should matter in a correction task")
	}
	if Evaluate(ex, "She is happy") {
		t.Fatalf("missing period should matter in a correction task")
	}
}

func TestEvaluateEmptyCorrectAnswerNeverMatches(t *testing.T) {
	ex := exercise(1, model.TextInput, "Open question", "", "")
	for _, submitted := range []string{"", "anything", " "} {
		if Evaluate(ex, submitted) {
			t.Fatalf("exercise without a stored answer accepted %q", submitted)
		}
	}
}

func TestEvaluateMatchingUsesSentinel(t *testing.T) {
	ex := exercise(1, model.Matching, "Match the words", "", `[{"left":"cat","right":"кошка"}]`)
	if !Evaluate(ex, MatchingCompleted) {
		t.Fatalf("completed matching rejected")
	}
	if Evaluate(ex, "cat=кошка") {
		t.Fatalf("non-sentinel answer accepted for matching")
	}
}

func TestMatchingActivity(t *testing.T) {
	pairs := []model.MatchPair{
		{Left: "cat", Right: "кошка"},
		{Left: "dog", Right: "собака"},
	}
	act := NewMatchingActivity(pairs)

	if act.Propose("cat", "собака") {
		t.Fatalf("wrong pair accepted")
	}
	if act.Confirmed() != 0 {
		t.Fatalf("wrong proposal was recorded")
	}

	if !act.Propose("cat", "кошка") {
		t.Fatalf("correct pair rejected")
	}
	if act.Complete() {
		t.Fatalf("complete with one of two pairs")
	}

	// repeating an accepted pair changes nothing
	act.Propose("cat", "кошка")
	if act.Confirmed() != 1 {
		t.Fatalf("repeat proposal double counted: %d", act.Confirmed())
	}

	if !act.Propose("dog", "собака") {
		t.Fatalf("second pair rejected")
	}
	if !act.Complete() {
		t.Fatalf("activity not complete after all pairs")
	}
}
