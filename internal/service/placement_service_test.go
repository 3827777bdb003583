package service

import (
	"testing"

	"deepeng_backend/internal/model"
)

type fakeQuestionStore struct {
	questions []model.PlacementQuestion
}

func (f *fakeQuestionStore) FindAll() ([]model.PlacementQuestion, error) {
	return f.questions, nil
}

func (f *fakeQuestionStore) FindByIDs(ids []uint) ([]model.PlacementQuestion, error) {
	want := map[uint]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []model.PlacementQuestion
	for _, q := range f.questions {
		if want[q.ID] {
			out = append(out, q)
		}
	}
	return out, nil
}

type fakeLevelStore struct {
	userID uint
	level  model.CEFRLevel
}

func (f *fakeLevelStore) UpdateLevel(userID uint, level model.CEFRLevel) error {
	f.userID = userID
	f.level = level
	return nil
}

func placementQuestion(id uint, cat model.PlacementCategory, answer string) model.PlacementQuestion {
	q := model.PlacementQuestion{Category: cat, Question: "q", Answer: answer}
	q.ID = id
	return q
}

func TestLevelForScore(t *testing.T) {
	tests := []struct {
		score int
		want  model.CEFRLevel
	}{
		{0, model.A1}, {2, model.A1},
		{3, model.A2}, {5, model.A2},
		{6, model.B1}, {8, model.B1},
		{9, model.B2}, {12, model.B2},
	}
	for _, tt := range tests {
		if got := LevelForScore(tt.score); got != tt.want {
			t.Fatalf("LevelForScore(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestGradePerCategory(t *testing.T) {
	store := &fakeQuestionStore{questions: []model.PlacementQuestion{
		placementQuestion(1, model.PlacementVocabulary, "cat"),
		placementQuestion(2, model.PlacementVocabulary, "dog"),
		placementQuestion(3, model.PlacementGrammar, "am"),
		placementQuestion(4, model.PlacementGrammar, "is"),
		placementQuestion(5, model.PlacementReading, "true"),
		placementQuestion(6, model.PlacementReading, "false"),
	}}
	svc := NewPlacementService(store, &fakeLevelStore{})

	// vocabulary 2/2 (B2), grammar 1/2 (A2), reading 2/2 (B2):
	// bands 4+2+4 = 10, avg 3.33 -> B1
	result, err := svc.Grade(map[uint]string{
		1: "cat", 2: "dog",
		3: "am", 4: "are",
		5: "true", 6: "false",
	})
	if err != nil {
		t.Fatalf("Grade returned error: %v", err)
	}
	if result.Level != model.B1 {
		t.Fatalf("overall level = %s, want B1", result.Level)
	}
	if len(result.Categories) != 3 {
		t.Fatalf("got %d categories, want 3", len(result.Categories))
	}

	byCat := map[model.PlacementCategory]CategoryResult{}
	for _, c := range result.Categories {
		byCat[c.Category] = c
	}
	if c := byCat[model.PlacementVocabulary]; c.Correct != 2 || c.Level != model.B2 {
		t.Fatalf("vocabulary = %+v", c)
	}
	if c := byCat[model.PlacementGrammar]; c.Correct != 1 || c.Level != model.A2 {
		t.Fatalf("grammar = %+v", c)
	}
}

func TestGradeNormalizesAnswers(t *testing.T) {
	store := &fakeQuestionStore{questions: []model.PlacementQuestion{
		placementQuestion(1, model.PlacementGrammar, "She is happy"),
	}}
	svc := NewPlacementService(store, &fakeLevelStore{})

	result, err := svc.Grade(map[uint]string{1: "  she is happy.  "})
	if err != nil {
		t.Fatalf("Grade returned error: %v", err)
	}
	if result.Categories[0].Correct != 1 {
		t.Fatalf("normalized answer not accepted")
	}
}

func TestGradeNoAnswers(t *testing.T) {
	svc := NewPlacementService(&fakeQuestionStore{}, &fakeLevelStore{})
	result, err := svc.Grade(map[uint]string{})
	if err != nil {
		t.Fatalf("Grade returned error: %v", err)
	}
	if result.Level != model.A1 || len(result.Categories) != 0 {
		t.Fatalf("empty submission = %+v, want bare A1", result)
	}
}

func TestBandForPercent(t *testing.T) {
	tests := []struct {
		pct  float64
		want model.CEFRLevel
	}{
		{100, model.B2}, {85, model.B2},
		{84.9, model.B1}, {70, model.B1},
		{69, model.A2}, {40, model.A2},
		{39, model.A1}, {0, model.A1},
	}
	for _, tt := range tests {
		if got := bandForPercent(tt.pct); got != tt.want {
			t.Fatalf("bandForPercent(%.1f) = %s, want %s", tt.pct, got, tt.want)
		}
	}
}

func TestApplyStoresLevel(t *testing.T) {
	users := &fakeLevelStore{}
	svc := NewPlacementService(&fakeQuestionStore{}, users)

	if err := svc.Apply(7, model.B1); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if users.userID != 7 || users.level != model.B1 {
		t.Fatalf("stored = (%d, %s), want (7, B1)", users.userID, users.level)
	}
}
