package service

import (
	"deepeng_backend/internal/model"
)

// QuestionStore and LevelStore are the repository slices placement
// grading needs; tests substitute in-memory fakes.
type QuestionStore interface {
	FindAll() ([]model.PlacementQuestion, error)
	FindByIDs(ids []uint) ([]model.PlacementQuestion, error)
}

type LevelStore interface {
	UpdateLevel(userID uint, level model.CEFRLevel) error
}

type PlacementService struct {
	Questions QuestionStore
	Users     LevelStore
}

func NewPlacementService(questions QuestionStore, users LevelStore) *PlacementService {
	return &PlacementService{Questions: questions, Users: users}
}

// LevelForScore maps a raw correct count onto a level. Kept for clients
// that still submit a single total; the per-category grading below is
// what the current test uses.
func LevelForScore(score int) model.CEFRLevel {
	switch {
	case score > 8:
		return model.B2
	case score > 5:
		return model.B1
	case score > 2:
		return model.A2
	default:
		return model.A1
	}
}

// CategoryResult is the graded outcome of one skill category.
type CategoryResult struct {
	Category model.PlacementCategory `json:"category"`
	Correct  int                     `json:"correct"`
	Total    int                     `json:"total"`
	Level    model.CEFRLevel         `json:"level"`
}

// PlacementResult is the full outcome of a detailed placement test.
type PlacementResult struct {
	Level      model.CEFRLevel  `json:"level"`
	Categories []CategoryResult `json:"categories"`
}

func bandForPercent(pct float64) model.CEFRLevel {
	switch {
	case pct >= 85:
		return model.B2
	case pct >= 70:
		return model.B1
	case pct >= 40:
		return model.A2
	default:
		return model.A1
	}
}

func bandScore(level model.CEFRLevel) float64 {
	switch level {
	case model.B2:
		return 4
	case model.B1:
		return 3
	case model.A2:
		return 2
	default:
		return 1
	}
}

func levelForAverage(avg float64) model.CEFRLevel {
	switch {
	case avg >= 3.5:
		return model.B2
	case avg >= 2.5:
		return model.B1
	case avg >= 1.5:
		return model.A2
	default:
		return model.A1
	}
}

// ListQuestions returns the test without answers; the Answer column is
// never serialized.
func (s *PlacementService) ListQuestions() ([]model.PlacementQuestion, error) {
	return s.Questions.FindAll()
}

// Grade scores submitted answers per category, bands each category and
// averages the bands into an overall level. Answers are compared with
// the same normalization exercises use; the correction-task exception
// does not apply here.
func (s *PlacementService) Grade(answers map[uint]string) (*PlacementResult, error) {
	ids := make([]uint, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	questions, err := s.Questions.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	type tally struct{ correct, total int }
	byCategory := map[model.PlacementCategory]*tally{}
	for _, q := range questions {
		t := byCategory[q.Category]
		if t == nil {
			t = &tally{}
			byCategory[q.Category] = t
		}
		t.total++
		if normalizeAnswer(answers[q.ID]) == normalizeAnswer(q.Answer) {
			t.correct++
		}
	}

	result := &PlacementResult{}
	var sum float64
	for _, cat := range []model.PlacementCategory{
		model.PlacementVocabulary, model.PlacementGrammar, model.PlacementReading,
	} {
		t := byCategory[cat]
		if t == nil || t.total == 0 {
			continue
		}
		level := bandForPercent(100 * float64(t.correct) / float64(t.total))
		result.Categories = append(result.Categories, CategoryResult{
			Category: cat,
			Correct:  t.correct,
			Total:    t.total,
			Level:    level,
		})
		sum += bandScore(level)
	}

	if len(result.Categories) == 0 {
		result.Level = model.A1
		return result, nil
	}
	result.Level = levelForAverage(sum / float64(len(result.Categories)))
	return result, nil
}

// Apply stores the placement outcome on the student's profile.
func (s *PlacementService) Apply(userID uint, level model.CEFRLevel) error {
	return s.Users.UpdateLevel(userID, level)
}
