package service

import (
	"strings"

	"deepeng_backend/internal/model"
)

// MatchingCompleted is the sentinel recorded as the "answer" of a
// matching exercise once every pair has been connected.
const MatchingCompleted = "Completed"

// Evaluate checks a submitted answer against an exercise. It never
// errors: malformed data degrades to incorrect so a student is never
// blocked mid-module.
//
// Default comparison trims whitespace, drops one trailing period from
// each side and ignores case. Exercises whose question mentions
// "correct" are correct-the-mistake tasks: capitalization is part of the
// expected answer, so those compare exactly after a plain trim.
func Evaluate(ex model.Exercise, submitted string) bool {
	if ex.Type == model.Matching {
		return submitted == MatchingCompleted
	}

	if strings.TrimSpace(ex.CorrectAnswer) == "" {
		return false
	}

	if isCorrectionTask(ex.Question) {
		return strings.TrimSpace(submitted) == strings.TrimSpace(ex.CorrectAnswer)
	}

	return normalizeAnswer(submitted) == normalizeAnswer(ex.CorrectAnswer)
}

func isCorrectionTask(question string) bool {
	return strings.Contains(strings.ToLower(question), "correct")
}

func normalizeAnswer(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".")
	return strings.ToLower(s)
}

// MatchingActivity tracks one matching exercise during a walk. Each
// proposed connection is checked on its own: wrong pairs are rejected
// without being recorded, so the activity can only ever finish in the
// correct state.
type MatchingActivity struct {
	pairs     []model.MatchPair
	confirmed map[string]string
}

func NewMatchingActivity(pairs []model.MatchPair) *MatchingActivity {
	return &MatchingActivity{
		pairs:     pairs,
		confirmed: make(map[string]string, len(pairs)),
	}
}

// Propose checks one left/right connection. It reports whether the
// connection was accepted; repeat proposals of an accepted pair are
// idempotent.
func (m *MatchingActivity) Propose(left, right string) bool {
	for _, p := range m.pairs {
		if p.Left == left && p.Right == right {
			m.confirmed[left] = right
			return true
		}
	}
	return false
}

func (m *MatchingActivity) Confirmed() int {
	return len(m.confirmed)
}

// Complete reports whether every pair has been connected. A zero-pair
// activity never reaches here: the timeline builder refuses to present
// it.
func (m *MatchingActivity) Complete() bool {
	return len(m.pairs) > 0 && len(m.confirmed) == len(m.pairs)
}
