package service

import (
	"deepeng_backend/internal/model"
)

// ChatMessage is one turn of a tutor conversation, both over the wire
// and in the persisted ai_history column.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is an in-memory walk through a module's timeline. It records
// answers, tracks matching connections and accumulates the tutor
// transcript so the final score can be computed in one place.
type Session struct {
	ModuleID     uint
	StepIndex    int
	Answers      map[uint]string
	AITranscript []ChatMessage

	steps     []Step
	exercises []model.Exercise
	hasAITask bool
	matching  map[uint]*MatchingActivity
}

func NewSession(moduleID uint, content model.ModuleContent, exercises []model.Exercise) *Session {
	steps := BuildTimeline(content, exercises)
	s := &Session{
		ModuleID:     moduleID,
		Answers:      make(map[uint]string),
		AITranscript: nil,
		steps:        steps,
		exercises:    exercises,
		hasAITask:    content.AITask != nil,
		matching:     make(map[uint]*MatchingActivity),
	}
	for _, st := range steps {
		if st.Type == StepExercise && st.Exercise.Type == model.Matching {
			s.matching[st.Exercise.ID] = NewMatchingActivity(st.Pairs)
		}
	}
	return s
}

func (s *Session) Steps() []Step { return s.steps }

// Current returns the active step, or nil once the walk has moved past
// the last step.
func (s *Session) Current() *Step {
	if s.StepIndex < 0 || s.StepIndex >= len(s.steps) {
		return nil
	}
	return &s.steps[s.StepIndex]
}

func (s *Session) Next() {
	if s.StepIndex < len(s.steps) {
		s.StepIndex++
	}
}

func (s *Session) Back() {
	if s.StepIndex > 0 {
		s.StepIndex--
	}
}

// SubmitAnswer records an answer for an exercise and reports whether it
// was correct. Resubmitting overwrites the previous answer.
func (s *Session) SubmitAnswer(exerciseID uint, answer string) bool {
	for _, ex := range s.exercises {
		if ex.ID != exerciseID {
			continue
		}
		s.Answers[exerciseID] = answer
		return Evaluate(ex, answer)
	}
	return false
}

// ProposeMatch forwards a pair proposal to the matching activity for the
// exercise. When the last pair lands the exercise is recorded as
// completed.
func (s *Session) ProposeMatch(exerciseID uint, left, right string) bool {
	act, ok := s.matching[exerciseID]
	if !ok {
		return false
	}
	accepted := act.Propose(left, right)
	if act.Complete() {
		s.Answers[exerciseID] = MatchingCompleted
	}
	return accepted
}

func (s *Session) AppendAITurn(role, content string) {
	s.AITranscript = append(s.AITranscript, ChatMessage{Role: role, Content: content})
}

// Complete reports whether the walk has passed every step. A module with
// an empty timeline is trivially complete.
func (s *Session) Complete() bool {
	return s.StepIndex >= len(s.steps)
}

// Finalize computes the session's overall score. The tutor score is
// taken from the transcript when present.
func (s *Session) Finalize() int {
	aiScore := 0
	for i := len(s.AITranscript) - 1; i >= 0; i-- {
		if s.AITranscript[i].Role != "assistant" {
			continue
		}
		if score, _, ok := ExtractAIScore(s.AITranscript[i].Content); ok {
			aiScore = score
			break
		}
	}
	return Finalize(s.exercises, s.Answers, s.hasAITask, aiScore)
}
