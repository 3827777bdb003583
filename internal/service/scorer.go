package service

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"deepeng_backend/internal/model"
)

const (
	exerciseWeight = 0.67
	aiTaskWeight   = 0.33
)

var scoreMarkerRe = regexp.MustCompile(`\[\[SCORE:\s*(\d{1,3})\]\]`)

// Finalize computes the overall module score from the recorded answers.
// Exercises contribute the share of correct answers scaled to 100; a
// module with no exercises scores 0 on that component. When the module
// carries an AI task the exercise component is blended 67/33 with the
// tutor's assessment.
func Finalize(exercises []model.Exercise, answers map[uint]string, hasAITask bool, aiTaskScore int) int {
	exerciseScore := 0.0
	if len(exercises) > 0 {
		correct := 0
		for _, ex := range exercises {
			if Evaluate(ex, answers[ex.ID]) {
				correct++
			}
		}
		exerciseScore = 100 * float64(correct) / float64(len(exercises))
	}

	if !hasAITask {
		return int(math.Round(exerciseScore))
	}

	ai := aiTaskScore
	if ai < 0 {
		ai = 0
	}
	if ai > 100 {
		ai = 100
	}
	return int(math.Round(exerciseScore*exerciseWeight + float64(ai)*aiTaskWeight))
}

// ExtractAIScore pulls a [[SCORE: N]] marker out of a tutor reply. It
// returns the score, the reply with every marker removed, and whether a
// valid marker (0 to 100) was found. With several markers the last valid
// one wins.
func ExtractAIScore(text string) (int, string, bool) {
	matches := scoreMarkerRe.FindAllStringSubmatch(text, -1)
	score, found := 0, false
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil || n > 100 {
			continue
		}
		score, found = n, true
	}
	cleaned := strings.TrimSpace(scoreMarkerRe.ReplaceAllString(text, ""))
	return score, cleaned, found
}

// AIScoreFromHistory scans a stored chat transcript for the most recent
// assistant turn carrying a score marker. It returns 0 when the history
// is empty, malformed or unscored.
func AIScoreFromHistory(history json.RawMessage) (int, bool) {
	if len(history) == 0 {
		return 0, false
	}
	var turns []ChatMessage
	if err := json.Unmarshal(history, &turns); err != nil {
		return 0, false
	}
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role != "assistant" {
			continue
		}
		if score, _, ok := ExtractAIScore(turns[i].Content); ok {
			return score, true
		}
	}
	return 0, false
}
