package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TheoryBlockKind discriminates the theory block union.
type TheoryBlockKind string

const (
	TheoryText      TheoryBlockKind = "text"
	TheoryTable     TheoryBlockKind = "table"
	TheoryVocabCard TheoryBlockKind = "vocab-card"
)

// TheoryBlock is one block of lesson theory. Stored rows may be either a
// bare string (legacy shape, treated as a text block) or a tagged object.
type TheoryBlock struct {
	Kind TheoryBlockKind `json:"kind"`
	// text
	Text string `json:"text,omitempty"`
	// table
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
	// vocab-card
	Word        string `json:"word,omitempty"`
	Translation string `json:"translation,omitempty"`
	AudioURL    string `json:"audioUrl,omitempty"`
}

func (b *TheoryBlock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		b.Kind = TheoryText
		b.Text = s
		return nil
	}

	type alias TheoryBlock
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*b = TheoryBlock(a)
	if b.Kind == "" {
		b.Kind = TheoryText
	}
	switch b.Kind {
	case TheoryText, TheoryTable, TheoryVocabCard:
		return nil
	default:
		return fmt.Errorf("unknown theory block kind %q", b.Kind)
	}
}

// AITask is the optional conversational exercise of a module.
type AITask struct {
	Prompt        string `json:"prompt"`
	SystemMessage string `json:"system_message"`
}

// ModuleContent is the decoded form of Module.Content.
type ModuleContent struct {
	Theory      []TheoryBlock `json:"theory,omitempty"`
	Text        string        `json:"text,omitempty"`
	Translation string        `json:"translation,omitempty"`
	AITask      *AITask       `json:"ai_task,omitempty"`
	Reflection  []string      `json:"reflection,omitempty"`
}

// HasTheory reports whether the module opens with a theory step.
func (c ModuleContent) HasTheory() bool {
	return len(c.Theory) > 0 || c.Text != ""
}

// ParseModuleContent validates the stored JSON at the store boundary.
// Empty or null content is a valid module with nothing in it.
func ParseModuleContent(raw []byte) (ModuleContent, error) {
	var c ModuleContent
	if len(raw) == 0 || string(raw) == "null" {
		return c, nil
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return ModuleContent{}, fmt.Errorf("module content: %w", err)
	}
	if c.AITask != nil && strings.TrimSpace(c.AITask.Prompt) == "" {
		// A task without a prompt cannot be presented.
		c.AITask = nil
	}
	return c, nil
}

// MatchPair is one left/right connection of a matching exercise.
type MatchPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// ExerciseOptions is the decoded Exercise.Options column: either a plain
// option list (choice and gap types) or a pair list (matching).
type ExerciseOptions struct {
	Choices []string
	Pairs   []MatchPair
}

// ParseExerciseOptions accepts both stored shapes. A matching exercise
// whose options fail to decode as pairs yields Pairs == nil; the timeline
// builder guards on that before the step is ever presented.
func ParseExerciseOptions(raw []byte) (ExerciseOptions, error) {
	var opts ExerciseOptions
	if len(raw) == 0 || string(raw) == "null" {
		return opts, nil
	}

	var choices []string
	if err := json.Unmarshal(raw, &choices); err == nil {
		opts.Choices = choices
		return opts, nil
	}

	var pairs []MatchPair
	if err := json.Unmarshal(raw, &pairs); err == nil {
		for _, p := range pairs {
			if p.Left == "" || p.Right == "" {
				return ExerciseOptions{}, fmt.Errorf("exercise options: incomplete pair")
			}
		}
		opts.Pairs = pairs
		return opts, nil
	}

	return ExerciseOptions{}, fmt.Errorf("exercise options: not a string list or pair list")
}
