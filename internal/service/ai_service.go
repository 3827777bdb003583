package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"deepeng_backend/internal/config"
	"deepeng_backend/internal/model"
	"deepeng_backend/internal/util"

	"go.uber.org/zap"
)

// ChatContext describes where in the platform a conversation happens, so
// the tutor prompt can be tailored to a module, a graded task or the
// placement test.
type ChatContext struct {
	ModuleID            uint   `json:"moduleId"`
	ModuleTitle         string `json:"moduleTitle"`
	ModuleType          string `json:"moduleType"`
	ExerciseType        string `json:"exerciseType"`
	CustomSystemMessage string `json:"customSystemMessage"`
	UserTaskPrompt      string `json:"userTaskPrompt"`
	IsPlacementTest     bool   `json:"isPlacementTest"`
}

// ModuleInfoLoader resolves a module id to its record so the tutor prompt
// can name the module even when the client only sends the id.
type ModuleInfoLoader interface {
	FindByID(id uint) (*model.Module, error)
}

type AIService struct {
	mu      sync.RWMutex
	config  config.AIConfig
	modules ModuleInfoLoader
	client  *http.Client
}

func NewAIService(cfg config.AIConfig, modules ModuleInfoLoader) *AIService {
	return &AIService{
		config:  cfg,
		modules: modules,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// UpdateConfig swaps the endpoint settings, letting a config reload
// rotate API keys without a restart.
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
}

func (s *AIService) cfg() config.AIConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Chat sends the conversation to the completion endpoint and returns the
// tutor's reply. Without an API key it answers in demo mode, and any
// upstream failure degrades to a static fallback so the student is never
// shown an error page.
func (s *AIService) Chat(history []ChatMessage, message string, chatCtx ChatContext) string {
	s.enrichContext(&chatCtx)

	if s.cfg().APIKey == "" {
		return s.demoReply(message, chatCtx)
	}

	messages := []ChatMessage{{Role: "system", Content: s.buildSystemPrompt(chatCtx)}}
	messages = append(messages, history...)
	messages = append(messages, ChatMessage{Role: "user", Content: message})

	reply, err := s.complete(messages)
	if err != nil {
		zap.L().Warn("AI request failed, serving fallback", zap.Error(err))
		return fallbackReply
	}
	return reply
}

// enrichContext fills in the module title and type from the id when the
// client did not send them.
func (s *AIService) enrichContext(chatCtx *ChatContext) {
	if s.modules == nil || chatCtx.ModuleID == 0 {
		return
	}
	if chatCtx.ModuleTitle != "" && chatCtx.ModuleType != "" {
		return
	}
	module, err := s.modules.FindByID(chatCtx.ModuleID)
	if err != nil {
		zap.L().Debug("Chat context module lookup failed", zap.Uint("module_id", chatCtx.ModuleID), zap.Error(err))
		return
	}
	if chatCtx.ModuleTitle == "" {
		chatCtx.ModuleTitle = module.Title
	}
	if chatCtx.ModuleType == "" {
		chatCtx.ModuleType = string(module.Type)
	}
}

func (s *AIService) complete(messages []ChatMessage) (string, error) {
	cfg := s.cfg()
	reqBody := ChatCompletionRequest{
		Model:       cfg.Model,
		Messages:    messages,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", util.ErrAINoChoices
	}
	return result.Choices[0].Message.Content, nil
}

const basePedagogy = `You are a friendly, patient English tutor for Russian-speaking learners. ` +
	`Adapt your language to the student's CEFR level: short simple sentences for A1-A2, ` +
	`richer vocabulary for B1 and above. Use the Socratic method: guide the student to the ` +
	`answer with questions and hints instead of giving it away. Correct mistakes gently, ` +
	`always show the corrected version, and explain briefly in plain English. ` +
	`You may use Russian for a short clarification when the student is clearly stuck. ` +
	`Stay on the topic of learning English; politely decline unrelated requests.`

const fallbackReply = "I'm having trouble connecting right now. Please try again in a moment, " +
	"or continue with the exercises and come back to me later."

func (s *AIService) buildSystemPrompt(chatCtx ChatContext) string {
	var b strings.Builder
	b.WriteString(basePedagogy)

	switch {
	case chatCtx.CustomSystemMessage != "" || chatCtx.UserTaskPrompt != "":
		if chatCtx.CustomSystemMessage != "" {
			b.WriteString("\n\n")
			b.WriteString(chatCtx.CustomSystemMessage)
		}
		if chatCtx.UserTaskPrompt != "" {
			fmt.Fprintf(&b, "\n\nThe student is working on this task: %q. ", chatCtx.UserTaskPrompt)
			b.WriteString("Keep the conversation anchored to the task and be aware of what the student has already produced.")
		}
		b.WriteString("\n\nWhen the student has clearly finished the task, assess their work " +
			"and end your reply with a grade marker in exactly this format: [[SCORE: 85]] " +
			"where the number is 0-100. Do not mention the marker to the student. " +
			"Emit the marker only once, only when the task is done.")
	case chatCtx.IsPlacementTest:
		b.WriteString("\n\nThe student is taking a placement test. Do not teach or reveal answers. " +
			"Only clarify what a question is asking when the student does not understand the wording.")
	case chatCtx.ModuleTitle != "":
		fmt.Fprintf(&b, "\n\nThe student is studying the module %q (type: %s, level-appropriate content).",
			chatCtx.ModuleTitle, moduleTypeLabel(chatCtx.ModuleType))
		if chatCtx.ExerciseType != "" {
			fmt.Fprintf(&b, " They are currently on a %s exercise.", chatCtx.ExerciseType)
		}
		b.WriteString(" Answer questions about this material first; bring the student back to it if they drift.")
	default:
		b.WriteString("\n\nThe student is asking a general question about English. " +
			"Answer helpfully and suggest which kind of module (grammar, vocabulary, reading or writing) could help them practise.")
	}

	return b.String()
}

func moduleTypeLabel(t string) string {
	switch model.ModuleType(t) {
	case model.Grammar, model.Vocabulary, model.Reading, model.Writing:
		return t
	default:
		return "general"
	}
}

// demoReply keeps the tutor usable in local setups with no API key.
func (s *AIService) demoReply(message string, chatCtx ChatContext) string {
	if chatCtx.UserTaskPrompt != "" {
		return "(demo mode) Nice work on the task! A real tutor would review your text here. [[SCORE: 80]]"
	}
	if strings.TrimSpace(message) == "" {
		return "(demo mode) Hello! Ask me anything about English grammar, vocabulary or your current module."
	}
	return fmt.Sprintf("(demo mode) You asked: %q. Configure an AI API key to get real tutoring answers.", message)
}
