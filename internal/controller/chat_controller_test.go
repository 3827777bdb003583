package controller

import (
	"encoding/json"
	"net/http"
	"testing"

	"deepeng_backend/internal/config"
	"deepeng_backend/internal/model"
	"deepeng_backend/internal/service"
	"deepeng_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type chatModuleLoader struct {
	modules map[uint]*model.Module
}

func (f *chatModuleLoader) FindByID(id uint) (*model.Module, error) {
	if m, ok := f.modules[id]; ok {
		return m, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// newChatRouter runs the tutor in demo mode; no upstream is contacted.
func newChatRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	module := &model.Module{Title: "Моя Семья", Type: model.Vocabulary}
	module.ID = 7
	svc := service.NewAIService(config.AIConfig{}, &chatModuleLoader{
		modules: map[uint]*model.Module{7: module},
	})

	router := gin.New()
	c := NewChatController(svc)
	router.POST("/api/chat", authAs(&util.Claims{UserID: 5}), c.Chat)
	return router
}

func TestChatAcceptsDocumentedBody(t *testing.T) {
	router := newChatRouter(t)

	w := postJSON(t, router, "/api/chat",
		`{"messages":[{"role":"user","content":"hello"}],"context":{"moduleId":7}}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var reply service.ChatMessage
	if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if reply.Role != "assistant" {
		t.Fatalf("role = %q, want assistant", reply.Role)
	}
	if reply.Content == "" {
		t.Fatal("empty assistant content")
	}
}

func TestChatBindsCamelCaseContext(t *testing.T) {
	router := newChatRouter(t)

	// a graded task reply ends with a score marker; seeing one proves the
	// userTaskPrompt key was bound
	w := postJSON(t, router, "/api/chat",
		`{"messages":[{"role":"user","content":"my essay"}],"context":{"userTaskPrompt":"Write about yourself"}}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var reply service.ChatMessage
	if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, _, ok := service.ExtractAIScore(reply.Content); !ok {
		t.Fatalf("task reply carries no score marker: %q", reply.Content)
	}
}

func TestChatRejectsEmptyConversation(t *testing.T) {
	router := newChatRouter(t)

	for _, body := range []string{`{}`, `{"messages":[]}`} {
		w := postJSON(t, router, "/api/chat", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d, want 400", body, w.Code)
		}
	}
}
