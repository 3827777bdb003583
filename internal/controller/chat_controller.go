package controller

import (
	"net/http"

	"deepeng_backend/internal/service"
	"deepeng_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	AIService *service.AIService
}

func NewChatController(aiService *service.AIService) *ChatController {
	return &ChatController{AIService: aiService}
}

type ChatRequest struct {
	Messages []service.ChatMessage `json:"messages" binding:"required,min=1"`
	Context  service.ChatContext   `json:"context"`
}

// Chat godoc
// @Summary Talk to the AI tutor
// @Description Sends the conversation so far plus situational context; the last message is the current prompt. Always answers 200; upstream failures degrade to a fallback reply.
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ChatRequest true "messages and context"
// @Success 200 {object} service.ChatMessage
// @Failure 400 {object} util.Response
// @Router /api/chat [post]
func (c *ChatController) Chat(ctx *gin.Context) {
	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	last := len(req.Messages) - 1
	history := req.Messages[:last]
	prompt := req.Messages[last].Content

	reply := c.AIService.Chat(history, prompt, req.Context)
	ctx.JSON(http.StatusOK, service.ChatMessage{Role: "assistant", Content: reply})
}
