package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	appChat "github.com/aidechat/backend/internal/application/chat"
	"github.com/aidechat/backend/internal/infrastructure/log"
)

// ChatHandler 对话处理器
type ChatHandler struct {
	chatService *appChat.Service
	logger      *slog.Logger
}

// NewChatHandler 创建对话处理器
func NewChatHandler(chatService *appChat.Service) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      log.NewModuleLogger("chat", "handler"),
	}
}

// ChatRequest 对话请求
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id,omitempty"`
	// UseKnowledge 省略时默认启用检索
	UseKnowledge *bool `json:"use_knowledge,omitempty"`
}

// Chat 处理对话请求
// POST /api/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	useKnowledge := true
	if req.UseKnowledge != nil {
		useKnowledge = *req.UseKnowledge
	}

	result := h.chatService.Chat(c.Request.Context(), req.SessionID, req.Message, useKnowledge)

	c.JSON(http.StatusOK, gin.H{
		"response":     result.Response,
		"context_used": result.ContextUsed,
		"session_id":   result.SessionID,
	})
}
