package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	appChat "github.com/aidechat/backend/internal/application/chat"
	"github.com/aidechat/backend/internal/domain/chat"
	"github.com/aidechat/backend/internal/infrastructure/log"
)

// SessionHandler 会话处理器
type SessionHandler struct {
	chatService *appChat.Service
	logger      *slog.Logger
}

// NewSessionHandler 创建会话处理器
func NewSessionHandler(chatService *appChat.Service) *SessionHandler {
	return &SessionHandler{
		chatService: chatService,
		logger:      log.NewModuleLogger("session", "handler"),
	}
}

// ClearRequest 清空会话请求
type ClearRequest struct {
	SessionID string `json:"session_id,omitempty"`
}

// Clear 清空指定会话的历史
// POST /api/session/clear
func (h *SessionHandler) Clear(c *gin.Context) {
	var req ClearRequest
	// 请求体可以为空，忽略绑定错误
	_ = c.ShouldBindJSON(&req)

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = chat.DefaultSessionID
	}

	if err := h.chatService.ClearSession(c.Request.Context(), sessionID); err != nil {
		h.logger.Warn("failed to clear session", "session_id", sessionID, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "session cleared",
	})
}
