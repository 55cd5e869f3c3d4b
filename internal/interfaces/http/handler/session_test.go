package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	domainChat "github.com/aidechat/backend/internal/domain/chat"
)

func TestSessionHandler_ClearEmptyBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	completer := &fakeCompleter{reply: "ok"}
	chatRouter, chatService := newChatTestRouter(completer, &fakeRetriever{})

	h := NewSessionHandler(chatService)
	chatRouter.POST("/api/session/clear", h.Clear)

	w, body := postJSON(t, chatRouter, "/api/session/clear", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "session cleared", body["message"])
}

func TestSessionHandler_ClearResetsHistory(t *testing.T) {
	gin.SetMode(gin.TestMode)

	completer := &fakeCompleter{reply: "first answer"}
	router, chatService := newChatTestRouter(completer, &fakeRetriever{})

	h := NewSessionHandler(chatService)
	router.POST("/api/session/clear", h.Clear)

	// 先积累一轮历史再清空
	w, _ := postJSON(t, router, "/api/chat", map[string]any{"message": "first question"})
	assert.Equal(t, http.StatusOK, w.Code)

	w, body := postJSON(t, router, "/api/session/clear", map[string]any{
		"session_id": domainChat.DefaultSessionID,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", body["status"])

	err := chatService.ClearSession(context.Background(), "")
	assert.NoError(t, err, "重复清空应该是幂等的")
}
