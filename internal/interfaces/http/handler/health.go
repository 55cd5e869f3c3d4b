package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	appChat "github.com/aidechat/backend/internal/application/chat"
	"github.com/aidechat/backend/internal/application/knowledge"
	"github.com/aidechat/backend/internal/infrastructure/config"
	"github.com/aidechat/backend/internal/infrastructure/log"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	cfg              *config.Config
	chatService      *appChat.Service
	knowledgeService *knowledge.Service
	logger           *slog.Logger
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(cfg *config.Config, chatService *appChat.Service, knowledgeService *knowledge.Service) *HealthHandler {
	return &HealthHandler{
		cfg:              cfg,
		chatService:      chatService,
		knowledgeService: knowledgeService,
		logger:           log.NewModuleLogger("health", "handler"),
	}
}

// Check 汇报各依赖服务的可用状态
// GET /api/health
// 无论依赖状态如何始终返回 200，由 status 字段区分 ok/degraded
func (h *HealthHandler) Check(c *gin.Context) {
	llmStatus := "unavailable"
	if h.chatService.IsAvailable(c.Request.Context()) {
		llmStatus = "connected"
	}

	vectorStatus := "not_configured"
	if h.knowledgeService.IsConfigured() {
		vectorStatus = "connected"
	}

	overall := "ok"
	if llmStatus != "connected" || vectorStatus != "connected" {
		overall = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": overall,
		"services": gin.H{
			"llm": gin.H{
				"status": llmStatus,
				"url":    h.cfg.LLM.BaseURL,
				"model":  h.cfg.LLM.Model,
			},
			"vector_db": gin.H{
				"status":     vectorStatus,
				"collection": h.cfg.Vector.Collection,
			},
		},
	})
}
