package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aidechat/backend/internal/application/knowledge"
	"github.com/aidechat/backend/internal/infrastructure/config"
	"github.com/aidechat/backend/internal/infrastructure/log"
)

// notConfiguredHint 向量库未配置时给调用方的提示
const notConfiguredHint = "set " + config.EnvQdrantURL + " to enable the knowledge base"

// KnowledgeHandler 知识库处理器
type KnowledgeHandler struct {
	knowledgeService *knowledge.Service
	logger           *slog.Logger
}

// NewKnowledgeHandler 创建知识库处理器
func NewKnowledgeHandler(knowledgeService *knowledge.Service) *KnowledgeHandler {
	return &KnowledgeHandler{
		knowledgeService: knowledgeService,
		logger:           log.NewModuleLogger("knowledge", "handler"),
	}
}

// AddRequest 知识写入请求
type AddRequest struct {
	Text     string         `json:"text" binding:"required"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Add 写入一条知识
// POST /api/knowledge
func (h *KnowledgeHandler) Add(c *gin.Context) {
	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	if !h.knowledgeService.IsConfigured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "vector store not configured",
			"hint":  notConfiguredHint,
		})
		return
	}

	if !h.knowledgeService.Add(c.Request.Context(), req.Text, req.Metadata) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add knowledge"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "knowledge added successfully",
	})
}

// SearchRequest 知识检索请求
type SearchRequest struct {
	Query string `json:"query" binding:"required"`
	TopK  int    `json:"top_k,omitempty"`
}

// Search 检索知识库
// POST /api/knowledge/search
func (h *KnowledgeHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	if !h.knowledgeService.IsConfigured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "vector store not configured",
			"hint":  notConfiguredHint,
		})
		return
	}

	results := h.knowledgeService.Search(c.Request.Context(), req.Query, req.TopK)

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"count":   len(results),
	})
}
