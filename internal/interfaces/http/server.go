package http

import (
	"context"
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/aidechat/backend/internal/infrastructure/config"
	"github.com/aidechat/backend/internal/infrastructure/log"
	"github.com/aidechat/backend/internal/interfaces/http/handler"
	"github.com/aidechat/backend/internal/interfaces/http/middleware"
)

// HTTPServer HTTP 服务器
type HTTPServer struct {
	router   *gin.Engine
	httpPort string
	server   *http.Server
	logger   *slog.Logger
}

// NewServer 创建 HTTP 服务器
func NewServer(
	cfg *config.Config,
	healthHandler *handler.HealthHandler,
	chatHandler *handler.ChatHandler,
	knowledgeHandler *handler.KnowledgeHandler,
	sessionHandler *handler.SessionHandler,
) *HTTPServer {
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(middleware.CORS())

	logger := log.NewModuleLogger("http", "server")

	// 注册路由
	api := router.Group("/api")
	{
		api.GET("/health", healthHandler.Check)
		api.POST("/chat", chatHandler.Chat)
		api.POST("/knowledge", knowledgeHandler.Add)
		api.POST("/knowledge/search", knowledgeHandler.Search)
		api.POST("/session/clear", sessionHandler.Clear)
	}

	return &HTTPServer{
		router:   router,
		httpPort: cfg.Server.HTTPPort,
		logger:   logger,
	}
}

// Start 启动服务器
func (s *HTTPServer) Start() error {
	s.server = &http.Server{
		Addr:    s.httpPort,
		Handler: s.router,
	}

	s.logger.Info("HTTP server starting",
		"port", s.httpPort,
	)

	return s.server.ListenAndServe()
}

// Shutdown 优雅关闭
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Stop 停止服务器
func (s *HTTPServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}
