package wire

import (
	"log/slog"

	domainChat "github.com/aidechat/backend/internal/domain/chat"
	"github.com/aidechat/backend/internal/infrastructure/config"
	applog "github.com/aidechat/backend/internal/infrastructure/log"
	"github.com/aidechat/backend/internal/infrastructure/watcher"
	"github.com/aidechat/backend/internal/interfaces"
)

// App 应用主结构，组合所有服务
type App struct {
	HTTPServer       *interfaces.HTTPServer
	knowledgeWatcher *watcher.KnowledgeWatcher
	sessionStore     domainChat.SessionStore
	cfg              *config.Config
	logger           *slog.Logger
}

// NewApp 创建应用实例
func NewApp(
	httpServer *interfaces.HTTPServer,
	knowledgeWatcher *watcher.KnowledgeWatcher,
	sessionStore domainChat.SessionStore,
	cfg *config.Config,
) *App {
	return &App{
		HTTPServer:       httpServer,
		knowledgeWatcher: knowledgeWatcher,
		sessionStore:     sessionStore,
		cfg:              cfg,
		logger:           applog.NewModuleLogger("app", "main"),
	}
}

// Start 启动所有服务
func (a *App) Start() error {
	a.logger.Info("Starting Aide backend application",
		"http_port", a.cfg.Server.HTTPPort,
		"llm_url", a.cfg.LLM.BaseURL,
		"llm_model", a.cfg.LLM.Model,
		"vector_collection", a.cfg.Vector.Collection,
		"session_driver", a.cfg.Session.Driver,
	)

	// 启动知识目录监听（如果已配置）
	if a.knowledgeWatcher != nil {
		if err := a.knowledgeWatcher.Start(); err != nil {
			a.logger.Error("Failed to start knowledge watcher",
				"error", err,
			)
		}
	}

	// 启动 HTTP 服务器（goroutine）
	go func() {
		if err := a.HTTPServer.Start(); err != nil {
			a.logger.Error("Failed to start HTTP server",
				"error", err,
			)
		}
	}()

	a.logger.Info("Aide backend application started successfully")

	return nil
}

// Stop 停止所有服务
func (a *App) Stop() error {
	a.logger.Info("Stopping Aide backend application")

	// 停止知识目录监听
	if a.knowledgeWatcher != nil {
		if err := a.knowledgeWatcher.Stop(); err != nil {
			a.logger.Error("Failed to stop knowledge watcher",
				"error", err,
			)
		}
	}

	if err := a.HTTPServer.Stop(); err != nil {
		a.logger.Error("Failed to stop HTTP server",
			"error", err,
		)
		return err
	}

	// 关闭会话存储
	if a.sessionStore != nil {
		if err := a.sessionStore.Close(); err != nil {
			a.logger.Error("Failed to close session store",
				"error", err,
			)
			return err
		}
	}

	a.logger.Info("Aide backend application stopped successfully")

	return nil
}
