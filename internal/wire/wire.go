//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"

	"github.com/aidechat/backend/internal/application"
	appChat "github.com/aidechat/backend/internal/application/chat"
	"github.com/aidechat/backend/internal/application/knowledge"
	"github.com/aidechat/backend/internal/infrastructure"
	"github.com/aidechat/backend/internal/infrastructure/llm"
	"github.com/aidechat/backend/internal/infrastructure/watcher"
	"github.com/aidechat/backend/internal/interfaces"
)

// InitializeAll 初始化完整应用
func InitializeAll() (*App, error) {
	wire.Build(
		// 按层组合 ProviderSet
		infrastructure.ProviderSet, // 基础设施层
		application.ProviderSet,    // 应用层
		interfaces.ProviderSet,     // 接口层
		// 接口绑定
		wire.Bind(new(appChat.Completer), new(*llm.Client)),
		wire.Bind(new(appChat.Retriever), new(*knowledge.Service)),
		wire.Bind(new(watcher.Ingestor), new(*knowledge.Service)),
		NewApp,
	)
	return nil, nil
}
