package watcher

import (
	"github.com/google/wire"

	"github.com/aidechat/backend/internal/infrastructure/config"
)

// ProvideKnowledgeWatcher 按配置创建知识目录监听器
// 未配置监听目录时返回 nil，应用按未启用处理
func ProvideKnowledgeWatcher(cfg *config.Config, ingestor Ingestor) *KnowledgeWatcher {
	return NewKnowledgeWatcher(cfg.Knowledge.WatchDir, ingestor)
}

// ProviderSet 知识监听 ProviderSet
var ProviderSet = wire.NewSet(
	ProvideKnowledgeWatcher,
)
