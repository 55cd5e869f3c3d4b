package infrastructure

import (
	"github.com/google/wire"

	"github.com/aidechat/backend/internal/infrastructure/config"
	"github.com/aidechat/backend/internal/infrastructure/embedding"
	"github.com/aidechat/backend/internal/infrastructure/llm"
	"github.com/aidechat/backend/internal/infrastructure/session"
	"github.com/aidechat/backend/internal/infrastructure/watcher"
)

// ProviderSet Infrastructure 层总 ProviderSet
var ProviderSet = wire.NewSet(
	config.ProviderSet,
	session.ProviderSet,
	embedding.ProviderSet,
	llm.ProviderSet,
	watcher.ProviderSet,
)
