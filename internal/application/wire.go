package application

import (
	"github.com/google/wire"

	"github.com/aidechat/backend/internal/application/chat"
	"github.com/aidechat/backend/internal/application/knowledge"
)

// ProviderSet Application 层总 ProviderSet
var ProviderSet = wire.NewSet(
	knowledge.ProviderSet,
	chat.ProviderSet,
)
