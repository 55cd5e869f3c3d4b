package chat

import "github.com/google/wire"

// ProviderSet 对话应用层 ProviderSet
var ProviderSet = wire.NewSet(
	NewService,
)
