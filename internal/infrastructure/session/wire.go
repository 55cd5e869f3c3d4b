package session

import "github.com/google/wire"

// ProviderSet 会话存储 ProviderSet
var ProviderSet = wire.NewSet(
	NewStore,
)
