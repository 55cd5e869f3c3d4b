package knowledge

import "github.com/google/wire"

// ProviderSet 知识库应用层 ProviderSet
var ProviderSet = wire.NewSet(
	NewService,
)
