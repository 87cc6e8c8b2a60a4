package embedding

import "github.com/google/wire"

// ProviderSet Embedding 模块 ProviderSet
var ProviderSet = wire.NewSet(
	NewClient,
)
