package corpus

import "github.com/google/wire"

// ProviderSet 语料加载 ProviderSet
var ProviderSet = wire.NewSet(
	NewLoader,
)
