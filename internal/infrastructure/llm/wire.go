package llm

import "github.com/google/wire"

// ProviderSet LLM 模块 ProviderSet
var ProviderSet = wire.NewSet(
	NewClient,
)
