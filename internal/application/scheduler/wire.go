package scheduler

import (
	"github.com/google/wire"

	"github.com/suminyol/AyurSutra/internal/infrastructure/embedding"
	"github.com/suminyol/AyurSutra/internal/infrastructure/llm"
	"github.com/suminyol/AyurSutra/internal/infrastructure/vector"
)

// ProviderSet 排程应用层 ProviderSet
var ProviderSet = wire.NewSet(
	NewRetriever,
	NewAssembler,
	NewSynthesizer,
	NewValidator,
	NewService,
	wire.Bind(new(Embedder), new(*embedding.Client)),
	wire.Bind(new(Searcher), new(*vector.Store)),
	wire.Bind(new(ChatCompleter), new(*llm.Client)),
)
