package infrastructure

import (
	"github.com/google/wire"

	"github.com/suminyol/AyurSutra/internal/infrastructure/config"
	"github.com/suminyol/AyurSutra/internal/infrastructure/corpus"
	"github.com/suminyol/AyurSutra/internal/infrastructure/embedding"
	"github.com/suminyol/AyurSutra/internal/infrastructure/llm"
	"github.com/suminyol/AyurSutra/internal/infrastructure/storage"
	"github.com/suminyol/AyurSutra/internal/infrastructure/vector"
)

// ProviderSet Infrastructure 层总 ProviderSet
var ProviderSet = wire.NewSet(
	config.ProviderSet,
	corpus.ProviderSet,
	embedding.ProviderSet,
	llm.ProviderSet,
	vector.ProviderSet,
	storage.ProviderSet,
	// 可以继续添加其他基础设施模块
)
