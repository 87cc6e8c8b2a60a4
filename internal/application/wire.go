package application

import (
	"github.com/google/wire"

	"github.com/suminyol/AyurSutra/internal/application/indexing"
	"github.com/suminyol/AyurSutra/internal/application/scheduler"
)

// ProviderSet Application 层总 ProviderSet
var ProviderSet = wire.NewSet(
	scheduler.ProviderSet,
	indexing.ProviderSet,
	// 可以继续添加其他应用服务模块
)
