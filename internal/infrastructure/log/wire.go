package log

import "github.com/google/wire"

// ProviderSet 日志模块的依赖注入提供者集合
var ProviderSet = wire.NewSet(
	NewConfigFromEnv,
)
