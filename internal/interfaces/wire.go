package interfaces

import (
	"github.com/google/wire"

	"github.com/suminyol/AyurSutra/internal/interfaces/http"
	"github.com/suminyol/AyurSutra/internal/interfaces/mcp"
)

// ProviderSet Interfaces 层总 ProviderSet
var ProviderSet = wire.NewSet(
	http.ProviderSet,
	mcp.ProviderSet,
)
