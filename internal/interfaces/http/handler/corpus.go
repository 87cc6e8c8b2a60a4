package handler

import (
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/suminyol/AyurSutra/internal/application/indexing"
	"github.com/suminyol/AyurSutra/internal/infrastructure/log"
)

// CorpusHandler 语料索引处理器
type CorpusHandler struct {
	service *indexing.Service
	logger  *slog.Logger
}

// NewCorpusHandler 创建语料处理器
func NewCorpusHandler(service *indexing.Service) *CorpusHandler {
	return &CorpusHandler{
		service: service,
		logger:  log.NewModuleLogger("http", "corpus_handler"),
	}
}

// Stats 查询索引统计信息
// GET /api/v1/corpus/stats
func (h *CorpusHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get corpus stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_documents": stats.TotalDocuments,
		"sources":         stats.Sources,
		"last_indexed_at": stats.LastIndexedAt,
	})
}
