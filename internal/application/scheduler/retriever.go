package scheduler

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/suminyol/AyurSutra/internal/infrastructure/config"
	"github.com/suminyol/AyurSutra/internal/infrastructure/log"
	"github.com/suminyol/AyurSutra/internal/infrastructure/vector"
)

// Embedder 查询向量化接口
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Searcher 向量相似度检索接口
type Searcher interface {
	Search(ctx context.Context, queryVector []float32, limit int) ([]*vector.Hit, error)
}

// Passage 检索到的语料片段，按相似度降序排列
type Passage struct {
	Content string
	Source  string
	Score   float32
}

// Retriever 语料检索器
// 查询向量化必须与索引时使用同一 embedding 模型，否则检索结果无意义
type Retriever struct {
	embedder Embedder
	searcher Searcher
	topK     int
	logger   *slog.Logger
}

// NewRetriever 创建检索器
func NewRetriever(embedder Embedder, searcher Searcher, cfg *config.PipelineConfig) *Retriever {
	topK := cfg.TopK
	if topK <= 0 {
		topK = 5
	}

	return &Retriever{
		embedder: embedder,
		searcher: searcher,
		topK:     topK,
		logger:   log.NewModuleLogger("scheduler", "retriever"),
	}
}

// Retrieve 检索与患者描述最相关的语料片段
// 检索失败时上抛 RetrievalError，调用方不得以空上下文继续生成
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]Passage, error) {
	return r.RetrieveN(ctx, query, r.topK)
}

// RetrieveN 按指定条数检索语料片段
func (r *Retriever) RetrieveN(ctx context.Context, query string, limit int) ([]Passage, error) {
	if limit <= 0 {
		limit = r.topK
	}

	queryVector, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, &RetrievalError{Err: fmt.Errorf("failed to embed query: %w", err)}
	}

	hits, err := r.searcher.Search(ctx, queryVector, limit)
	if err != nil {
		return nil, &RetrievalError{Err: fmt.Errorf("failed to search corpus: %w", err)}
	}

	if len(hits) == 0 {
		return nil, &RetrievalError{Err: fmt.Errorf("corpus search returned no passages")}
	}

	passages := make([]Passage, len(hits))
	for i, hit := range hits {
		passages[i] = Passage{
			Content: hit.Content,
			Source:  hit.Source,
			Score:   hit.Score,
		}
	}

	r.logger.Debug("Passages retrieved",
		"count", len(passages),
		"top_score", passages[0].Score,
	)
	return passages, nil
}
