package indexing

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/google/uuid"

	domainCorpus "github.com/suminyol/AyurSutra/internal/domain/corpus"
	infraCorpus "github.com/suminyol/AyurSutra/internal/infrastructure/corpus"
	"github.com/suminyol/AyurSutra/internal/infrastructure/embedding"
	"github.com/suminyol/AyurSutra/internal/infrastructure/log"
	"github.com/suminyol/AyurSutra/internal/infrastructure/vector"
)

// Service 语料索引服务
// 一次性离线任务：加载 CSV 语料，向量化后写入 Qdrant，并在 SQLite 记录元数据
type Service struct {
	loader          *infraCorpus.Loader
	embeddingClient *embedding.Client
	store           *vector.Store
	documentRepo    domainCorpus.DocumentRepository
	logger          *slog.Logger
}

// NewService 创建索引服务
func NewService(
	loader *infraCorpus.Loader,
	embeddingClient *embedding.Client,
	store *vector.Store,
	documentRepo domainCorpus.DocumentRepository,
) *Service {
	return &Service{
		loader:          loader,
		embeddingClient: embeddingClient,
		store:           store,
		documentRepo:    documentRepo,
		logger:          log.NewModuleLogger("indexing", "service"),
	}
}

// Result 索引结果
type Result struct {
	Documents  int
	Collection string
	Elapsed    time.Duration
}

// BuildIndex 构建语料索引
// 集合已存在时拒绝执行，避免重复写入；需先 Clear 再重建
func (s *Service) BuildIndex(ctx context.Context) (*Result, error) {
	started := time.Now()

	// 1. 幂等保护：集合已存在则拒绝
	exists, err := s.store.CollectionExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("collection %s already exists, run clear before re-indexing", s.store.Collection())
	}

	// 2. 加载语料
	rows, err := s.loader.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}

	s.logger.Info("Corpus loaded", "rows", len(rows))

	// 3. 批量向量化
	texts := make([]string, len(rows))
	for i, row := range rows {
		texts[i] = row.Content
	}

	vectors, err := s.embeddingClient.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed corpus: %w", err)
	}
	if len(vectors) != len(rows) {
		return nil, fmt.Errorf("embedding count mismatch: got %d vectors for %d rows", len(vectors), len(rows))
	}

	// 4. 按实际向量维度创建集合
	if len(vectors[0]) == 0 {
		return nil, fmt.Errorf("embedding returned empty vector")
	}
	if err := s.store.EnsureCollection(ctx, uint64(len(vectors[0]))); err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	// 5. 构建文档与向量点
	indexedAt := time.Now().Unix()
	docs := make([]*domainCorpus.ReferenceDocument, len(rows))
	points := make([]vector.Point, len(rows))

	for i, row := range rows {
		id := uuid.New().String()
		docs[i] = &domainCorpus.ReferenceDocument{
			ID:        id,
			Content:   row.Content,
			Source:    row.Source,
			RowIndex:  row.RowIndex,
			IndexedAt: indexedAt,
		}
		points[i] = vector.Point{
			ID:       id,
			Vector:   vectors[i],
			Content:  row.Content,
			Source:   row.Source,
			RowIndex: row.RowIndex,
		}
	}

	// 6. 写入 Qdrant
	if err := s.store.UpsertPoints(ctx, points); err != nil {
		return nil, fmt.Errorf("failed to upsert corpus vectors: %w", err)
	}

	// 7. 保存元数据到 SQLite
	if err := s.documentRepo.SaveDocuments(docs); err != nil {
		return nil, fmt.Errorf("failed to save document metadata: %w", err)
	}

	result := &Result{
		Documents:  len(docs),
		Collection: s.store.Collection(),
		Elapsed:    time.Since(started),
	}

	s.logger.Info("Index build completed",
		"documents", result.Documents,
		"collection", result.Collection,
		"elapsed", result.Elapsed.String(),
	)
	return result, nil
}

// Clear 删除语料集合与本地元数据（重建索引前的维护操作）
func (s *Service) Clear(ctx context.Context) error {
	exists, err := s.store.CollectionExists(ctx)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		if err := s.store.DeleteCollection(ctx); err != nil {
			return fmt.Errorf("failed to delete collection: %w", err)
		}
	} else {
		s.logger.Info("Collection does not exist, nothing to delete",
			"collection", s.store.Collection(),
		)
	}

	if err := s.documentRepo.DeleteAll(); err != nil {
		return fmt.Errorf("failed to clear document metadata: %w", err)
	}

	s.logger.Info("Index cleared", "collection", s.store.Collection())
	return nil
}

// Stats 查询索引统计信息
func (s *Service) Stats(ctx context.Context) (*domainCorpus.IndexStats, error) {
	stats, err := s.documentRepo.GetStats()
	if err != nil {
		return nil, fmt.Errorf("failed to get index stats: %w", err)
	}
	return stats, nil
}
