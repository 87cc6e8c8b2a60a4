package vector

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/qdrant/go-client/qdrant"

	"github.com/suminyol/AyurSutra/internal/infrastructure/config"
	"github.com/suminyol/AyurSutra/internal/infrastructure/log"
)

// Store Qdrant 向量存储
// 连接外部 Qdrant 实例（本地或云端），管理语料集合的生命周期
type Store struct {
	client     *qdrant.Client
	collection string
	logger     *slog.Logger
}

// Hit 向量检索命中结果
type Hit struct {
	ID       string
	Score    float32
	Content  string
	Source   string
	RowIndex int64
}

// Point 待写入的向量点
type Point struct {
	ID       string
	Vector   []float32
	Content  string
	Source   string
	RowIndex int
}

// NewStore 创建向量存储并建立连接
func NewStore(cfg *config.QdrantConfig) (*Store, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to qdrant: %w", err)
	}

	return &Store{
		client:     client,
		collection: cfg.Collection,
		logger:     log.NewModuleLogger("vector", "store"),
	}, nil
}

// Collection 集合名称
func (s *Store) Collection() string {
	return s.collection
}

// Close 关闭连接
func (s *Store) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// CollectionExists 检查语料集合是否存在
func (s *Store) CollectionExists(ctx context.Context) (bool, error) {
	names, err := s.client.ListCollections(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list collections: %w", err)
	}
	for _, name := range names {
		if name == s.collection {
			return true, nil
		}
	}
	return false, nil
}

// EnsureCollection 确保语料集合存在，不存在时按给定维度创建
func (s *Store) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	exists, err := s.CollectionExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		s.logger.Debug("Collection already exists", "collection", s.collection)
		return nil
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection %s: %w", s.collection, err)
	}

	s.logger.Info("Collection created",
		"collection", s.collection,
		"vector_size", vectorSize,
	)
	return nil
}

// DeleteCollection 删除语料集合（重建索引前的维护操作）
func (s *Store) DeleteCollection(ctx context.Context) error {
	err := s.client.DeleteCollection(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to delete collection %s: %w", s.collection, err)
	}

	s.logger.Info("Collection deleted", "collection", s.collection)
	return nil
}

// UpsertPoints 批量写入向量点
func (s *Store) UpsertPoints(ctx context.Context, points []Point) error {
	if len(points) == 0 {
		return nil
	}

	qdrantPoints := make([]*qdrant.PointStruct, len(points))
	for i, p := range points {
		vectorArgs := make([]float32, len(p.Vector))
		copy(vectorArgs, p.Vector)

		qdrantPoints[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(p.ID),
			Vectors: qdrant.NewVectors(vectorArgs...),
			Payload: qdrant.NewValueMap(map[string]interface{}{
				"content":   p.Content,
				"source":    p.Source,
				"row_index": p.RowIndex,
			}),
		}
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         qdrantPoints,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	s.logger.Debug("Points upserted",
		"collection", s.collection,
		"count", len(points),
	)
	return nil
}

// Search 向量相似度检索，返回按得分降序的命中结果
func (s *Store) Search(ctx context.Context, queryVector []float32, limit int) ([]*Hit, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	qdrantLimit := uint64(limit)
	searchResp, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(queryVector...),
		Limit:          &qdrantLimit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query qdrant: %w", err)
	}

	hits := make([]*Hit, 0, len(searchResp))
	for _, scored := range searchResp {
		hit := scoredPointToHit(scored)
		if hit != nil {
			hits = append(hits, hit)
		}
	}

	s.logger.Debug("Search completed",
		"collection", s.collection,
		"hits", len(hits),
	)
	return hits, nil
}

// scoredPointToHit 将 Qdrant 命中转换为领域结果
func scoredPointToHit(scored *qdrant.ScoredPoint) *Hit {
	payload := scored.GetPayload()
	if payload == nil {
		return nil
	}

	hit := &Hit{
		Score: scored.GetScore(),
	}

	if id := scored.GetId(); id != nil {
		hit.ID = id.GetUuid()
	}
	if val, ok := payload["content"]; ok {
		hit.Content = extractStringValue(val)
	}
	if val, ok := payload["source"]; ok {
		hit.Source = extractStringValue(val)
	}
	if val, ok := payload["row_index"]; ok {
		hit.RowIndex = extractIntValue(val)
	}

	return hit
}

// extractStringValue 从 qdrant.Value 提取字符串值
func extractStringValue(val *qdrant.Value) string {
	if val == nil {
		return ""
	}
	return val.GetStringValue()
}

// extractIntValue 从 qdrant.Value 提取整数值
func extractIntValue(val *qdrant.Value) int64 {
	if val == nil {
		return 0
	}
	if intVal := val.GetIntegerValue(); intVal != 0 {
		return intVal
	}
	if dblVal := val.GetDoubleValue(); dblVal != 0 {
		return int64(dblVal)
	}
	return 0
}
