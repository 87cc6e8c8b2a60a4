package corpus

// ReferenceDocument 参考语料文档
// 对应语料源文件中的一行记录，建立索引后不再变更
type ReferenceDocument struct {
	// ID UUID，同时作为 Qdrant point_id
	ID string

	// Content 文档文本内容（按 "列名: 值" 拼接的行内容）
	Content string

	// Source 来源文件名
	Source string

	// RowIndex 在来源文件中的行号（从 0 开始）
	RowIndex int

	// IndexedAt 索引时间（Unix 秒）
	IndexedAt int64
}

// IndexStats 索引统计信息
type IndexStats struct {
	TotalDocuments int      // 已索引文档总数
	Sources        []string // 来源文件列表
	LastIndexedAt  int64    // 最后一次索引时间（Unix 秒）
}

// DocumentRepository 文档元数据仓库接口
type DocumentRepository interface {
	// SaveDocuments 批量保存文档元数据
	SaveDocuments(docs []*ReferenceDocument) error

	// GetDocument 按 ID 查询单个文档
	GetDocument(id string) (*ReferenceDocument, error)

	// GetStats 查询索引统计信息
	GetStats() (*IndexStats, error)

	// DeleteAll 清空全部文档元数据（重建索引前的维护操作）
	DeleteAll() error
}
