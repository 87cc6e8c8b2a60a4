package storage

import (
	"database/sql"

	domainCorpus "github.com/suminyol/AyurSutra/internal/domain/corpus"
)

// 确保 DocumentRepository 实现了领域仓库接口
var _ domainCorpus.DocumentRepository = (*DocumentRepository)(nil)

// DocumentRepository 语料文档元数据仓库实现
type DocumentRepository struct {
	db *sql.DB
}

// NewDocumentRepository 创建文档仓库实例
func NewDocumentRepository(db *sql.DB) domainCorpus.DocumentRepository {
	return &DocumentRepository{
		db: db,
	}
}

// SaveDocuments 批量保存文档元数据
func (r *DocumentRepository) SaveDocuments(docs []*domainCorpus.ReferenceDocument) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO reference_documents (
			id, content, source, row_index, indexed_at
		) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, doc := range docs {
		_, err := stmt.Exec(
			doc.ID,
			doc.Content,
			doc.Source,
			doc.RowIndex,
			doc.IndexedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetDocument 按 ID 查询单个文档
func (r *DocumentRepository) GetDocument(id string) (*domainCorpus.ReferenceDocument, error) {
	query := `
		SELECT id, content, source, row_index, indexed_at
		FROM reference_documents
		WHERE id = ?`

	var doc domainCorpus.ReferenceDocument
	err := r.db.QueryRow(query, id).Scan(
		&doc.ID,
		&doc.Content,
		&doc.Source,
		&doc.RowIndex,
		&doc.IndexedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// GetStats 查询索引统计信息
func (r *DocumentRepository) GetStats() (*domainCorpus.IndexStats, error) {
	stats := &domainCorpus.IndexStats{}

	err := r.db.QueryRow(`
		SELECT COUNT(*), COALESCE(MAX(indexed_at), 0)
		FROM reference_documents`).Scan(&stats.TotalDocuments, &stats.LastIndexedAt)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(`
		SELECT DISTINCT source
		FROM reference_documents
		ORDER BY source`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			return nil, err
		}
		stats.Sources = append(stats.Sources, source)
	}

	return stats, rows.Err()
}

// DeleteAll 清空全部文档元数据
func (r *DocumentRepository) DeleteAll() error {
	_, err := r.db.Exec("DELETE FROM reference_documents")
	return err
}
