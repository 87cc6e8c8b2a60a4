package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/suminyol/AyurSutra/internal/infrastructure/config"
	"github.com/suminyol/AyurSutra/internal/infrastructure/log"
)

// Row 语料文件中的一行记录
type Row struct {
	// Content 按 "列名: 值" 逐列拼接的文本，每列一行
	Content string
	// Source 来源文件名（不含目录）
	Source string
	// RowIndex 数据行号（跳过表头，从 0 开始）
	RowIndex int
}

// Loader CSV 语料加载器
type Loader struct {
	dir    string
	files  []string
	logger *slog.Logger
}

// NewLoader 创建语料加载器
func NewLoader(cfg *config.CorpusConfig) *Loader {
	return &Loader{
		dir:    cfg.Dir,
		files:  cfg.Files,
		logger: log.NewModuleLogger("corpus", "loader"),
	}
}

// LoadAll 加载全部配置的语料文件
func (l *Loader) LoadAll() ([]*Row, error) {
	if len(l.files) == 0 {
		return nil, fmt.Errorf("no corpus files configured")
	}

	var rows []*Row
	for _, file := range l.files {
		fileRows, err := l.loadFile(filepath.Join(l.dir, file))
		if err != nil {
			return nil, fmt.Errorf("failed to load corpus file %s: %w", file, err)
		}
		rows = append(rows, fileRows...)

		l.logger.Info("Corpus file loaded",
			"file", file,
			"rows", len(fileRows),
		)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("corpus files contained no rows")
	}

	l.logger.Info("Corpus loading completed",
		"files", len(l.files),
		"total_rows", len(rows),
	)
	return rows, nil
}

// loadFile 加载单个 CSV 文件，首行视为表头
func (l *Loader) loadFile(path string) ([]*Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// 语料行内可能包含换行与不规则列数，放宽校验
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	source := filepath.Base(path)
	var rows []*Row

	for rowIndex := 0; ; rowIndex++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", rowIndex, err)
		}

		rows = append(rows, &Row{
			Content:  renderRow(header, record),
			Source:   source,
			RowIndex: rowIndex,
		})
	}

	return rows, nil
}

// renderRow 将一行渲染为 "列名: 值" 文本，每列占一行
// 列数超出表头时使用位置占位名
func renderRow(header, record []string) string {
	var b strings.Builder
	for i, value := range record {
		if i > 0 {
			b.WriteByte('\n')
		}
		name := fmt.Sprintf("column_%d", i)
		if i < len(header) {
			name = strings.TrimSpace(header[i])
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(value))
	}
	return b.String()
}
