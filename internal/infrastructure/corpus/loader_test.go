package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/suminyol/AyurSutra/internal/infrastructure/config"
)

// writeCorpusFile 写入测试语料文件
func writeCorpusFile(t *testing.T, dir, name, content string) {
	t.Helper()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

// TestLoadAll_RendersHeaderValuePairs 测试行渲染格式
func TestLoadAll_RendersHeaderValuePairs(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "data1.csv",
		"Symptoms,Treatment,Duration\njoint pain,Abhyanga,7 days\nindigestion,Virechana,5 days\n")

	loader := NewLoader(&config.CorpusConfig{
		Dir:   dir,
		Files: []string{"data1.csv"},
	})

	rows, err := loader.LoadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 2)

	assert.Equal(t, "Symptoms: joint pain\nTreatment: Abhyanga\nDuration: 7 days", rows[0].Content)
	assert.Equal(t, "data1.csv", rows[0].Source)
	assert.Equal(t, 0, rows[0].RowIndex)
	assert.Equal(t, 1, rows[1].RowIndex)
}

// TestLoadAll_MultipleFiles 测试多文件合并加载
func TestLoadAll_MultipleFiles(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "data1.csv", "A\n1\n")
	writeCorpusFile(t, dir, "data2.csv", "B\n2\n3\n")

	loader := NewLoader(&config.CorpusConfig{
		Dir:   dir,
		Files: []string{"data1.csv", "data2.csv"},
	})

	rows, err := loader.LoadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, "data1.csv", rows[0].Source)
	assert.Equal(t, "data2.csv", rows[1].Source)
}

// TestLoadAll_MissingFile 测试缺失文件报错
func TestLoadAll_MissingFile(t *testing.T) {
	loader := NewLoader(&config.CorpusConfig{
		Dir:   t.TempDir(),
		Files: []string{"missing.csv"},
	})

	_, err := loader.LoadAll()
	assert.Error(t, err)
}

// TestLoadAll_RaggedColumns 测试列数不规则的行
func TestLoadAll_RaggedColumns(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "data1.csv", "A,B\n1,2,3\n")

	loader := NewLoader(&config.CorpusConfig{
		Dir:   dir,
		Files: []string{"data1.csv"},
	})

	rows, err := loader.LoadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "A: 1\nB: 2\ncolumn_2: 3", rows[0].Content)
}
