package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv(EnvHTTPPort, "")
	t.Setenv(EnvCollection, "")
	t.Setenv(EnvConfigFile, "")

	cfg := NewConfig()
	assert.Equal(t, ":8000", cfg.Server.HTTPPort)
	assert.Equal(t, "panchkarma-new-data", cfg.Qdrant.Collection)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
	assert.Equal(t, 5, cfg.Pipeline.TopK)
	assert.Equal(t, 3, cfg.Pipeline.MaxRepairAttempts)
}

func TestNewConfig_EnvOverride(t *testing.T) {
	t.Setenv(EnvHTTPPort, ":9000")
	t.Setenv(EnvCollection, "panchkarma-test")
	t.Setenv(EnvQdrantPort, "7334")
	t.Setenv(EnvConfigFile, "")

	cfg := NewConfig()
	assert.Equal(t, ":9000", cfg.Server.HTTPPort)
	assert.Equal(t, "panchkarma-test", cfg.Qdrant.Collection)
	assert.Equal(t, 7334, cfg.Qdrant.Port)
}

func TestNewConfig_InvalidEnvInt(t *testing.T) {
	t.Setenv(EnvQdrantPort, "not-a-number")
	t.Setenv(EnvConfigFile, "")

	cfg := NewConfig()
	assert.Equal(t, 6334, cfg.Qdrant.Port, "非法端口应回退默认值")
}

func TestNewConfig_FileOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  http_port: ":8800"
pipeline:
  top_k: 8
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv(EnvConfigFile, path)
	t.Setenv(EnvHTTPPort, "")

	cfg := NewConfig()
	assert.Equal(t, ":8800", cfg.Server.HTTPPort)
	assert.Equal(t, 8, cfg.Pipeline.TopK)
	// 文件未出现的字段保留默认值
	assert.Equal(t, "panchkarma-new-data", cfg.Qdrant.Collection)
}

func TestNewConfig_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("server:\n  http_port: \":8800\"\n"), 0644))

	t.Setenv(EnvConfigFile, path)
	t.Setenv(EnvHTTPPort, ":9100")

	cfg := NewConfig()
	assert.Equal(t, ":9100", cfg.Server.HTTPPort, "环境变量优先级高于配置文件")
}
