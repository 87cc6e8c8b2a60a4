package config

import (
	"os"
	"strconv"
)

// 环境变量名
const (
	EnvHTTPPort        = "AYURSUTRA_HTTP_PORT"
	EnvQdrantHost      = "AYURSUTRA_QDRANT_HOST"
	EnvQdrantPort      = "AYURSUTRA_QDRANT_PORT"
	EnvQdrantAPIKey    = "QDRANT_API_KEY"
	EnvCollection      = "AYURSUTRA_COLLECTION"
	EnvEmbeddingURL    = "AYURSUTRA_EMBEDDING_URL"
	EnvEmbeddingKey    = "OPENAI_API_KEY"
	EnvEmbeddingModel  = "AYURSUTRA_EMBEDDING_MODEL"
	EnvLLMURL          = "AYURSUTRA_LLM_URL"
	EnvLLMKey          = "GEMINI_API_KEY"
	EnvLLMModel        = "AYURSUTRA_LLM_MODEL"
	EnvDatabasePath    = "AYURSUTRA_DB_PATH"
	EnvCorpusDir       = "AYURSUTRA_CORPUS_DIR"
	EnvConfigFile      = "AYURSUTRA_CONFIG_FILE"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Qdrant    QdrantConfig    `yaml:"qdrant"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	Database  DatabaseConfig  `yaml:"database"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	HTTPPort string `yaml:"http_port"`
}

// QdrantConfig 向量数据库配置
type QdrantConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// APIKey 云端实例密钥，本地部署留空
	APIKey string `yaml:"api_key"`
	// UseTLS 云端实例需要开启
	UseTLS bool `yaml:"use_tls"`
	// Collection 语料集合名称
	Collection string `yaml:"collection"`
}

// EmbeddingConfig 向量化服务配置（OpenAI 兼容接口）
type EmbeddingConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	// TimeoutSeconds 单次请求超时
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// MaxRetries 失败重试次数
	MaxRetries int `yaml:"max_retries"`
}

// LLMConfig 生成模型配置（OpenAI 兼容接口）
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	// TimeoutSeconds 单次请求超时；排程生成耗时较长，默认放宽
	TimeoutSeconds int `yaml:"timeout_seconds"`
	MaxRetries     int `yaml:"max_retries"`
	// Temperature 采样温度，结构化输出场景保持低温
	Temperature float64 `yaml:"temperature"`
}

// DatabaseConfig 元数据数据库配置
type DatabaseConfig struct {
	// Path SQLite 文件路径，空值表示使用数据目录下的默认文件
	Path string `yaml:"path"`
}

// CorpusConfig 语料配置
type CorpusConfig struct {
	// Dir 语料 CSV 文件所在目录
	Dir string `yaml:"dir"`
	// Files 待索引的 CSV 文件名列表
	Files []string `yaml:"files"`
}

// PipelineConfig 排程生成管线配置
type PipelineConfig struct {
	// TopK 检索返回的语料条数
	TopK int `yaml:"top_k"`
	// MaxRepairAttempts 校验失败后的重新生成预算（含首次生成）
	MaxRepairAttempts int `yaml:"max_repair_attempts"`
	// PromptTokenBudget 提示词 token 上限，超出时截断检索上下文
	PromptTokenBudget int `yaml:"prompt_token_budget"`
}

// NewConfig 创建配置（默认值 + 配置文件 + 环境变量，优先级递增）
func NewConfig() *Config {
	cfg := defaultConfig()

	if path := getEnv(EnvConfigFile, ""); path != "" {
		// 配置文件缺失或损坏时保留默认值，由启动日志提示
		_ = loadFromFile(cfg, path)
	}

	applyEnvOverrides(cfg)
	return cfg
}

// defaultConfig 默认配置
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort: ":8000",
		},
		Qdrant: QdrantConfig{
			Host:       "localhost",
			Port:       6334,
			Collection: "panchkarma-new-data",
		},
		Embedding: EmbeddingConfig{
			BaseURL:        "https://api.openai.com/v1",
			Model:          "text-embedding-3-small",
			TimeoutSeconds: 30,
			MaxRetries:     3,
		},
		LLM: LLMConfig{
			BaseURL:        "https://generativelanguage.googleapis.com/v1beta/openai",
			Model:          "gemini-2.5-pro",
			TimeoutSeconds: 120,
			MaxRetries:     2,
			Temperature:    0.2,
		},
		Database: DatabaseConfig{
			Path: "",
		},
		Corpus: CorpusConfig{
			Dir:   "data",
			Files: []string{"data1.csv", "data2.csv", "data3.csv", "data4.csv"},
		},
		Pipeline: PipelineConfig{
			TopK:              5,
			MaxRepairAttempts: 3,
			PromptTokenBudget: 100000,
		},
	}
}

// applyEnvOverrides 环境变量覆盖
func applyEnvOverrides(cfg *Config) {
	cfg.Server.HTTPPort = getEnv(EnvHTTPPort, cfg.Server.HTTPPort)
	cfg.Qdrant.Host = getEnv(EnvQdrantHost, cfg.Qdrant.Host)
	cfg.Qdrant.Port = getEnvInt(EnvQdrantPort, cfg.Qdrant.Port)
	cfg.Qdrant.APIKey = getEnv(EnvQdrantAPIKey, cfg.Qdrant.APIKey)
	cfg.Qdrant.Collection = getEnv(EnvCollection, cfg.Qdrant.Collection)
	cfg.Embedding.BaseURL = getEnv(EnvEmbeddingURL, cfg.Embedding.BaseURL)
	cfg.Embedding.APIKey = getEnv(EnvEmbeddingKey, cfg.Embedding.APIKey)
	cfg.Embedding.Model = getEnv(EnvEmbeddingModel, cfg.Embedding.Model)
	cfg.LLM.BaseURL = getEnv(EnvLLMURL, cfg.LLM.BaseURL)
	cfg.LLM.APIKey = getEnv(EnvLLMKey, cfg.LLM.APIKey)
	cfg.LLM.Model = getEnv(EnvLLMModel, cfg.LLM.Model)
	cfg.Database.Path = getEnv(EnvDatabasePath, cfg.Database.Path)
	cfg.Corpus.Dir = getEnv(EnvCorpusDir, cfg.Corpus.Dir)
}

// NewServerConfig 创建服务器配置
func NewServerConfig(cfg *Config) *ServerConfig {
	return &cfg.Server
}

// NewQdrantConfig 创建向量数据库配置
func NewQdrantConfig(cfg *Config) *QdrantConfig {
	return &cfg.Qdrant
}

// NewEmbeddingConfig 创建向量化服务配置
func NewEmbeddingConfig(cfg *Config) *EmbeddingConfig {
	return &cfg.Embedding
}

// NewLLMConfig 创建生成模型配置
func NewLLMConfig(cfg *Config) *LLMConfig {
	return &cfg.LLM
}

// NewDatabaseConfig 创建数据库配置
func NewDatabaseConfig(cfg *Config) *DatabaseConfig {
	return &cfg.Database
}

// NewCorpusConfig 创建语料配置
func NewCorpusConfig(cfg *Config) *CorpusConfig {
	return &cfg.Corpus
}

// NewPipelineConfig 创建管线配置
func NewPipelineConfig(cfg *Config) *PipelineConfig {
	return &cfg.Pipeline
}

// getEnv 获取环境变量，带默认值
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt 获取整型环境变量，解析失败时返回默认值
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
