package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/suminyol/AyurSutra/internal/infrastructure/config"
)

// TestBuildEmbeddingURL 测试 URL 智能拼接
func TestBuildEmbeddingURL(t *testing.T) {
	assert.Equal(t, "https://api.openai.com/v1/embeddings", buildEmbeddingURL("https://api.openai.com/v1"))
	assert.Equal(t, "https://api.openai.com/v1/embeddings", buildEmbeddingURL("https://api.openai.com/v1/"))
	assert.Equal(t, "https://api.openai.com/v1/embeddings", buildEmbeddingURL("https://api.openai.com/v1/embeddings"))
	assert.Equal(t, "https://proxy.example.com/v1/embeddings", buildEmbeddingURL("https://proxy.example.com"))
}

// TestEmbedTexts_Success 测试批量向量化成功路径
func TestEmbedTexts_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req EmbeddingRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "text-embedding-3-small", req.Model)

		resp := map[string]interface{}{
			"data": []map[string]interface{}{
				// 故意乱序返回，客户端应按 index 重排
				{"embedding": []float32{0.4, 0.5}, "index": 1},
				{"embedding": []float32{0.1, 0.2}, "index": 0},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(&config.EmbeddingConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "text-embedding-3-small",
	})

	vectors, err := client.EmbedTexts(context.Background(), []string{"a", "b"})
	assert.NoError(t, err)
	assert.Len(t, vectors, 2)
	assert.Equal(t, []float32{0.1, 0.2}, vectors[0])
	assert.Equal(t, []float32{0.4, 0.5}, vectors[1])
}

// TestEmbedTexts_Empty 测试空输入
func TestEmbedTexts_Empty(t *testing.T) {
	client := NewClient(&config.EmbeddingConfig{BaseURL: "http://localhost"})
	_, err := client.EmbedTexts(context.Background(), nil)
	assert.Error(t, err)
}

// TestEmbedTexts_ServerError 测试服务端持续报错时耗尽重试，错误需携带响应内容
func TestEmbedTexts_ServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "rate limit exceeded"}`))
	}))
	defer server.Close()

	client := NewClient(&config.EmbeddingConfig{
		BaseURL:    server.URL,
		MaxRetries: 2,
	})

	_, err := client.EmbedTexts(context.Background(), []string{"a"})
	assert.Error(t, err)
	assert.Equal(t, 2, attempts)

	// 最后一次尝试的响应体必须出现在错误信息里
	assert.Contains(t, err.Error(), "status 500")
	assert.Contains(t, err.Error(), "rate limit exceeded")
}
