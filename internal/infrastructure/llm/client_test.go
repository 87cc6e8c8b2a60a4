package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/suminyol/AyurSutra/internal/infrastructure/config"
)

// TestChatJSON_Success 测试结构化输出请求成功路径
func TestChatJSON_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req ChatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.NotNil(t, req.ResponseFormat)
		assert.Equal(t, "json_object", req.ResponseFormat.Type)

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"message":       map[string]string{"role": "assistant", "content": `{"schedule": []}`},
					"finish_reason": "stop",
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(&config.LLMConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "gemini-2.5-pro",
	})

	content, err := client.ChatJSON(context.Background(), "system prompt", "user prompt")
	assert.NoError(t, err)
	assert.Equal(t, `{"schedule": []}`, content)
}

// TestChatJSON_NoChoices 测试空 choices 响应
func TestChatJSON_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	client := NewClient(&config.LLMConfig{BaseURL: server.URL})
	_, err := client.ChatJSON(context.Background(), "s", "u")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

// TestChatJSON_ClientErrorNoRetry 测试 4xx 不消耗重试预算，错误需携带响应内容
func TestChatJSON_ClientErrorNoRetry(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "invalid api key"}`))
	}))
	defer server.Close()

	client := NewClient(&config.LLMConfig{BaseURL: server.URL, MaxRetries: 3})
	_, err := client.ChatJSON(context.Background(), "s", "u")
	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "invalid api key")
}

// TestChatJSON_ServerErrorExhaustsRetries 测试 5xx 耗尽重试后错误携带最终响应内容
func TestChatJSON_ServerErrorExhaustsRetries(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error": "upstream overloaded"}`))
	}))
	defer server.Close()

	client := NewClient(&config.LLMConfig{BaseURL: server.URL, MaxRetries: 2})
	_, err := client.ChatJSON(context.Background(), "s", "u")
	assert.Error(t, err)
	assert.Equal(t, 2, attempts)
	assert.Contains(t, err.Error(), "status 502")
	assert.Contains(t, err.Error(), "upstream overloaded")
}

// TestChatJSON_ServerErrorRetries 测试 5xx 按预算重试
func TestChatJSON_ServerErrorRetries(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "{}"}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(&config.LLMConfig{BaseURL: server.URL, MaxRetries: 3})
	content, err := client.ChatJSON(context.Background(), "s", "u")
	assert.NoError(t, err)
	assert.Equal(t, "{}", content)
	assert.Equal(t, 2, attempts)
}
