package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidechat/backend/internal/domain/chat"
	"github.com/aidechat/backend/internal/infrastructure/config"
)

// capturedRequest 记录发给假服务的请求体
type capturedRequest struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

// newFakeCompletionServer 返回固定回复的 OpenAI 兼容假服务
func newFakeCompletionServer(t *testing.T, reply string, captured *capturedRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/chat/completions"):
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":      "chatcmpl-test",
				"object":  "chat.completion",
				"choices": []map[string]any{{
					"index":         0,
					"message":       map[string]any{"role": "assistant", "content": reply},
					"finish_reason": "stop",
				}},
				"usage": map[string]any{"total_tokens": 7},
			})
		case strings.HasSuffix(r.URL.Path, "/models"):
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"test-model","object":"model"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func newTestClient(baseURL string) *Client {
	cfg := &config.Config{SystemPrompt: "You are a test assistant."}
	cfg.LLM.BaseURL = baseURL
	cfg.LLM.APIKey = "test-key"
	cfg.LLM.Model = "test-model"
	return NewClient(cfg)
}

func TestChat_MessageOrder(t *testing.T) {
	var captured capturedRequest
	server := newFakeCompletionServer(t, "the answer", &captured)
	defer server.Close()

	client := newTestClient(server.URL)

	history := []chat.Message{
		chat.NewUserMessage("earlier question"),
		chat.NewAssistantMessage("earlier answer"),
	}

	reply, err := client.Chat(context.Background(), "current question", "", history)
	require.NoError(t, err)
	assert.Equal(t, "the answer", reply)

	// 恰好一条系统消息开头，用户消息收尾
	require.Len(t, captured.Messages, 4)
	assert.Equal(t, chat.RoleSystem, captured.Messages[0].Role)
	assert.Equal(t, chat.RoleUser, captured.Messages[1].Role)
	assert.Equal(t, "earlier question", captured.Messages[1].Content)
	assert.Equal(t, chat.RoleAssistant, captured.Messages[2].Role)
	assert.Equal(t, chat.RoleUser, captured.Messages[3].Role)
	assert.Equal(t, "current question", captured.Messages[3].Content)

	assert.Equal(t, "test-model", captured.Model)
	assert.InDelta(t, 0.7, captured.Temperature, 0.0001)
	assert.Equal(t, 2048, captured.MaxTokens)
}

func TestChat_ContextAppendedToSystemPrompt(t *testing.T) {
	var captured capturedRequest
	server := newFakeCompletionServer(t, "ok", &captured)
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Chat(context.Background(), "question", "doc one\n\ndoc two", nil)
	require.NoError(t, err)

	require.NotEmpty(t, captured.Messages)
	system := captured.Messages[0].Content
	assert.True(t, strings.HasPrefix(system, "You are a test assistant."))
	assert.Contains(t, system, contextHeading)
	assert.Contains(t, system, "doc one")
}

func TestChat_NoContextNoHeading(t *testing.T) {
	var captured capturedRequest
	server := newFakeCompletionServer(t, "ok", &captured)
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Chat(context.Background(), "question", "", nil)
	require.NoError(t, err)
	assert.NotContains(t, captured.Messages[0].Content, contextHeading)
}

func TestChat_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "boom"}}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Chat(context.Background(), "question", "", nil)
	require.Error(t, err)
}

func TestIsAvailable(t *testing.T) {
	var captured capturedRequest
	server := newFakeCompletionServer(t, "ok", &captured)
	defer server.Close()

	client := newTestClient(server.URL)
	assert.True(t, client.IsAvailable(context.Background()))

	server.Close()
	assert.False(t, client.IsAvailable(context.Background()))
}
