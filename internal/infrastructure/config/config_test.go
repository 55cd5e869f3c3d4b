package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv 清除本包用到的环境变量
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		EnvHTTPPort, EnvDebug, EnvLLMBase, EnvLLMModel, EnvLLMAPIKey,
		EnvQdrantURL, EnvQdrantAPIKey, EnvQdrantCollection,
		EnvEmbeddingBase, EnvEmbeddingAPIKey, EnvEmbeddingModel, EnvEmbeddingDimension,
		EnvSessionStore, EnvRedisAddr, EnvSystemPrompt, EnvKnowledgeWatchDir,
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.HTTPPort)
	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, "http://localhost:1234/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "qwen2.5-coder-7b-instruct", cfg.LLM.Model)
	assert.Equal(t, "lm-studio", cfg.LLM.APIKey)
	assert.Equal(t, 384, cfg.Embedding.Dimension)
	assert.Equal(t, "all-MiniLM-L6-v2", cfg.Embedding.Model)
	assert.Equal(t, "", cfg.Vector.URL, "未设置 QDRANT_URL 时检索应视为未配置")
	assert.Equal(t, "aide-knowledge", cfg.Vector.Collection)
	assert.Equal(t, "memory", cfg.Session.Driver)
	assert.True(t, strings.HasPrefix(cfg.SystemPrompt, "You are Aide"))
}

func TestNewConfig_EnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvHTTPPort, ":8080")
	t.Setenv(EnvLLMBase, "http://llm.internal:8000/v1")
	t.Setenv(EnvQdrantURL, "http://qdrant.internal:6334")
	t.Setenv(EnvQdrantCollection, "kb")
	t.Setenv(EnvEmbeddingDimension, "768")
	t.Setenv(EnvSessionStore, "redis")
	t.Setenv(EnvDebug, "false")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.HTTPPort)
	assert.Equal(t, "http://llm.internal:8000/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "http://qdrant.internal:6334", cfg.Vector.URL)
	assert.Equal(t, "kb", cfg.Vector.Collection)
	assert.Equal(t, 768, cfg.Embedding.Dimension)
	assert.Equal(t, "redis", cfg.Session.Driver)
	assert.False(t, cfg.Server.Debug)
}

func TestNewConfig_PortWithoutColon(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvHTTPPort, "5000")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Server.HTTPPort)
}

func TestNewConfig_MalformedDimension(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvEmbeddingDimension, "not-a-number")

	_, err := NewConfig()
	require.Error(t, err, "非法的数值配置应导致启动失败")
	assert.Contains(t, err.Error(), EnvEmbeddingDimension)
}

func TestNewConfig_MalformedDebug(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDebug, "yes-please")

	_, err := NewConfig()
	require.Error(t, err)
}
