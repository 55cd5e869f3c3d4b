package config

import (
	"fmt"
	"os"
	"strconv"
)

// 环境变量名
const (
	EnvHTTPPort  = "HTTP_PORT"
	EnvDebug     = "DEBUG"
	EnvLLMBase   = "LLM_BASE_URL"
	EnvLLMModel  = "LLM_MODEL"
	EnvLLMAPIKey = "LLM_API_KEY"

	EnvQdrantURL        = "QDRANT_URL"
	EnvQdrantAPIKey     = "QDRANT_API_KEY"
	EnvQdrantCollection = "QDRANT_COLLECTION"

	EnvEmbeddingBase      = "EMBEDDING_BASE_URL"
	EnvEmbeddingAPIKey    = "EMBEDDING_API_KEY"
	EnvEmbeddingModel     = "EMBEDDING_MODEL"
	EnvEmbeddingDimension = "EMBEDDING_DIMENSION"

	EnvSessionStore = "SESSION_STORE"
	EnvRedisAddr    = "REDIS_ADDR"

	EnvSystemPrompt      = "SYSTEM_PROMPT"
	EnvKnowledgeWatchDir = "KNOWLEDGE_WATCH_DIR"
)

// defaultSystemPrompt 默认系统提示词
const defaultSystemPrompt = `You are Aide, an intelligent AI assistant created to help users with their questions and tasks.
You are helpful, harmless, and honest. You provide accurate, contextual responses.
When given context from the knowledge base, use it to provide more relevant answers.
If you don't know something, admit it rather than making things up.`

// Config 应用配置，启动时从环境变量解析一次，之后只读
type Config struct {
	Server    ServerConfig
	LLM       LLMConfig
	Embedding EmbeddingConfig
	Vector    VectorConfig
	Session   SessionConfig
	Knowledge KnowledgeConfig

	// SystemPrompt 固定系统提示词
	SystemPrompt string
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	HTTPPort string
	Debug    bool
}

// LLMConfig 补全服务配置（OpenAI 兼容端点）
type LLMConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// EmbeddingConfig 向量化服务配置（OpenAI 兼容端点）
type EmbeddingConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	Dimension int
}

// VectorConfig 向量库配置
// URL 为空表示未配置检索功能，进程仍可正常提供对话服务
type VectorConfig struct {
	URL        string
	APIKey     string
	Collection string
}

// SessionConfig 会话存储配置
type SessionConfig struct {
	// Driver 存储驱动：memory 或 redis
	Driver    string
	RedisAddr string
}

// KnowledgeConfig 知识库配置
type KnowledgeConfig struct {
	// WatchDir 知识文件监听目录，为空表示不启用
	WatchDir string
}

// NewConfig 从环境变量创建配置
// 数值型变量解析失败视为致命错误
func NewConfig() (*Config, error) {
	dimension, err := getEnvInt(EnvEmbeddingDimension, 384)
	if err != nil {
		return nil, err
	}

	debug, err := getEnvBool(EnvDebug, true)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			HTTPPort: normalizePort(getEnvWithDefault(EnvHTTPPort, ":5000")),
			Debug:    debug,
		},
		LLM: LLMConfig{
			BaseURL: getEnvWithDefault(EnvLLMBase, "http://localhost:1234/v1"),
			// LM Studio 等本地服务不校验 key，但协议要求携带
			APIKey: getEnvWithDefault(EnvLLMAPIKey, "lm-studio"),
			Model:  getEnvWithDefault(EnvLLMModel, "qwen2.5-coder-7b-instruct"),
		},
		Embedding: EmbeddingConfig{
			BaseURL:   getEnvWithDefault(EnvEmbeddingBase, "http://localhost:1234/v1"),
			APIKey:    os.Getenv(EnvEmbeddingAPIKey),
			Model:     getEnvWithDefault(EnvEmbeddingModel, "all-MiniLM-L6-v2"),
			Dimension: dimension,
		},
		Vector: VectorConfig{
			URL:        os.Getenv(EnvQdrantURL),
			APIKey:     os.Getenv(EnvQdrantAPIKey),
			Collection: getEnvWithDefault(EnvQdrantCollection, "aide-knowledge"),
		},
		Session: SessionConfig{
			Driver:    getEnvWithDefault(EnvSessionStore, "memory"),
			RedisAddr: getEnvWithDefault(EnvRedisAddr, "localhost:6379"),
		},
		Knowledge: KnowledgeConfig{
			WatchDir: os.Getenv(EnvKnowledgeWatchDir),
		},
		SystemPrompt: getEnvWithDefault(EnvSystemPrompt, defaultSystemPrompt),
	}, nil
}

// normalizePort 允许只写端口号（如 "5000"）
func normalizePort(port string) string {
	if port == "" || port[0] == ':' {
		return port
	}
	return ":" + port
}

// getEnvWithDefault 获取环境变量，带默认值
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt 获取整型环境变量，解析失败返回错误
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q: %w", key, value, err)
	}
	return intValue, nil
}

// getEnvBool 获取布尔型环境变量，解析失败返回错误
func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid value for %s: %q: %w", key, value, err)
	}
	return boolValue, nil
}
