package knowledge

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aidechat/backend/internal/infrastructure/config"
	"github.com/aidechat/backend/internal/infrastructure/embedding"
	"github.com/aidechat/backend/internal/infrastructure/log"
	"github.com/aidechat/backend/internal/infrastructure/vector"
)

const (
	// DefaultTopK 检索默认返回条数
	DefaultTopK = 3

	// scoreThreshold 相似度下限，小于等于该值的命中被丢弃
	scoreThreshold = 0.5
)

// Embedder 文本向量化
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// VectorIndex 向量索引的读写
type VectorIndex interface {
	Upsert(ctx context.Context, id string, vec []float32, payload map[string]any) error
	Query(ctx context.Context, vec []float32, topK int) ([]vector.Match, error)
}

// Service 知识库服务
// 外部存储不可用时服务保持"未配置"状态而不是中止进程，
// 对话路径在该状态下直接跳过检索
type Service struct {
	embedder   Embedder
	index      VectorIndex
	configured bool
	logger     *slog.Logger
}

// NewService 创建知识库服务
// 未设置向量库地址或初始化失败时返回未配置的服务
func NewService(cfg *config.Config, embedder *embedding.Client) *Service {
	logger := log.NewModuleLogger("knowledge", "service")

	if cfg.Vector.URL == "" {
		logger.Info("Vector store not configured, knowledge features disabled",
			"hint", "set "+config.EnvQdrantURL+" to enable",
		)
		return &Service{embedder: embedder, logger: logger}
	}

	store, err := vector.New(vector.Config{
		URL:        cfg.Vector.URL,
		APIKey:     cfg.Vector.APIKey,
		Collection: cfg.Vector.Collection,
	})
	if err != nil {
		logger.Warn("Could not initialize vector store",
			"error", err,
		)
		return &Service{embedder: embedder, logger: logger}
	}

	ctx := context.Background()
	if err := store.EnsureCollection(ctx, uint64(cfg.Embedding.Dimension)); err != nil {
		logger.Warn("Could not ensure collection, knowledge features disabled",
			"collection", cfg.Vector.Collection,
			"error", err,
		)
		_ = store.Close()
		return &Service{embedder: embedder, logger: logger}
	}

	logger.Info("Vector store connected",
		"collection", cfg.Vector.Collection,
		"dimension", cfg.Embedding.Dimension,
	)

	return &Service{
		embedder:   embedder,
		index:      store,
		configured: true,
		logger:     logger,
	}
}

// newService 注入依赖的构造方式，测试用
func newService(embedder Embedder, index VectorIndex, configured bool) *Service {
	return &Service{
		embedder:   embedder,
		index:      index,
		configured: configured,
		logger:     log.NewModuleLogger("knowledge", "service"),
	}
}

// IsConfigured 检索功能是否可用
func (s *Service) IsConfigured() bool {
	return s.configured
}

// RecordID 由文本内容确定性地生成记录标识
// 相同文本总是映射到同一条记录，重复写入只是覆盖
func RecordID(text string) string {
	return uuid.NewMD5(uuid.NameSpaceOID, []byte(text)).String()
}

// Add 写入一条知识
// 任何失败都只记日志并返回 false，不向调用方抛错
func (s *Service) Add(ctx context.Context, text string, metadata map[string]any) bool {
	if !s.configured {
		s.logger.Warn("Vector store not configured, knowledge not stored")
		return false
	}

	embeddingVec, err := s.embedder.EmbedText(ctx, text)
	if err != nil {
		s.logger.Error("Failed to embed knowledge text",
			"error", err,
		)
		return false
	}

	payload := make(map[string]any, len(metadata)+1)
	for k, v := range metadata {
		payload[k] = v
	}
	// 原文始终存入保留键，覆盖调用方同名字段
	payload["text"] = text

	id := RecordID(text)
	if err := s.index.Upsert(ctx, id, embeddingVec, payload); err != nil {
		s.logger.Error("Failed to upsert knowledge",
			"id", id,
			"error", err,
		)
		return false
	}

	s.logger.Info("Knowledge added",
		"id", id,
		"text_length", len(text),
	)
	return true
}

// Search 检索与查询相关的知识原文
// 未配置或出错时返回空结果，顺序保持存储返回的相似度降序
func (s *Service) Search(ctx context.Context, query string, topK int) []string {
	if !s.configured {
		return []string{}
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	queryVec, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("Failed to embed search query",
			"error", err,
		)
		return []string{}
	}

	matches, err := s.index.Query(ctx, queryVec, topK)
	if err != nil {
		s.logger.Error("Failed to query vector store",
			"error", err,
		)
		return []string{}
	}

	texts := make([]string, 0, len(matches))
	for _, match := range matches {
		if match.Score <= scoreThreshold {
			continue
		}
		if text := match.Text(); text != "" {
			texts = append(texts, text)
		}
	}

	s.logger.Debug("Knowledge search completed",
		"query_length", len(query),
		"hits", len(matches),
		"results", len(texts),
	)

	return texts
}
