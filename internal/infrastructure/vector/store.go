package vector

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/qdrant/go-client/qdrant"

	"github.com/aidechat/backend/internal/infrastructure/log"
)

// payloadKeyText 知识记录原文在 payload 中的保留键
const payloadKeyText = "text"

// Store Qdrant 向量库客户端
type Store struct {
	client     *qdrant.Client
	collection string
	logger     *slog.Logger
}

// Config 向量库连接配置
type Config struct {
	// URL Qdrant 服务地址，如 "http://localhost:6334"
	URL string

	// Collection 集合名
	Collection string

	// APIKey 可选的认证密钥
	APIKey string
}

// Match 一次查询命中
type Match struct {
	ID      string
	Score   float32
	Payload map[string]any
}

// Text 返回命中记录的原文，payload 中不存在时返回空串
func (m Match) Text() string {
	text, _ := m.Payload[payloadKeyText].(string)
	return text
}

// New 创建 Qdrant 客户端
func New(cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("qdrant url is required")
	}

	parsedURL := cfg.URL
	if !strings.HasPrefix(parsedURL, "http://") && !strings.HasPrefix(parsedURL, "https://") {
		parsedURL = "http://" + parsedURL
	}

	u, err := url.Parse(parsedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse qdrant url: %w", err)
	}

	host := u.Hostname()
	port := 6334 // gRPC 默认端口
	if u.Port() != "" {
		p, err := strconv.Atoi(u.Port())
		if err != nil {
			return nil, fmt.Errorf("invalid port: %w", err)
		}
		port = p
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: cfg.APIKey,
		UseTLS: u.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &Store{
		client:     client,
		collection: cfg.Collection,
		logger:     log.NewModuleLogger("vector", "store"),
	}, nil
}

// EnsureCollection 确保集合存在，不存在时以给定维度和余弦距离创建
func (s *Store) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	existing, err := s.client.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	for _, name := range existing {
		if name == s.collection {
			return nil
		}
	}

	s.logger.Info("Creating collection",
		"collection", s.collection,
		"vector_size", vectorSize,
	)

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection %s: %w", s.collection, err)
	}

	return nil
}

// Upsert 写入或覆盖一条记录
// id 必须是 UUID 形式的字符串
func (s *Store) Upsert(ctx context.Context, id string, vector []float32, payload map[string]any) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(id),
		Vectors: qdrant.NewVectors(vector...),
		Payload: qdrant.NewValueMap(payload),
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// Query 按向量查询 topK 个最近邻，结果按相似度降序
func (s *Store) Query(ctx context.Context, vector []float32, topK int) ([]Match, error) {
	limit := uint64(topK)
	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query qdrant: %w", err)
	}

	matches := make([]Match, 0, len(points))
	for _, point := range points {
		match := Match{
			Score:   point.GetScore(),
			Payload: make(map[string]any),
		}

		if pointID := point.GetId(); pointID != nil {
			if uuid := pointID.GetUuid(); uuid != "" {
				match.ID = uuid
			} else {
				match.ID = fmt.Sprintf("%d", pointID.GetNum())
			}
		}

		for k, v := range point.GetPayload() {
			match.Payload[k] = extractValue(v)
		}

		matches = append(matches, match)
	}

	return matches, nil
}

// Close 关闭连接
func (s *Store) Close() error {
	return s.client.Close()
}

// extractValue 将 qdrant payload 值转为普通 Go 值
func extractValue(v *qdrant.Value) any {
	if v == nil {
		return nil
	}

	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	default:
		return nil
	}
}
