package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/aidechat/backend/internal/domain/chat"
)

// redisKeyPrefix 会话在 Redis 中的键前缀
const redisKeyPrefix = "session:"

// redisStore 基于 Redis 的会话存储
// 每个会话存为一个 JSON 值，不设置过期时间
type redisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 会话存储
func NewRedisStore(client *redis.Client) chat.SessionStore {
	return &redisStore{client: client}
}

// History 实现 chat.SessionStore
func (s *redisStore) History(ctx context.Context, sessionID string) ([]chat.Message, error) {
	val, err := s.client.Get(ctx, redisKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return []chat.Message{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session %s: %w", sessionID, err)
	}

	var history []chat.Message
	if err := json.Unmarshal([]byte(val), &history); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", sessionID, err)
	}
	return history, nil
}

// Append 实现 chat.SessionStore
// 读-改-写不具备原子性，同一会话的并发追加可能丢失更新
func (s *redisStore) Append(ctx context.Context, sessionID string, userMsg, assistantMsg chat.Message) error {
	history, err := s.History(ctx, sessionID)
	if err != nil {
		return err
	}

	history = append(history, userMsg, assistantMsg)
	if len(history) > chat.MaxStoredMessages {
		history = history[len(history)-chat.MaxStoredMessages:]
	}

	val, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", sessionID, err)
	}

	return s.client.Set(ctx, redisKeyPrefix+sessionID, val, 0).Err()
}

// Clear 实现 chat.SessionStore
func (s *redisStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, redisKeyPrefix+sessionID).Err()
}

// Close 实现 chat.SessionStore
func (s *redisStore) Close() error {
	return s.client.Close()
}
