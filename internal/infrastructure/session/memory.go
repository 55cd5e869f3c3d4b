package session

import (
	"context"
	"sync"

	"github.com/aidechat/backend/internal/domain/chat"
)

// memoryStore 进程内会话存储
// 历史只存在于进程生命周期内，重启即丢失
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]chat.Message
}

// NewMemoryStore 创建内存会话存储
func NewMemoryStore() chat.SessionStore {
	return &memoryStore{
		sessions: make(map[string][]chat.Message),
	}
}

// History 实现 chat.SessionStore
func (s *memoryStore) History(ctx context.Context, sessionID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.sessions[sessionID]
	// 返回副本，调用方不能改写存储内部的切片
	out := make([]chat.Message, len(history))
	copy(out, history)
	return out, nil
}

// Append 实现 chat.SessionStore
func (s *memoryStore) Append(ctx context.Context, sessionID string, userMsg, assistantMsg chat.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.sessions[sessionID], userMsg, assistantMsg)
	if len(history) > chat.MaxStoredMessages {
		history = history[len(history)-chat.MaxStoredMessages:]
	}
	s.sessions[sessionID] = history
	return nil
}

// Clear 实现 chat.SessionStore
func (s *memoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// Close 实现 chat.SessionStore
func (s *memoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = nil
	return nil
}
