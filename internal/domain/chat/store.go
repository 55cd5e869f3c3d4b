package chat

import "context"

// SessionStore 会话历史存储
// 实现必须保证 Append 之后历史长度不超过 MaxStoredMessages
type SessionStore interface {
	// History 返回指定会话的全部历史，会话不存在时返回空切片
	History(ctx context.Context, sessionID string) ([]Message, error)

	// Append 追加一轮对话（用户消息与助手回复）
	Append(ctx context.Context, sessionID string, userMsg, assistantMsg Message) error

	// Clear 清空指定会话，对不存在的会话是幂等的
	Clear(ctx context.Context, sessionID string) error

	// Close 释放底层资源
	Close() error
}
