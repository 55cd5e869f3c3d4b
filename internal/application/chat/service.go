package chat

import (
	"context"
	"log/slog"
	"strings"

	domainChat "github.com/aidechat/backend/internal/domain/chat"
	"github.com/aidechat/backend/internal/infrastructure/log"
)

// Completer 补全服务
type Completer interface {
	Chat(ctx context.Context, userMessage, contextText string, history []domainChat.Message) (string, error)
	IsAvailable(ctx context.Context) bool
}

// Retriever 知识检索
type Retriever interface {
	IsConfigured() bool
	Search(ctx context.Context, query string, topK int) []string
}

// Result 一次对话的结果
type Result struct {
	Response    string
	ContextUsed bool
	SessionID   string
}

// Service 对话服务
// 自身无状态，会话历史全部经由 SessionStore 读写
type Service struct {
	completer Completer
	retriever Retriever
	sessions  domainChat.SessionStore
	logger    *slog.Logger
}

// NewService 创建对话服务
func NewService(completer Completer, retriever Retriever, sessions domainChat.SessionStore) *Service {
	return &Service{
		completer: completer,
		retriever: retriever,
		sessions:  sessions,
		logger:    log.NewModuleLogger("chat", "service"),
	}
}

// Chat 处理一轮用户消息
// 上游失败不会向外抛错：回复文本降级为错误描述，会话照常记录
func (s *Service) Chat(ctx context.Context, sessionID, message string, useKnowledge bool) Result {
	if sessionID == "" {
		sessionID = domainChat.DefaultSessionID
	}

	history, err := s.sessions.History(ctx, sessionID)
	if err != nil {
		s.logger.Error("Failed to load session history",
			"session_id", sessionID,
			"error", err,
		)
		history = nil
	}

	// 检索相关知识
	contextText := ""
	if useKnowledge && s.retriever.IsConfigured() {
		docs := s.retriever.Search(ctx, message, 0)
		if len(docs) > 0 {
			contextText = strings.Join(docs, "\n\n")
		}
	}

	window := domainChat.Window(history, domainChat.HistoryWindow)
	s.logPromptSize(message, contextText, window)

	response, err := s.completer.Chat(ctx, message, contextText, window)
	if err != nil {
		s.logger.Error("Completion request failed",
			"session_id", sessionID,
			"error", err,
		)
		// 保持对话路径始终有响应，错误以普通回复文本的形式返回
		response = "Error communicating with LLM: " + err.Error()
	}

	if err := s.sessions.Append(ctx, sessionID,
		domainChat.NewUserMessage(message),
		domainChat.NewAssistantMessage(response),
	); err != nil {
		s.logger.Error("Failed to append session history",
			"session_id", sessionID,
			"error", err,
		)
	}

	return Result{
		Response:    response,
		ContextUsed: contextText != "",
		SessionID:   sessionID,
	}
}

// ClearSession 清空指定会话的历史记录
func (s *Service) ClearSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		sessionID = domainChat.DefaultSessionID
	}
	return s.sessions.Clear(ctx, sessionID)
}

// IsAvailable 补全服务是否可达
func (s *Service) IsAvailable(ctx context.Context) bool {
	return s.completer.IsAvailable(ctx)
}

// logPromptSize 记录本轮 prompt 的估算 Token 规模
func (s *Service) logPromptSize(message, contextText string, history []domainChat.Message) {
	estimator, err := GetTokenEstimator()
	if err != nil {
		return
	}

	texts := make([]string, 0, len(history)+2)
	texts = append(texts, message, contextText)
	for _, msg := range history {
		texts = append(texts, msg.Content)
	}

	s.logger.Debug("Prompt assembled",
		"history_messages", len(history),
		"prompt_tokens", estimator.CountTokensBatch(texts),
		"context_attached", contextText != "",
	)
}
