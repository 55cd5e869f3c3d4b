package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/aidechat/backend/internal/domain/chat"
	"github.com/aidechat/backend/internal/infrastructure/config"
	"github.com/aidechat/backend/internal/infrastructure/log"
)

// 补全请求的采样参数
const (
	chatTemperature = 0.7
	chatMaxTokens   = 2048
)

// contextHeading 检索结果拼入系统提示词时的标题
const contextHeading = "Relevant knowledge from the database:"

// Client 补全服务客户端（OpenAI 兼容端点）
// 调用之间不保留任何状态，对话历史完全由调用方提供
type Client struct {
	client       *openai.Client
	model        string
	systemPrompt string
	logger       *slog.Logger
}

// NewClient 创建补全客户端
func NewClient(cfg *config.Config) *Client {
	client := openai.NewClient(
		option.WithBaseURL(cfg.LLM.BaseURL),
		option.WithAPIKey(cfg.LLM.APIKey),
	)

	return &Client{
		client:       &client,
		model:        cfg.LLM.Model,
		systemPrompt: cfg.SystemPrompt,
		logger:       log.NewModuleLogger("llm", "client"),
	}
}

// Chat 发送一轮对话请求
// 消息顺序：系统提示词（附检索上下文）→ 历史 → 当前用户消息
func (c *Client) Chat(ctx context.Context, userMessage, contextText string, history []chat.Message) (string, error) {
	systemContent := c.systemPrompt
	if contextText != "" {
		systemContent += "\n\n" + contextHeading + "\n" + contextText
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	messages = append(messages, openai.SystemMessage(systemContent))

	for _, msg := range history {
		switch msg.Role {
		case chat.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}

	messages = append(messages, openai.UserMessage(userMessage))

	c.logger.Debug("Sending chat completion request",
		"model", c.model,
		"message_count", len(messages),
		"context_attached", contextText != "",
	)

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    messages,
		Temperature: openai.Float(chatTemperature),
		MaxTokens:   openai.Int(chatMaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("completion service returned no choices")
	}

	content := completion.Choices[0].Message.Content

	c.logger.Debug("Chat completion received",
		"content_length", len(content),
		"total_tokens", completion.Usage.TotalTokens,
	)

	return content, nil
}

// IsAvailable 轻量探测补全服务是否可达
func (c *Client) IsAvailable(ctx context.Context) bool {
	_, err := c.client.Models.List(ctx)
	if err != nil {
		c.logger.Debug("Completion service probe failed",
			"error", err,
		)
		return false
	}
	return true
}
