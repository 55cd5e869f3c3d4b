package chat

// 消息角色，与 OpenAI 兼容接口的取值一致
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const (
	// DefaultSessionID 未指定会话时使用的会话标识
	DefaultSessionID = "default"

	// MaxStoredMessages 单个会话最多保留的消息条数，超出后从最早的开始丢弃
	MaxStoredMessages = 20

	// HistoryWindow 每轮对话发送给上游的历史消息条数上限
	HistoryWindow = 10
)

// Message 会话中的一条消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NewUserMessage 创建用户消息
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage 创建助手消息
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// Window 返回历史中最近的 n 条消息
func Window(history []Message, n int) []Message {
	if n <= 0 || len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
