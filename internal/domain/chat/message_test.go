package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	history := make([]Message, 0, 15)
	for i := 0; i < 15; i++ {
		history = append(history, NewUserMessage("msg"))
	}

	assert.Len(t, Window(history, HistoryWindow), HistoryWindow)
	assert.Len(t, Window(history, 20), 15, "窗口大于历史时返回全部")
	assert.Len(t, Window(nil, HistoryWindow), 0)
	assert.Len(t, Window(history, 0), 15, "非正数窗口不截断")
}

func TestWindow_KeepsLatest(t *testing.T) {
	history := []Message{
		NewUserMessage("old"),
		NewAssistantMessage("older reply"),
		NewUserMessage("new"),
		NewAssistantMessage("new reply"),
	}

	window := Window(history, 2)
	assert.Equal(t, "new", window[0].Content)
	assert.Equal(t, "new reply", window[1].Content)
}

func TestMessageConstructors(t *testing.T) {
	assert.Equal(t, Message{Role: RoleUser, Content: "hi"}, NewUserMessage("hi"))
	assert.Equal(t, Message{Role: RoleAssistant, Content: "hello"}, NewAssistantMessage("hello"))
}
