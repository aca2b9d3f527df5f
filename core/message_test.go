package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageConstructors(t *testing.T) {
	assert.Equal(t, Message{Role: RoleSystem, Content: "s"}, SystemMessage("s"))
	assert.Equal(t, Message{Role: RoleUser, Content: "u"}, UserMessage("u"))
	assert.Equal(t, Message{Role: RoleAssistant, Content: "a"}, AssistantMessage("a"))

	tm := ToolMessage("result", "tc-1")
	assert.Equal(t, RoleTool, tm.Role)
	assert.Equal(t, "tc-1", tm.ToolCallID)
	assert.Equal(t, "result", tm.Content)
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
