package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsLeak(t *testing.T) {
	assert.True(t, ContainsLeak("the PASSWORD is hunter2"))
	assert.True(t, ContainsLeak("this is Confidential material"))
	assert.False(t, ContainsLeak("quarterly revenue was up 4%"))
}

func TestApplyGuardrail(t *testing.T) {
	assert.Equal(t, RedactedNotice, ApplyGuardrail("here is the secret token"))
	assert.Equal(t, "all clear", ApplyGuardrail("all clear"))
}
