package dingtalk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageBuilder_ActionCardWithoutButtons(t *testing.T) {
	_, err := NewActionCardMessage("title", "text").Build()
	assert.Error(t, err)
}

func TestMessageBuilder_ActionCardWithSingleButton(t *testing.T) {
	message, err := NewActionCardMessage("title", "text").
		WithSingleButton("Open", "https://example.com").
		Build()
	require.NoError(t, err)
	assert.Equal(t, MessageTypeActionCard, message.Type())
}

func TestMessageBuilder_OwnedStorage(t *testing.T) {
	mobiles := []string{"13800000001"}
	builder := NewTextMessage("hi").AtMobiles(mobiles...)
	message, err := builder.Build()
	require.NoError(t, err)

	// Mutating the source slice must not affect the built message
	mobiles[0] = "mutated"
	data, err := message.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), "13800000001")
	assert.NotContains(t, string(data), "mutated")
}

func TestMessageBuilder_BuilderReuseAfterBuild(t *testing.T) {
	builder := NewFeedCardMessage().
		AddFeedCardLink("a", "https://example.com/a", "")
	first, err := builder.Build()
	require.NoError(t, err)

	// Further mutation of the builder must not change the first message
	builder.AddFeedCardLink("b", "https://example.com/b", "")
	second, err := builder.Build()
	require.NoError(t, err)

	firstData, err := first.Encode()
	require.NoError(t, err)
	secondData, err := second.Encode()
	require.NoError(t, err)

	assert.NotContains(t, string(firstData), `"b"`)
	assert.Contains(t, string(secondData), `"b"`)
}

func TestMessageBuilder_TypeNames(t *testing.T) {
	tests := []struct {
		messageType MessageType
		expected    string
	}{
		{MessageTypeText, "text"},
		{MessageTypeMarkdown, "markdown"},
		{MessageTypeLink, "link"},
		{MessageTypeActionCard, "actionCard"},
		{MessageTypeFeedCard, "feedCard"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.messageType.String())
		})
	}
}
