package dingtalk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEncode(t *testing.T, builder *MessageBuilder) []byte {
	t.Helper()
	message, err := builder.Build()
	require.NoError(t, err)
	data, err := message.Encode()
	require.NoError(t, err)
	return data
}

func TestMessage_Encode_Text(t *testing.T) {
	data := mustEncode(t, NewTextMessage("hi"))
	assert.JSONEq(t, `{"msgtype":"text","text":{"content":"hi"}}`, string(data))
}

func TestMessage_Encode_Markdown(t *testing.T) {
	data := mustEncode(t, NewMarkdownMessage("Release", "## v1.0 is out"))
	assert.JSONEq(t, `{
		"msgtype": "markdown",
		"markdown": {"title": "Release", "text": "## v1.0 is out"}
	}`, string(data))
}

func TestMessage_Encode_Link(t *testing.T) {
	data := mustEncode(t, NewLinkMessage("Title", "Body text", "https://img.example.com/p.png", "https://example.com/post"))
	assert.JSONEq(t, `{
		"msgtype": "link",
		"link": {
			"text": "Body text",
			"title": "Title",
			"picUrl": "https://img.example.com/p.png",
			"messageUrl": "https://example.com/post"
		}
	}`, string(data))
}

func TestMessage_Encode_ActionCard_SingleButton(t *testing.T) {
	data := mustEncode(t, NewActionCardMessage("Deploy", "Approve the deploy?").
		WithSingleButton("Approve", "https://example.com/approve"))

	assert.JSONEq(t, `{
		"msgtype": "actionCard",
		"actionCard": {
			"title": "Deploy",
			"text": "Approve the deploy?",
			"hideAvatar": "0",
			"btnOrientation": "0",
			"singleTitle": "Approve",
			"singleURL": "https://example.com/approve"
		}
	}`, string(data))
	assert.NotContains(t, string(data), "btns")
}

func TestMessage_Encode_ActionCard_ButtonList(t *testing.T) {
	data := mustEncode(t, NewActionCardMessage("Deploy", "Approve the deploy?").
		WithButtonOrientation(OrientationLandscape).
		WithHiddenAvatar().
		AddButton("Approve", "https://example.com/approve").
		AddButton("Reject", "https://example.com/reject"))

	assert.JSONEq(t, `{
		"msgtype": "actionCard",
		"actionCard": {
			"title": "Deploy",
			"text": "Approve the deploy?",
			"hideAvatar": "1",
			"btnOrientation": "1",
			"btns": [
				{"title": "Approve", "actionURL": "https://example.com/approve"},
				{"title": "Reject", "actionURL": "https://example.com/reject"}
			]
		}
	}`, string(data))
	assert.NotContains(t, string(data), "singleTitle")
	assert.NotContains(t, string(data), "singleURL")
}

func TestMessage_Encode_ActionCard_SingleSuppressesList(t *testing.T) {
	// Both forms set: the single button wins and the list is never emitted
	data := mustEncode(t, NewActionCardMessage("Deploy", "text").
		AddButton("A", "https://example.com/a").
		WithSingleButton("Only", "https://example.com/only"))

	assert.Contains(t, string(data), "singleTitle")
	assert.NotContains(t, string(data), "btns")
}

func TestMessage_Encode_FeedCard_OrderPreserved(t *testing.T) {
	data := mustEncode(t, NewFeedCardMessage().
		AddFeedCardLink("first", "https://example.com/1", "https://img.example.com/1.png").
		AddFeedCardLink("second", "https://example.com/2", "https://img.example.com/2.png"))

	var decoded struct {
		FeedCard struct {
			Links []struct {
				Title string `json:"title"`
			} `json:"links"`
		} `json:"feedCard"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.FeedCard.Links, 2)
	assert.Equal(t, "first", decoded.FeedCard.Links[0].Title)
	assert.Equal(t, "second", decoded.FeedCard.Links[1].Title)
}

func TestMessage_Encode_AtAllWithoutMobiles(t *testing.T) {
	data := mustEncode(t, NewTextMessage("ping").AtAll())
	assert.JSONEq(t, `{
		"msgtype": "text",
		"text": {"content": "ping"},
		"at": {"atMobiles": [], "isAtAll": true}
	}`, string(data))
}

func TestMessage_Encode_AtMobiles(t *testing.T) {
	data := mustEncode(t, NewTextMessage("ping").
		AtMobiles("13800000001", "13800000002", "13800000001"))

	// Order and duplicates preserved, isAtAll stays false
	assert.JSONEq(t, `{
		"msgtype": "text",
		"text": {"content": "ping"},
		"at": {"atMobiles": ["13800000001", "13800000002", "13800000001"], "isAtAll": false}
	}`, string(data))
}

func TestMessage_Encode_NoMentionWhenEmpty(t *testing.T) {
	data := mustEncode(t, NewTextMessage("quiet"))
	assert.NotContains(t, string(data), `"at"`)
}

func TestMessage_Encode_OnlyDeclaredKindEmitted(t *testing.T) {
	// A text builder with stray fields of other kinds set must still emit
	// only the text section.
	data := mustEncode(t, NewTextMessage("hi").
		WithMarkdown("stray", "stray").
		WithLink("stray", "stray", "", ""))

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "msgtype")
	assert.Contains(t, decoded, "text")
	assert.NotContains(t, decoded, "markdown")
	assert.NotContains(t, decoded, "link")
	assert.NotContains(t, decoded, "actionCard")
	assert.NotContains(t, decoded, "feedCard")
}
