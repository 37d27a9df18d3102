package dingtalk

import (
	"github.com/aleister1102/dingrobot/internal/common"
)

// MessageBuilder constructs Message values with a fluent interface. The
// built Message copies every caller-supplied slice, so builders may be
// discarded or reused freely after Build.
type MessageBuilder struct {
	message Message
}

// NewMessageBuilder creates a builder for the given message type
func NewMessageBuilder(messageType MessageType) *MessageBuilder {
	return &MessageBuilder{
		message: Message{messageType: messageType},
	}
}

// NewTextMessage creates a builder for a plain text message
func NewTextMessage(content string) *MessageBuilder {
	return NewMessageBuilder(MessageTypeText).WithText(content)
}

// NewMarkdownMessage creates a builder for a markdown message
func NewMarkdownMessage(title, content string) *MessageBuilder {
	return NewMessageBuilder(MessageTypeMarkdown).WithMarkdown(title, content)
}

// NewLinkMessage creates a builder for a hyperlink card message
func NewLinkMessage(title, text, picURL, messageURL string) *MessageBuilder {
	return NewMessageBuilder(MessageTypeLink).WithLink(title, text, picURL, messageURL)
}

// NewActionCardMessage creates a builder for an action card message.
// A single button or at least one list button must be added before Build.
func NewActionCardMessage(title, text string) *MessageBuilder {
	builder := NewMessageBuilder(MessageTypeActionCard)
	builder.message.cardTitle = title
	builder.message.cardText = text
	return builder
}

// NewFeedCardMessage creates a builder for a feed card message
func NewFeedCardMessage() *MessageBuilder {
	return NewMessageBuilder(MessageTypeFeedCard)
}

// WithText sets the text content
func (mb *MessageBuilder) WithText(content string) *MessageBuilder {
	mb.message.textContent = content
	return mb
}

// WithMarkdown sets the markdown title and content
func (mb *MessageBuilder) WithMarkdown(title, content string) *MessageBuilder {
	mb.message.markdownTitle = title
	mb.message.markdownContent = content
	return mb
}

// WithLink sets the link card fields
func (mb *MessageBuilder) WithLink(title, text, picURL, messageURL string) *MessageBuilder {
	mb.message.linkTitle = title
	mb.message.linkText = text
	mb.message.linkPicURL = picURL
	mb.message.linkMessageURL = messageURL
	return mb
}

// WithSingleButton sets the action card's single whole-card button.
// Setting it suppresses any buttons added via AddButton.
func (mb *MessageBuilder) WithSingleButton(title, actionURL string) *MessageBuilder {
	mb.message.singleButton = &Button{Title: title, ActionURL: actionURL}
	return mb
}

// AddButton appends one button to the action card's button list,
// preserving insertion order.
func (mb *MessageBuilder) AddButton(title, actionURL string) *MessageBuilder {
	mb.message.buttons = append(mb.message.buttons, Button{Title: title, ActionURL: actionURL})
	return mb
}

// WithButtonOrientation sets the action card button layout
func (mb *MessageBuilder) WithButtonOrientation(orientation ButtonOrientation) *MessageBuilder {
	mb.message.orientation = orientation
	return mb
}

// WithHiddenAvatar hides the robot avatar on the action card
func (mb *MessageBuilder) WithHiddenAvatar() *MessageBuilder {
	mb.message.avatar = AvatarHidden
	return mb
}

// AddFeedCardLink appends one link to the feed card, preserving insertion order
func (mb *MessageBuilder) AddFeedCardLink(title, messageURL, picURL string) *MessageBuilder {
	mb.message.feedCardLinks = append(mb.message.feedCardLinks, FeedCardLink{
		Title:      title,
		MessageURL: messageURL,
		PicURL:     picURL,
	})
	return mb
}

// AtAll mentions everyone in the channel
func (mb *MessageBuilder) AtAll() *MessageBuilder {
	mb.message.mention.AtAll = true
	return mb
}

// AtMobiles appends phone numbers to mention. Order and duplicates are preserved.
func (mb *MessageBuilder) AtMobiles(mobiles ...string) *MessageBuilder {
	mb.message.mention.AtMobiles = append(mb.message.mention.AtMobiles, mobiles...)
	return mb
}

// Build validates and returns the constructed message. An action card with
// neither a single button nor list buttons is rejected here rather than
// being silently emitted without any button fields.
func (mb *MessageBuilder) Build() (Message, error) {
	if err := mb.validate(); err != nil {
		return Message{}, err
	}

	message := mb.message

	// Copy slices so the returned value owns its storage
	if mb.message.buttons != nil {
		message.buttons = make([]Button, len(mb.message.buttons))
		copy(message.buttons, mb.message.buttons)
	}
	if mb.message.feedCardLinks != nil {
		message.feedCardLinks = make([]FeedCardLink, len(mb.message.feedCardLinks))
		copy(message.feedCardLinks, mb.message.feedCardLinks)
	}
	if mb.message.mention.AtMobiles != nil {
		message.mention.AtMobiles = make([]string, len(mb.message.mention.AtMobiles))
		copy(message.mention.AtMobiles, mb.message.mention.AtMobiles)
	}
	if mb.message.singleButton != nil {
		button := *mb.message.singleButton
		message.singleButton = &button
	}

	return message, nil
}

func (mb *MessageBuilder) validate() error {
	if mb.message.messageType == MessageTypeActionCard {
		if mb.message.singleButton == nil && len(mb.message.buttons) == 0 {
			return common.NewValidationError("buttons", nil, "action card requires a single button or at least one list button")
		}
	}
	return nil
}
