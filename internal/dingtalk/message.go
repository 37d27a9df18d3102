package dingtalk

import (
	"encoding/json"

	"github.com/aleister1102/dingrobot/internal/common"
)

// MessageType identifies the kind of robot message
type MessageType int

const (
	MessageTypeText MessageType = iota
	MessageTypeMarkdown
	MessageTypeLink
	MessageTypeActionCard
	MessageTypeFeedCard
)

// String returns the wire name of the message type
func (mt MessageType) String() string {
	switch mt {
	case MessageTypeText:
		return "text"
	case MessageTypeMarkdown:
		return "markdown"
	case MessageTypeLink:
		return "link"
	case MessageTypeActionCard:
		return "actionCard"
	case MessageTypeFeedCard:
		return "feedCard"
	default:
		return "text"
	}
}

// ButtonOrientation controls how action card buttons are laid out.
// The endpoint encodes this as the strings "0" (vertical) and "1" (landscape).
type ButtonOrientation int

const (
	OrientationVertical ButtonOrientation = iota
	OrientationLandscape
)

func (bo ButtonOrientation) wireValue() string {
	if bo == OrientationLandscape {
		return "1"
	}
	return "0"
}

// AvatarVisibility controls whether the robot avatar is shown on an action card.
// The endpoint encodes this as the strings "0" (shown) and "1" (hidden).
type AvatarVisibility int

const (
	AvatarShown AvatarVisibility = iota
	AvatarHidden
)

func (av AvatarVisibility) wireValue() string {
	if av == AvatarHidden {
		return "1"
	}
	return "0"
}

// Button is one tappable action card button
type Button struct {
	Title     string
	ActionURL string
}

// FeedCardLink is one entry of a feed card message
type FeedCardLink struct {
	Title      string
	MessageURL string
	PicURL     string
}

// Mention marks users to be @-mentioned, attachable to any message kind.
// Mobiles keep insertion order; duplicates are preserved.
type Mention struct {
	AtAll     bool
	AtMobiles []string
}

// Message is one immutable robot notification. Instances are produced by
// MessageBuilder, own all of their string storage, and are safe for
// concurrent use.
type Message struct {
	messageType MessageType

	textContent string

	markdownTitle   string
	markdownContent string

	linkTitle      string
	linkText       string
	linkPicURL     string
	linkMessageURL string

	cardTitle    string
	cardText     string
	avatar       AvatarVisibility
	orientation  ButtonOrientation
	singleButton *Button
	buttons      []Button

	feedCardLinks []FeedCardLink

	mention Mention
}

// Type returns the message kind
func (m *Message) Type() MessageType {
	return m.messageType
}

// Wire format structs. Field names follow the robot endpoint exactly; note
// the casing difference between link (picUrl/messageUrl) and feed card
// links (picURL/messageURL).
type messagePayload struct {
	MsgType    string             `json:"msgtype"`
	Text       *textPayload       `json:"text,omitempty"`
	Markdown   *markdownPayload   `json:"markdown,omitempty"`
	Link       *linkPayload       `json:"link,omitempty"`
	ActionCard *actionCardPayload `json:"actionCard,omitempty"`
	FeedCard   *feedCardPayload   `json:"feedCard,omitempty"`
	At         *atPayload         `json:"at,omitempty"`
}

type textPayload struct {
	Content string `json:"content"`
}

type markdownPayload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type linkPayload struct {
	Text       string `json:"text"`
	Title      string `json:"title"`
	PicURL     string `json:"picUrl"`
	MessageURL string `json:"messageUrl"`
}

type actionCardPayload struct {
	Title          string          `json:"title"`
	Text           string          `json:"text"`
	HideAvatar     string          `json:"hideAvatar"`
	BtnOrientation string          `json:"btnOrientation"`
	SingleTitle    string          `json:"singleTitle,omitempty"`
	SingleURL      string          `json:"singleURL,omitempty"`
	Btns           []buttonPayload `json:"btns,omitempty"`
}

type buttonPayload struct {
	Title     string `json:"title"`
	ActionURL string `json:"actionURL"`
}

type feedCardPayload struct {
	Links []feedCardLinkPayload `json:"links"`
}

type feedCardLinkPayload struct {
	Title      string `json:"title"`
	MessageURL string `json:"messageURL"`
	PicURL     string `json:"picURL"`
}

type atPayload struct {
	AtMobiles []string `json:"atMobiles"`
	IsAtAll   bool     `json:"isAtAll"`
}

// Encode serializes the message to the canonical JSON wire format.
// Only the section matching the message type is emitted; fields of other
// kinds never appear in the output.
func (m *Message) Encode() ([]byte, error) {
	payload := messagePayload{MsgType: m.messageType.String()}

	switch m.messageType {
	case MessageTypeText:
		payload.Text = &textPayload{Content: m.textContent}
	case MessageTypeMarkdown:
		payload.Markdown = &markdownPayload{
			Title: m.markdownTitle,
			Text:  m.markdownContent,
		}
	case MessageTypeLink:
		payload.Link = &linkPayload{
			Text:       m.linkText,
			Title:      m.linkTitle,
			PicURL:     m.linkPicURL,
			MessageURL: m.linkMessageURL,
		}
	case MessageTypeActionCard:
		payload.ActionCard = m.encodeActionCard()
	case MessageTypeFeedCard:
		payload.FeedCard = m.encodeFeedCard()
	default:
		return nil, common.NewError("unknown message type: %d", int(m.messageType))
	}

	if m.mention.AtAll || len(m.mention.AtMobiles) > 0 {
		mobiles := m.mention.AtMobiles
		if mobiles == nil {
			mobiles = []string{}
		}
		payload.At = &atPayload{
			AtMobiles: mobiles,
			IsAtAll:   m.mention.AtAll,
		}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, common.WrapError(err, "failed to marshal message payload")
	}
	return data, nil
}

// encodeActionCard renders the card section. A single button takes
// precedence over the button list; Build enforces that at least one of the
// two forms is present.
func (m *Message) encodeActionCard() *actionCardPayload {
	card := &actionCardPayload{
		Title:          m.cardTitle,
		Text:           m.cardText,
		HideAvatar:     m.avatar.wireValue(),
		BtnOrientation: m.orientation.wireValue(),
	}

	if m.singleButton != nil {
		card.SingleTitle = m.singleButton.Title
		card.SingleURL = m.singleButton.ActionURL
		return card
	}

	card.Btns = make([]buttonPayload, 0, len(m.buttons))
	for _, btn := range m.buttons {
		card.Btns = append(card.Btns, buttonPayload{
			Title:     btn.Title,
			ActionURL: btn.ActionURL,
		})
	}
	return card
}

func (m *Message) encodeFeedCard() *feedCardPayload {
	links := make([]feedCardLinkPayload, 0, len(m.feedCardLinks))
	for _, link := range m.feedCardLinks {
		links = append(links, feedCardLinkPayload{
			Title:      link.Title,
			MessageURL: link.MessageURL,
			PicURL:     link.PicURL,
		})
	}
	return &feedCardPayload{Links: links}
}
