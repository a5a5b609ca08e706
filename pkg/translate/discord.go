package translate

import (
	"encoding/json"

	"github.com/dmitrymomot/hookrelay/pkg/relay"
)

// MaxEmbedsPerMessage is the number of embeds Discord accepts in one message.
const MaxEmbedsPerMessage = 10

// TimestampLayout is the minute-precision UTC layout stamped on every embed.
const TimestampLayout = "2006-01-02T15:04Z"

// DiscordMessage is a Discord webhook execute body.
type DiscordMessage struct {
	Content   string  `json:"content,omitempty"`
	Username  string  `json:"username,omitempty"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Embeds    []Embed `json:"embeds,omitempty"`
}

type Embed struct {
	Timestamp   string       `json:"timestamp"`
	Title       string       `json:"title,omitempty"`
	URL         string       `json:"url,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       *int         `json:"color,omitempty"`
	Image       *EmbedImage  `json:"image,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
}

type EmbedImage struct {
	URL string `json:"url"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type EmbedFooter struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

// Encode serializes the message into a payload ready for delivery.
func (m DiscordMessage) Encode() (relay.Payload, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return relay.Payload(b), nil
}
