package translate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Translate parses a Slack message body and converts it into Discord messages.
// A message without attachments and text yields no Discord messages.
func Translate(body []byte, now time.Time) ([]DiscordMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: body is not a JSON object", ErrInvalidMessage)
	}

	var msg SlackMessage
	if err := json.Unmarshal(trimmed, &msg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}

	return Convert(msg, now), nil
}

// Convert maps an already decoded Slack message. now is stamped on every embed.
func Convert(msg SlackMessage, now time.Time) []DiscordMessage {
	stamp := now.UTC().Format(TimestampLayout)

	embeds := make([]Embed, 0, len(msg.Attachments))
	for _, a := range msg.Attachments {
		embeds = append(embeds, convertAttachment(a, stamp))
	}

	if len(embeds) == 0 && msg.Text == "" {
		return nil
	}

	var out []DiscordMessage
	for start := 0; start < len(embeds) || len(out) == 0; start += MaxEmbedsPerMessage {
		end := min(start+MaxEmbedsPerMessage, len(embeds))
		out = append(out, DiscordMessage{Embeds: embeds[start:end:end]})
	}

	out[0].Content = msg.Text
	out[0].Username = msg.Username
	out[0].AvatarURL = msg.IconURL
	return out
}

// CountEmbeds returns the total number of embeds across msgs.
func CountEmbeds(msgs []DiscordMessage) int {
	n := 0
	for _, m := range msgs {
		n += len(m.Embeds)
	}
	return n
}

func convertAttachment(a SlackAttachment, stamp string) Embed {
	e := Embed{
		Timestamp:   stamp,
		Title:       a.Title,
		URL:         a.TitleLink,
		Description: a.Text,
	}

	if a.ImageURL != "" {
		e.Image = &EmbedImage{URL: a.ImageURL}
	}

	if c, ok := ParseColor(string(a.Color)); ok {
		e.Color = &c
	}

	for _, f := range a.Fields {
		e.Fields = append(e.Fields, EmbedField{
			Name:   f.Title,
			Value:  string(f.Value),
			Inline: f.Short,
		})
	}

	if a.Footer != "" || a.FooterIcon != "" {
		e.Footer = &EmbedFooter{Text: a.Footer, IconURL: a.FooterIcon}
	}

	return e
}
