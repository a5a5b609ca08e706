// Package translate converts Slack incoming-webhook messages into Discord
// webhook execute payloads.
//
// Every Slack attachment becomes one Discord embed. Embeds of a single request
// are batched into as few Discord messages as possible, at most
// MaxEmbedsPerMessage each, preserving order. The top-level Slack text,
// username and icon become content, username and avatar of the first message.
//
//	msgs, err := translate.Translate(body, time.Now())
//	if err != nil {
//	    // translate.ErrInvalidMessage: body is not a Slack message object
//	}
//	for _, m := range msgs {
//	    payload, err := m.Encode()
//	    ...
//	}
//
// The package is pure: it performs no I/O and keeps no state.
package translate
