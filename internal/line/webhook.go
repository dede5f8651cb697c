package line

import (
	"time"

	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
)

// InboundEvent is one customer text message extracted from a webhook
// callback, reduced to what the case registry needs.
type InboundEvent struct {
	CustomerExternalID string
	ChannelID          string
	Body               string
	ReceivedAt         time.Time
}

// EventsFromCallback extracts inbound text messages from a verified webhook
// callback. Non-message events (follows, joins, postbacks) and non-text
// content are skipped; so are messages without a user source, since a case
// needs a customer identity to attach to.
func EventsFromCallback(channelID string, cb *webhook.CallbackRequest) []InboundEvent {
	if cb == nil {
		return nil
	}
	events := make([]InboundEvent, 0, len(cb.Events))
	for _, raw := range cb.Events {
		messageEvent, ok := raw.(webhook.MessageEvent)
		if !ok {
			continue
		}
		text, ok := messageEvent.Message.(webhook.TextMessageContent)
		if !ok {
			continue
		}
		source, ok := messageEvent.Source.(webhook.UserSource)
		if !ok || source.UserId == "" {
			continue
		}
		events = append(events, InboundEvent{
			CustomerExternalID: source.UserId,
			ChannelID:          channelID,
			Body:               text.Text,
			ReceivedAt:         time.UnixMilli(messageEvent.Timestamp).UTC(),
		})
	}
	return events
}
