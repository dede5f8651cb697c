package line

import (
	"testing"
	"time"

	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
)

func TestEventsFromCallback(t *testing.T) {
	cb := &webhook.CallbackRequest{
		Events: []webhook.EventInterface{
			webhook.MessageEvent{
				Timestamp: 1700000000000,
				Source:    webhook.UserSource{UserId: "U1"},
				Message:   webhook.TextMessageContent{Text: "hello"},
			},
			// Sticker content is skipped.
			webhook.MessageEvent{
				Source:  webhook.UserSource{UserId: "U1"},
				Message: webhook.StickerMessageContent{},
			},
			// Group source without a user identity is skipped.
			webhook.MessageEvent{
				Source:  webhook.GroupSource{GroupId: "G1"},
				Message: webhook.TextMessageContent{Text: "group chatter"},
			},
			// Non-message events are skipped.
			webhook.FollowEvent{},
		},
	}

	events := EventsFromCallback("OA-A", cb)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	got := events[0]
	if got.CustomerExternalID != "U1" {
		t.Errorf("customer = %q, want U1", got.CustomerExternalID)
	}
	if got.ChannelID != "OA-A" {
		t.Errorf("channel = %q, want OA-A", got.ChannelID)
	}
	if got.Body != "hello" {
		t.Errorf("body = %q, want hello", got.Body)
	}
	want := time.UnixMilli(1700000000000).UTC()
	if !got.ReceivedAt.Equal(want) {
		t.Errorf("receivedAt = %v, want %v", got.ReceivedAt, want)
	}
}

func TestEventsFromCallbackNil(t *testing.T) {
	if got := EventsFromCallback("OA-A", nil); got != nil {
		t.Errorf("EventsFromCallback(nil) = %v, want nil", got)
	}
}
