package conversation

import "context"

// ReplySender pushes an admin reply out to the customer through the
// messaging platform. Implemented by the LINE client; delivery failure is
// non-fatal to the locally persisted message.
type ReplySender interface {
	Send(ctx context.Context, channelID, customerExternalID, body string) error
}
