// Package line adapts the LINE Messaging API: outbound push of admin
// replies and translation of verified webhook callbacks into inbound
// events for the case registry.
package line

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/kingauto/chatdesk/internal/channels"
)

// Client pushes messages to customers through the LINE Messaging API,
// resolving the channel access token from the channel registry.
type Client struct {
	channels *channels.Service
	logger   *slog.Logger

	mu   sync.Mutex
	apis map[string]*messaging_api.MessagingApiAPI // keyed by access token
}

// NewClient creates a LINE push client.
func NewClient(log *slog.Logger, channelService *channels.Service) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		channels: channelService,
		logger:   log.With(slog.String("adapter", "line")),
		apis:     map[string]*messaging_api.MessagingApiAPI{},
	}
}

// Send pushes a text message to the customer on the given channel.
func (c *Client) Send(ctx context.Context, channelID, customerExternalID, body string) error {
	token, _, err := c.channels.Credentials(ctx, channelID)
	if err != nil {
		return fmt.Errorf("resolve channel credentials: %w", err)
	}
	api, err := c.api(token)
	if err != nil {
		return fmt.Errorf("line api client: %w", err)
	}
	_, err = api.PushMessage(&messaging_api.PushMessageRequest{
		To: customerExternalID,
		Messages: []messaging_api.MessageInterface{
			messaging_api.TextMessage{Text: body},
		},
	}, "")
	if err != nil {
		return fmt.Errorf("push message: %w", err)
	}
	c.logger.Debug("pushed reply",
		slog.String("channel_id", channelID),
		slog.String("customer", customerExternalID),
	)
	return nil
}

func (c *Client) api(token string) (*messaging_api.MessagingApiAPI, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if api, ok := c.apis[token]; ok {
		return api, nil
	}
	api, err := messaging_api.NewMessagingApiAPI(token)
	if err != nil {
		return nil, err
	}
	c.apis[token] = api
	return api, nil
}
