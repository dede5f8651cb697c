package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"github.com/kingauto/chatdesk/internal/cases"
	"github.com/kingauto/chatdesk/internal/channels"
	"github.com/kingauto/chatdesk/internal/conversation"
	"github.com/kingauto/chatdesk/internal/line"
)

// WebhookHandler receives LINE webhook deliveries and feeds inbound customer
// messages into the case registry and conversation log.
type WebhookHandler struct {
	channels *channels.Service
	registry *cases.Service
	log      *conversation.Service
	logger   *slog.Logger
}

// NewWebhookHandler creates a webhook handler.
func NewWebhookHandler(logg *slog.Logger, channelService *channels.Service, registry *cases.Service, log *conversation.Service) *WebhookHandler {
	return &WebhookHandler{
		channels: channelService,
		registry: registry,
		log:      log,
		logger:   logg.With(slog.String("handler", "webhook")),
	}
}

// Register mounts the webhook route on the Echo instance.
func (h *WebhookHandler) Register(e *echo.Echo) {
	e.POST("/webhook/:channel_id", h.Receive)
}

// Receive godoc
// @Summary LINE webhook endpoint
// @Description Verify the delivery signature against the channel secret, then attach each inbound text message to the customer's open case, creating one if needed
// @Tags webhook
// @Param channel_id path string true "LINE channel ID"
// @Success 200 {string} string "ok"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /webhook/{channel_id} [post]
func (h *WebhookHandler) Receive(c echo.Context) error {
	channelID := strings.TrimSpace(c.Param("channel_id"))
	if channelID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "channel id is required")
	}

	_, secret, err := h.channels.Credentials(c.Request().Context(), channelID)
	if err != nil {
		if errors.Is(err, channels.ErrChannelNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "unknown channel")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if secret == "" {
		h.logger.Warn("webhook rejected, channel has no secret", slog.String("channel_id", channelID))
		return echo.NewHTTPError(http.StatusUnauthorized, "channel has no webhook secret configured")
	}

	cb, err := webhook.ParseRequest(secret, c.Request())
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			h.logger.Warn("webhook signature mismatch", slog.String("channel_id", channelID))
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid signature")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	for _, event := range line.EventsFromCallback(channelID, cb) {
		owner, err := h.registry.ResolveOrCreate(ctx, event.CustomerExternalID, event.ChannelID)
		if err != nil {
			h.logger.Error("resolve case failed",
				slog.String("channel_id", event.ChannelID),
				slog.String("customer", event.CustomerExternalID),
				slog.Any("error", err),
			)
			continue
		}
		if _, err := h.log.Append(ctx, conversation.AppendRequest{
			CaseID: owner.ID,
			Sender: conversation.SenderCustomer,
			Body:   event.Body,
		}); err != nil {
			h.logger.Error("append inbound message failed",
				slog.Int64("case_id", owner.ID),
				slog.Any("error", err),
			)
		}
	}

	// LINE retries on non-2xx; per-event failures are logged, not surfaced.
	return c.NoContent(http.StatusOK)
}
