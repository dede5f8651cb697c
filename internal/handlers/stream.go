package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/labstack/echo/v4"

	"github.com/kingauto/chatdesk/internal/cases"
	"github.com/kingauto/chatdesk/internal/realtime"
)

// StreamHandler serves the realtime surfaces: a per-case SSE stream for the
// open conversation view and a WebSocket carrying case lifecycle events for
// the whole console.
type StreamHandler struct {
	registry *cases.Service
	hub      *realtime.Hub
	logger   *slog.Logger
}

// NewStreamHandler creates a stream handler.
func NewStreamHandler(log *slog.Logger, registry *cases.Service, hub *realtime.Hub) *StreamHandler {
	return &StreamHandler{
		registry: registry,
		hub:      hub,
		logger:   log.With(slog.String("handler", "stream")),
	}
}

// Register mounts the realtime routes on the Echo instance.
func (h *StreamHandler) Register(e *echo.Echo) {
	e.GET("/cases/:id/stream", h.StreamCase)
	e.GET("/ws", h.AdminSocket)
}

// StreamCase godoc
// @Summary Stream a case's new messages
// @Description Server-sent events; one event per message appended to the case after subscription
// @Tags realtime
// @Param id path int true "Case ID"
// @Success 200 {string} string "text/event-stream"
// @Failure 404 {object} ErrorResponse
// @Router /cases/{id}/stream [get]
func (h *StreamHandler) StreamCase(c echo.Context) error {
	caseID, err := caseIDParam(c)
	if err != nil {
		return err
	}
	if _, err := h.registry.Get(c.Request().Context(), caseID); err != nil {
		return caseError(err)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	c.Response().Header().Set(echo.HeaderConnection, "keep-alive")
	c.Response().WriteHeader(http.StatusOK)

	flusher, ok := c.Response().Writer.(http.Flusher)
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "streaming not supported")
	}
	writer := bufio.NewWriter(c.Response().Writer)

	subID, stream, cancel := h.hub.Subscribe(realtime.CaseChannel(caseID))
	defer cancel()
	h.logger.Debug("sse subscribed",
		slog.Int64("case_id", caseID),
		slog.String("subscriber", subID),
	)

	for {
		select {
		case <-c.Request().Context().Done():
			return nil
		case event, ok := <-stream:
			if !ok {
				return nil
			}
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			_, _ = writer.WriteString(fmt.Sprintf("event: %s\ndata: %s\n\n", event.Type, string(data)))
			writer.Flush()
			flusher.Flush()
		}
	}
}

// AdminSocket godoc
// @Summary Console event socket
// @Description WebSocket carrying case created/assigned/closed/reopened and delivery failure events for every case
// @Tags realtime
// @Success 101 {string} string "Switching Protocols"
// @Router /ws [get]
func (h *StreamHandler) AdminSocket(c echo.Context) error {
	conn, err := websocket.Accept(c.Response(), c.Request(), nil)
	if err != nil {
		return nil
	}
	defer conn.Close(websocket.StatusInternalError, "closing")

	ctx := conn.CloseRead(c.Request().Context())

	subID, stream, cancel := h.hub.Subscribe(realtime.AdminChannel)
	defer cancel()
	h.logger.Debug("console socket subscribed", slog.String("subscriber", subID))

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return nil
		case event, ok := <-stream:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "")
				return nil
			}
			if err := wsjson.Write(ctx, conn, event); err != nil {
				return nil
			}
		}
	}
}
