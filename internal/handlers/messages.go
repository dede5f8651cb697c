package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kingauto/chatdesk/internal/conversation"
)

// MessagesHandler serves conversation log routes under /cases/:id/messages.
type MessagesHandler struct {
	log    *conversation.Service
	logger *slog.Logger
}

// SendRequest is the body for POST /cases/:id/messages.
type SendRequest struct {
	Body        string `json:"body"`
	ContentType string `json:"content_type,omitempty"`
}

// NewMessagesHandler creates a messages handler.
func NewMessagesHandler(logg *slog.Logger, log *conversation.Service) *MessagesHandler {
	return &MessagesHandler{
		log:    log,
		logger: logg.With(slog.String("handler", "messages")),
	}
}

// Register mounts the message routes on the Echo instance.
func (h *MessagesHandler) Register(e *echo.Echo) {
	e.GET("/cases/:id/messages", h.History)
	e.GET("/cases/:id/messages/recent", h.Recent)
	e.POST("/cases/:id/messages", h.Send)
}

// History godoc
// @Summary List a case's messages
// @Description Full conversation history, oldest first
// @Tags messages
// @Param id path int true "Case ID"
// @Param limit query int false "Maximum messages to return"
// @Success 200 {object} conversation.ListResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /cases/{id}/messages [get]
func (h *MessagesHandler) History(c echo.Context) error {
	caseID, err := caseIDParam(c)
	if err != nil {
		return err
	}
	items, err := h.log.History(c.Request().Context(), caseID, limitParam(c))
	if err != nil {
		return caseError(err)
	}
	return c.JSON(http.StatusOK, conversation.ListResponse{Items: items})
}

// Recent godoc
// @Summary List a case's latest messages
// @Description Latest messages newest first, for the case summary pane
// @Tags messages
// @Param id path int true "Case ID"
// @Param limit query int false "Maximum messages to return"
// @Success 200 {object} conversation.ListResponse
// @Failure 404 {object} ErrorResponse
// @Router /cases/{id}/messages/recent [get]
func (h *MessagesHandler) Recent(c echo.Context) error {
	caseID, err := caseIDParam(c)
	if err != nil {
		return err
	}
	items, err := h.log.Recent(c.Request().Context(), caseID, limitParam(c))
	if err != nil {
		return caseError(err)
	}
	return c.JSON(http.StatusOK, conversation.ListResponse{Items: items})
}

// Send godoc
// @Summary Send an admin reply on a case
// @Description Append the reply to the log and push it to the customer. The stored message's delivery_status reports the push outcome.
// @Tags messages
// @Param id path int true "Case ID"
// @Param payload body SendRequest true "Reply"
// @Success 201 {object} conversation.Message
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /cases/{id}/messages [post]
func (h *MessagesHandler) Send(c echo.Context) error {
	caseID, err := caseIDParam(c)
	if err != nil {
		return err
	}
	var req SendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Body == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message body is required")
	}
	msg, err := h.log.Append(c.Request().Context(), conversation.AppendRequest{
		CaseID:      caseID,
		Sender:      conversation.SenderAdmin,
		Body:        req.Body,
		ContentType: req.ContentType,
	})
	if err != nil {
		return caseError(err)
	}
	return c.JSON(http.StatusCreated, msg)
}

func limitParam(c echo.Context) int {
	raw := c.QueryParam("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
