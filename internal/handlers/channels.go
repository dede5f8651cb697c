package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kingauto/chatdesk/internal/channels"
)

// ChannelsHandler serves the LINE OA registry routes.
type ChannelsHandler struct {
	channels *channels.Service
	logger   *slog.Logger
}

// NewChannelsHandler creates a channels handler.
func NewChannelsHandler(log *slog.Logger, channelService *channels.Service) *ChannelsHandler {
	return &ChannelsHandler{
		channels: channelService,
		logger:   log.With(slog.String("handler", "channels")),
	}
}

// Register mounts the channel routes on the Echo instance.
func (h *ChannelsHandler) Register(e *echo.Echo) {
	e.GET("/channels", h.List)
	e.POST("/channels", h.Create)
	e.PUT("/channels/:id", h.Update)
	e.DELETE("/channels/:id", h.Delete)
}

// List godoc
// @Summary List channels
// @Description All registered LINE OAs with masked credentials
// @Tags channels
// @Success 200 {object} channels.ListResponse
// @Router /channels [get]
func (h *ChannelsHandler) List(c echo.Context) error {
	items, err := h.channels.List(c.Request().Context())
	if err != nil {
		return channelError(err)
	}
	return c.JSON(http.StatusOK, channels.ListResponse{Items: items})
}

// Create godoc
// @Summary Register a channel
// @Tags channels
// @Param payload body channels.UpsertRequest true "Channel"
// @Success 201 {object} channels.Channel
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /channels [post]
func (h *ChannelsHandler) Create(c echo.Context) error {
	var req channels.UpsertRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.ChannelID) == "" || strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.AccessToken) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "channel_id, name and access_token are required")
	}
	item, err := h.channels.Create(c.Request().Context(), req)
	if err != nil {
		return channelError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

// Update godoc
// @Summary Update a channel
// @Description Replace the channel's name and credentials
// @Tags channels
// @Param id path string true "Channel ID"
// @Param payload body channels.UpsertRequest true "Channel"
// @Success 200 {object} channels.Channel
// @Failure 404 {object} ErrorResponse
// @Router /channels/{id} [put]
func (h *ChannelsHandler) Update(c echo.Context) error {
	channelID := strings.TrimSpace(c.Param("id"))
	var req channels.UpsertRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.AccessToken) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and access_token are required")
	}
	item, err := h.channels.Update(c.Request().Context(), channelID, req)
	if err != nil {
		return channelError(err)
	}
	return c.JSON(http.StatusOK, item)
}

// Delete godoc
// @Summary Delete a channel
// @Description Remove the channel and its templates; existing cases keep their channel id
// @Tags channels
// @Param id path string true "Channel ID"
// @Success 204 {string} string "No Content"
// @Failure 404 {object} ErrorResponse
// @Router /channels/{id} [delete]
func (h *ChannelsHandler) Delete(c echo.Context) error {
	if err := h.channels.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return channelError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func channelError(err error) error {
	switch {
	case errors.Is(err, channels.ErrChannelNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, channels.ErrChannelExists):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
