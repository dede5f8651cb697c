package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kingauto/chatdesk/internal/channels"
	"github.com/kingauto/chatdesk/internal/templates"
)

// TemplatesHandler serves per-channel quick reply routes.
type TemplatesHandler struct {
	templates *templates.Service
	channels  *channels.Service
	logger    *slog.Logger
}

// NewTemplatesHandler creates a templates handler.
func NewTemplatesHandler(log *slog.Logger, templateService *templates.Service, channelService *channels.Service) *TemplatesHandler {
	return &TemplatesHandler{
		templates: templateService,
		channels:  channelService,
		logger:    log.With(slog.String("handler", "templates")),
	}
}

// Register mounts the template routes on the Echo instance.
func (h *TemplatesHandler) Register(e *echo.Echo) {
	e.GET("/channels/:id/templates", h.List)
	e.POST("/channels/:id/templates", h.Create)
	e.DELETE("/templates/:id", h.Delete)
}

// List godoc
// @Summary List a channel's templates
// @Tags templates
// @Param id path string true "Channel ID"
// @Success 200 {object} templates.ListResponse
// @Failure 404 {object} ErrorResponse
// @Router /channels/{id}/templates [get]
func (h *TemplatesHandler) List(c echo.Context) error {
	channelID, err := h.requireChannel(c)
	if err != nil {
		return err
	}
	items, err := h.templates.ListByChannel(c.Request().Context(), channelID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, templates.ListResponse{Items: items})
}

// Create godoc
// @Summary Create a template on a channel
// @Tags templates
// @Param id path string true "Channel ID"
// @Param payload body templates.CreateRequest true "Template"
// @Success 201 {object} templates.Template
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /channels/{id}/templates [post]
func (h *TemplatesHandler) Create(c echo.Context) error {
	channelID, err := h.requireChannel(c)
	if err != nil {
		return err
	}
	var req templates.CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Body) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "template body is required")
	}
	item, err := h.templates.Create(c.Request().Context(), channelID, req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, item)
}

// Delete godoc
// @Summary Delete a template
// @Tags templates
// @Param id path int true "Template ID"
// @Success 204 {string} string "No Content"
// @Failure 400 {object} ErrorResponse
// @Router /templates/{id} [delete]
func (h *TemplatesHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid template id")
	}
	if err := h.templates.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TemplatesHandler) requireChannel(c echo.Context) (string, error) {
	channelID := strings.TrimSpace(c.Param("id"))
	if channelID == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "channel id is required")
	}
	if _, err := h.channels.Get(c.Request().Context(), channelID); err != nil {
		if errors.Is(err, channels.ErrChannelNotFound) {
			return "", echo.NewHTTPError(http.StatusNotFound, "unknown channel")
		}
		return "", echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return channelID, nil
}
