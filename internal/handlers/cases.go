package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kingauto/chatdesk/internal/cases"
	"github.com/kingauto/chatdesk/internal/conversation"
)

// CasesHandler serves the case registry routes.
type CasesHandler struct {
	registry *cases.Service
	logger   *slog.Logger
}

// AssignRequest is the body for POST /cases/:id/assign.
type AssignRequest struct {
	AdminName string `json:"admin_name"`
}

// NoteRequest is the body for PUT /cases/:id/note.
type NoteRequest struct {
	Note string `json:"note"`
}

// NewCasesHandler creates a cases handler.
func NewCasesHandler(log *slog.Logger, registry *cases.Service) *CasesHandler {
	return &CasesHandler{
		registry: registry,
		logger:   log.With(slog.String("handler", "cases")),
	}
}

// Register mounts the case routes on the Echo instance.
func (h *CasesHandler) Register(e *echo.Echo) {
	e.GET("/cases", h.List)
	e.GET("/cases/:id", h.Get)
	e.POST("/cases/:id/assign", h.Assign)
	e.PUT("/cases/:id/note", h.SetNote)
	e.POST("/cases/:id/close", h.Close)
	e.POST("/cases/:id/reopen", h.Reopen)
}

// List godoc
// @Summary List cases
// @Description List cases newest first, optionally filtered by channel_id and status
// @Tags cases
// @Param channel_id query string false "Filter by channel id"
// @Param status query string false "Filter by status (new, assigned, closed)"
// @Success 200 {object} cases.ListResponse
// @Failure 400 {object} ErrorResponse
// @Router /cases [get]
func (h *CasesHandler) List(c echo.Context) error {
	filter := cases.Filter{ChannelID: c.QueryParam("channel_id")}
	if raw := c.QueryParam("status"); raw != "" {
		status, err := cases.ParseStatus(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		filter.Status = status
	}
	items, err := h.registry.List(c.Request().Context(), filter)
	if err != nil {
		return caseError(err)
	}
	return c.JSON(http.StatusOK, cases.ListResponse{Items: items})
}

// Get godoc
// @Summary Get a case
// @Tags cases
// @Param id path int true "Case ID"
// @Success 200 {object} cases.Case
// @Failure 404 {object} ErrorResponse
// @Router /cases/{id} [get]
func (h *CasesHandler) Get(c echo.Context) error {
	caseID, err := caseIDParam(c)
	if err != nil {
		return err
	}
	item, err := h.registry.Get(c.Request().Context(), caseID)
	if err != nil {
		return caseError(err)
	}
	return c.JSON(http.StatusOK, item)
}

// Assign godoc
// @Summary Assign a case to an admin
// @Description Transition the case to assigned and record the admin name. Reassignment is allowed.
// @Tags cases
// @Param id path int true "Case ID"
// @Param payload body AssignRequest true "Assignment"
// @Success 200 {object} cases.Case
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /cases/{id}/assign [post]
func (h *CasesHandler) Assign(c echo.Context) error {
	caseID, err := caseIDParam(c)
	if err != nil {
		return err
	}
	var req AssignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.AdminName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "admin_name is required")
	}
	item, err := h.registry.Assign(c.Request().Context(), caseID, req.AdminName)
	if err != nil {
		return caseError(err)
	}
	return c.JSON(http.StatusOK, item)
}

// SetNote godoc
// @Summary Set the note on a case
// @Tags cases
// @Param id path int true "Case ID"
// @Param payload body NoteRequest true "Note"
// @Success 200 {object} cases.Case
// @Failure 404 {object} ErrorResponse
// @Router /cases/{id}/note [put]
func (h *CasesHandler) SetNote(c echo.Context) error {
	caseID, err := caseIDParam(c)
	if err != nil {
		return err
	}
	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	item, err := h.registry.SetNote(c.Request().Context(), caseID, req.Note)
	if err != nil {
		return caseError(err)
	}
	return c.JSON(http.StatusOK, item)
}

// Close godoc
// @Summary Close a case
// @Tags cases
// @Param id path int true "Case ID"
// @Success 200 {object} cases.Case
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /cases/{id}/close [post]
func (h *CasesHandler) Close(c echo.Context) error {
	caseID, err := caseIDParam(c)
	if err != nil {
		return err
	}
	item, err := h.registry.Close(c.Request().Context(), caseID)
	if err != nil {
		return caseError(err)
	}
	return c.JSON(http.StatusOK, item)
}

// Reopen godoc
// @Summary Reopen a closed case
// @Tags cases
// @Param id path int true "Case ID"
// @Success 200 {object} cases.Case
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /cases/{id}/reopen [post]
func (h *CasesHandler) Reopen(c echo.Context) error {
	caseID, err := caseIDParam(c)
	if err != nil {
		return err
	}
	item, err := h.registry.Reopen(c.Request().Context(), caseID)
	if err != nil {
		return caseError(err)
	}
	return c.JSON(http.StatusOK, item)
}

func caseIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid case id")
	}
	return id, nil
}

// caseError maps registry and log errors onto HTTP status codes.
func caseError(err error) error {
	switch {
	case errors.Is(err, cases.ErrCaseNotFound), errors.Is(err, conversation.ErrUnknownCase):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, cases.ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, conversation.ErrStorageUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
