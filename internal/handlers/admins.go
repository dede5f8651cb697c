package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kingauto/chatdesk/internal/admins"
	"github.com/kingauto/chatdesk/internal/auth"
)

// AdminsHandler serves admin account management. Every route requires the
// super role; the JWT middleware has already authenticated the caller.
type AdminsHandler struct {
	admins *admins.Service
	logger *slog.Logger
}

// NewAdminsHandler creates an admins handler.
func NewAdminsHandler(log *slog.Logger, adminService *admins.Service) *AdminsHandler {
	return &AdminsHandler{
		admins: adminService,
		logger: log.With(slog.String("handler", "admins")),
	}
}

// Register mounts the admin account routes on the Echo instance.
func (h *AdminsHandler) Register(e *echo.Echo) {
	e.GET("/admins", h.List)
	e.POST("/admins", h.Create)
	e.GET("/admins/:id", h.Get)
	e.DELETE("/admins/:id", h.Delete)
	e.GET("/me", h.Me)
}

// Me godoc
// @Summary Current admin account
// @Tags admins
// @Success 200 {object} admins.Admin
// @Failure 401 {object} ErrorResponse
// @Router /me [get]
func (h *AdminsHandler) Me(c echo.Context) error {
	callerID, err := auth.AdminIDFromContext(c)
	if err != nil {
		return err
	}
	item, err := h.admins.Get(c.Request().Context(), callerID)
	if err != nil {
		return adminError(err)
	}
	return c.JSON(http.StatusOK, item)
}

// List godoc
// @Summary List admin accounts
// @Tags admins
// @Success 200 {object} admins.ListResponse
// @Failure 403 {object} ErrorResponse
// @Router /admins [get]
func (h *AdminsHandler) List(c echo.Context) error {
	if err := h.requireSuper(c); err != nil {
		return err
	}
	items, err := h.admins.List(c.Request().Context())
	if err != nil {
		return adminError(err)
	}
	return c.JSON(http.StatusOK, admins.ListResponse{Items: items})
}

// Get godoc
// @Summary Get an admin account
// @Tags admins
// @Param id path int true "Admin ID"
// @Success 200 {object} admins.Admin
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admins/{id} [get]
func (h *AdminsHandler) Get(c echo.Context) error {
	if err := h.requireSuper(c); err != nil {
		return err
	}
	id, err := adminIDParam(c)
	if err != nil {
		return err
	}
	item, err := h.admins.Get(c.Request().Context(), id)
	if err != nil {
		return adminError(err)
	}
	return c.JSON(http.StatusOK, item)
}

// Create godoc
// @Summary Create an admin account
// @Tags admins
// @Param payload body admins.CreateRequest true "Account"
// @Success 201 {object} admins.Admin
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admins [post]
func (h *AdminsHandler) Create(c echo.Context) error {
	if err := h.requireSuper(c); err != nil {
		return err
	}
	var req admins.CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}
	item, err := h.admins.Create(c.Request().Context(), req)
	if err != nil {
		return adminError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

// Delete godoc
// @Summary Delete an admin account
// @Tags admins
// @Param id path int true "Admin ID"
// @Success 204 {string} string "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admins/{id} [delete]
func (h *AdminsHandler) Delete(c echo.Context) error {
	if err := h.requireSuper(c); err != nil {
		return err
	}
	id, err := adminIDParam(c)
	if err != nil {
		return err
	}
	callerID, err := auth.AdminIDFromContext(c)
	if err != nil {
		return err
	}
	if id == callerID {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot delete your own account")
	}
	if err := h.admins.Delete(c.Request().Context(), id); err != nil {
		return adminError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminsHandler) requireSuper(c echo.Context) error {
	callerID, err := auth.AdminIDFromContext(c)
	if err != nil {
		return err
	}
	isSuper, err := h.admins.IsSuper(c.Request().Context(), callerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !isSuper {
		return echo.NewHTTPError(http.StatusForbidden, "super role required")
	}
	return nil
}

func adminIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid admin id")
	}
	return id, nil
}

func adminError(err error) error {
	switch {
	case errors.Is(err, admins.ErrAdminNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, admins.ErrUsernameTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
