// Package handlers provides the HTTP API handlers for the chatdesk console.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/kingauto/chatdesk/internal/version"
)

// PingHandler serves /ping and /health for liveness and readiness.
type PingHandler struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// HealthResponse is the body for GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
}

// NewPingHandler creates a ping handler.
func NewPingHandler(log *slog.Logger, pool *pgxpool.Pool) *PingHandler {
	return &PingHandler{
		pool:   pool,
		logger: log.With(slog.String("handler", "ping")),
	}
}

// Register mounts the liveness routes on the Echo instance.
func (h *PingHandler) Register(e *echo.Echo) {
	e.GET("/ping", h.Ping)
	e.GET("/health", h.Health)
	e.HEAD("/health", h.HealthHead)
}

// Ping returns 200 JSON {"status":"ok"} without touching dependencies.
func (h *PingHandler) Ping(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Health reports readiness including database connectivity.
func (h *PingHandler) Health(c echo.Context) error {
	resp := HealthResponse{
		Status:   "ok",
		Version:  version.String(),
		Database: "ok",
	}
	code := http.StatusOK

	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if h.pool == nil {
		resp.Status, resp.Database = "degraded", "not configured"
		code = http.StatusServiceUnavailable
	} else if err := h.pool.Ping(ctx); err != nil {
		h.logger.Warn("health db ping failed", slog.Any("error", err))
		resp.Status, resp.Database = "degraded", "unavailable"
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, resp)
}

// HealthHead returns 200 No Content for load balancer checks.
func (h *PingHandler) HealthHead(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}
