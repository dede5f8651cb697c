// Package templates stores per-channel quick replies.
package templates

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kingauto/chatdesk/internal/db"
	"github.com/kingauto/chatdesk/internal/db/sqlc"
)

// Service provides template CRUD.
type Service struct {
	queries *sqlc.Queries
	logger  *slog.Logger
}

// NewService creates a new templates service.
func NewService(log *slog.Logger, queries *sqlc.Queries) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		queries: queries,
		logger:  log.With(slog.String("service", "templates")),
	}
}

// ListByChannel returns a channel's templates in creation order.
func (s *Service) ListByChannel(ctx context.Context, channelID string) ([]Template, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return nil, fmt.Errorf("channel id is required")
	}
	rows, err := s.queries.ListTemplatesByChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	items := make([]Template, 0, len(rows))
	for _, row := range rows {
		items = append(items, toTemplate(row))
	}
	return items, nil
}

// Create stores a new quick reply for a channel.
func (s *Service) Create(ctx context.Context, channelID string, req CreateRequest) (Template, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return Template{}, fmt.Errorf("channel id is required")
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return Template{}, fmt.Errorf("template body is required")
	}
	row, err := s.queries.CreateTemplate(ctx, sqlc.CreateTemplateParams{
		ChannelID: channelID,
		Body:      body,
	})
	if err != nil {
		return Template{}, err
	}
	return toTemplate(row), nil
}

// Delete removes a template by id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.queries.DeleteTemplate(ctx, id)
}

func toTemplate(row sqlc.Template) Template {
	return Template{
		ID:        row.ID,
		ChannelID: row.ChannelID,
		Body:      row.Body,
		CreatedAt: db.TimeFromPg(row.CreatedAt),
	}
}
