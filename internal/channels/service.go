// Package channels manages the LINE Official Account registry: per-account
// display names and messaging credentials used by the webhook route and the
// reply sender.
package channels

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/kingauto/chatdesk/internal/db"
	"github.com/kingauto/chatdesk/internal/db/sqlc"
)

// Errors returned by channel registry operations.
var (
	ErrChannelNotFound = errors.New("channel not found")
	ErrChannelExists   = errors.New("channel already exists")
)

// Service provides LINE OA account management.
type Service struct {
	queries *sqlc.Queries
	logger  *slog.Logger
}

// NewService creates a new channels service.
func NewService(log *slog.Logger, queries *sqlc.Queries) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		queries: queries,
		logger:  log.With(slog.String("service", "channels")),
	}
}

// Get returns a channel by its external channel id (masked credentials).
func (s *Service) Get(ctx context.Context, channelID string) (Channel, error) {
	row, err := s.lookup(ctx, channelID)
	if err != nil {
		return Channel{}, err
	}
	return toChannel(row), nil
}

// Credentials returns the full access token and secret for a channel. Only
// the webhook handler and the reply sender call this; API responses use Get.
func (s *Service) Credentials(ctx context.Context, channelID string) (accessToken, secret string, err error) {
	row, err := s.lookup(ctx, channelID)
	if err != nil {
		return "", "", err
	}
	return row.AccessToken, db.TextToString(row.Secret), nil
}

// List returns all channels, masked credentials.
func (s *Service) List(ctx context.Context) ([]Channel, error) {
	rows, err := s.queries.ListChannels(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]Channel, 0, len(rows))
	for _, row := range rows {
		items = append(items, toChannel(row))
	}
	return items, nil
}

// Create registers a new LINE OA.
func (s *Service) Create(ctx context.Context, req UpsertRequest) (Channel, error) {
	if err := validate(req); err != nil {
		return Channel{}, err
	}
	row, err := s.queries.CreateChannel(ctx, sqlc.CreateChannelParams{
		ChannelID:   strings.TrimSpace(req.ChannelID),
		Name:        strings.TrimSpace(req.Name),
		AccessToken: strings.TrimSpace(req.AccessToken),
		Secret:      db.TextOrNull(req.Secret),
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Channel{}, ErrChannelExists
		}
		return Channel{}, err
	}
	s.logger.Info("channel registered", slog.String("channel_id", row.ChannelID))
	return toChannel(row), nil
}

// Update replaces a channel's name and credentials.
func (s *Service) Update(ctx context.Context, channelID string, req UpsertRequest) (Channel, error) {
	req.ChannelID = channelID
	if err := validate(req); err != nil {
		return Channel{}, err
	}
	row, err := s.queries.UpdateChannel(ctx, sqlc.UpdateChannelParams{
		ChannelID:   strings.TrimSpace(channelID),
		Name:        strings.TrimSpace(req.Name),
		AccessToken: strings.TrimSpace(req.AccessToken),
		Secret:      db.TextOrNull(req.Secret),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Channel{}, ErrChannelNotFound
		}
		return Channel{}, err
	}
	return toChannel(row), nil
}

// Delete removes a channel and its templates.
func (s *Service) Delete(ctx context.Context, channelID string) error {
	if _, err := s.lookup(ctx, channelID); err != nil {
		return err
	}
	return s.queries.DeleteChannel(ctx, strings.TrimSpace(channelID))
}

func (s *Service) lookup(ctx context.Context, channelID string) (sqlc.Channel, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return sqlc.Channel{}, fmt.Errorf("channel id is required")
	}
	row, err := s.queries.GetChannelByChannelID(ctx, channelID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sqlc.Channel{}, ErrChannelNotFound
		}
		return sqlc.Channel{}, err
	}
	return row, nil
}

func validate(req UpsertRequest) error {
	if strings.TrimSpace(req.ChannelID) == "" {
		return fmt.Errorf("channel id is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("channel name is required")
	}
	if strings.TrimSpace(req.AccessToken) == "" {
		return fmt.Errorf("access token is required")
	}
	return nil
}

func toChannel(row sqlc.Channel) Channel {
	return Channel{
		ID:        row.ID,
		ChannelID: row.ChannelID,
		Name:      row.Name,
		TokenTail: maskToken(row.AccessToken),
		HasSecret: row.Secret.Valid && row.Secret.String != "",
		CreatedAt: db.TimeFromPg(row.CreatedAt),
	}
}

func maskToken(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}
