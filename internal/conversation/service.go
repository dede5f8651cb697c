// Package conversation is the append-only, per-case ordered message log with
// realtime fan-out.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kingauto/chatdesk/internal/cases"
	"github.com/kingauto/chatdesk/internal/db"
	"github.com/kingauto/chatdesk/internal/db/sqlc"
	"github.com/kingauto/chatdesk/internal/realtime"
)

const (
	defaultHistoryLimit = 200
	defaultRecentLimit  = 50
	maxListLimit        = 1000
)

// Errors returned by log operations.
var (
	ErrUnknownCase        = errors.New("unknown case")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Service owns message rows. Appends to one case are serialized through the
// registry's per-case critical section; the realtime publish happens inside
// that section, so subscribers observe messages in persistence order.
type Service struct {
	queries  *sqlc.Queries
	registry *cases.Service
	hub      *realtime.Hub
	sender   ReplySender
	logger   *slog.Logger
}

// NewService creates the conversation log service. sender may be nil in
// deployments without an outbound messaging credential; admin replies are
// then recorded with delivery status failed.
func NewService(log *slog.Logger, queries *sqlc.Queries, registry *cases.Service, hub *realtime.Hub, sender ReplySender) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		queries:  queries,
		registry: registry,
		hub:      hub,
		sender:   sender,
		logger:   log.With(slog.String("service", "conversation")),
	}
}

// Append persists a message on a case and publishes it to the case's
// realtime channel. Nothing is published when persistence fails: a client
// never sees a message that is not durably recorded. For admin messages the
// body is then pushed to the customer; push failure marks the stored message
// failed and raises a delivery-failed event instead of undoing the append.
func (s *Service) Append(ctx context.Context, req AppendRequest) (Message, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return Message{}, fmt.Errorf("message body is required")
	}
	if req.Sender != SenderCustomer && req.Sender != SenderAdmin {
		return Message{}, fmt.Errorf("unknown sender role: %q", req.Sender)
	}
	contentType := strings.TrimSpace(req.ContentType)
	if contentType == "" {
		contentType = ContentTypeText
	}

	owner, err := s.registry.Get(ctx, req.CaseID)
	if err != nil {
		if errors.Is(err, cases.ErrCaseNotFound) {
			return Message{}, fmt.Errorf("%w: case %d", ErrUnknownCase, req.CaseID)
		}
		return Message{}, classify(err)
	}

	initialStatus := DeliverySent
	if req.Sender == SenderAdmin {
		initialStatus = DeliveryPending
	}

	var stored Message
	err = s.registry.WithCaseLock(req.CaseID, func() error {
		row, err := s.queries.CreateMessage(ctx, sqlc.CreateMessageParams{
			CaseID:         req.CaseID,
			Sender:         string(req.Sender),
			Body:           body,
			ContentType:    contentType,
			DeliveryStatus: string(initialStatus),
		})
		if err != nil {
			return classify(fmt.Errorf("persist message: %w", err))
		}
		stored = toMessage(row)
		s.hub.Publish(realtime.CaseChannel(req.CaseID), realtime.Event{
			Type:    realtime.EventMessage,
			Payload: stored,
		})
		return nil
	})
	if err != nil {
		return Message{}, err
	}

	if req.Sender == SenderAdmin {
		stored = s.deliver(ctx, owner, stored)
	}
	return stored, nil
}

// deliver pushes an admin reply to the customer and settles the message's
// delivery status. The message stays persisted whatever happens here.
func (s *Service) deliver(ctx context.Context, owner cases.Case, msg Message) Message {
	var sendErr error
	if s.sender == nil {
		sendErr = errors.New("reply sender not configured")
	} else {
		sendErr = s.sender.Send(ctx, owner.ChannelID, owner.CustomerExternalID, msg.Body)
	}

	status := DeliverySent
	if sendErr != nil {
		status = DeliveryFailed
		s.logger.Warn("outbound delivery failed",
			slog.Int64("case_id", msg.CaseID),
			slog.Int64("message_id", msg.ID),
			slog.Any("error", sendErr),
		)
	}

	row, err := s.queries.UpdateMessageDeliveryStatus(ctx, sqlc.UpdateMessageDeliveryStatusParams{
		ID:             msg.ID,
		DeliveryStatus: string(status),
	})
	if err != nil {
		s.logger.Error("update delivery status failed",
			slog.Int64("message_id", msg.ID),
			slog.Any("error", err),
		)
		msg.DeliveryStatus = status
	} else {
		msg = toMessage(row)
	}

	if status == DeliveryFailed {
		s.hub.Publish(realtime.AdminChannel, realtime.Event{
			Type:    realtime.EventDeliveryFailed,
			Payload: msg,
		})
	}
	return msg
}

// History returns a case's messages oldest first. Repeating the call with no
// intervening append yields identical results.
func (s *Service) History(ctx context.Context, caseID int64, limit int) ([]Message, error) {
	limit = clampLimit(limit, defaultHistoryLimit)
	if _, err := s.registry.Get(ctx, caseID); err != nil {
		if errors.Is(err, cases.ErrCaseNotFound) {
			return nil, fmt.Errorf("%w: case %d", ErrUnknownCase, caseID)
		}
		return nil, classify(err)
	}
	rows, err := s.queries.ListMessagesByCase(ctx, sqlc.ListMessagesByCaseParams{
		CaseID: caseID,
		Limit:  int32(limit),
	})
	if err != nil {
		return nil, classify(err)
	}
	return toMessages(rows), nil
}

// Recent returns a case's latest messages newest first, for summary views.
func (s *Service) Recent(ctx context.Context, caseID int64, limit int) ([]Message, error) {
	limit = clampLimit(limit, defaultRecentLimit)
	if _, err := s.registry.Get(ctx, caseID); err != nil {
		if errors.Is(err, cases.ErrCaseNotFound) {
			return nil, fmt.Errorf("%w: case %d", ErrUnknownCase, caseID)
		}
		return nil, classify(err)
	}
	rows, err := s.queries.ListRecentMessagesByCase(ctx, sqlc.ListRecentMessagesByCaseParams{
		CaseID: caseID,
		Limit:  int32(limit),
	})
	if err != nil {
		return nil, classify(err)
	}
	return toMessages(rows), nil
}

// clampLimit keeps a caller-supplied limit inside [1, maxListLimit]; the
// queries take an int32 LIMIT, so oversized values must not reach them.
func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

func classify(err error) error {
	if db.IsUnavailable(err) {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return err
}

func toMessage(row sqlc.Message) Message {
	return Message{
		ID:             row.ID,
		CaseID:         row.CaseID,
		Sender:         Sender(row.Sender),
		Body:           row.Body,
		ContentType:    row.ContentType,
		DeliveryStatus: DeliveryStatus(row.DeliveryStatus),
		CreatedAt:      db.TimeFromPg(row.CreatedAt),
	}
}

func toMessages(rows []sqlc.Message) []Message {
	items := make([]Message, 0, len(rows))
	for _, row := range rows {
		items = append(items, toMessage(row))
	}
	return items
}
