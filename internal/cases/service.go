// Package cases is the case registry: it resolves inbound activity to a
// single open case per (customer, channel) pair and owns case lifecycle
// and assignment state.
package cases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/kingauto/chatdesk/internal/db"
	"github.com/kingauto/chatdesk/internal/db/sqlc"
	"github.com/kingauto/chatdesk/internal/realtime"
)

// Errors returned by registry operations.
var (
	ErrCaseNotFound      = errors.New("case not found")
	ErrInvalidTransition = errors.New("invalid case status transition")
)

// Service is the case registry. It is the only writer of case rows.
type Service struct {
	queries *sqlc.Queries
	hub     *realtime.Hub
	locks   *keyedMutex
	logger  *slog.Logger
}

// NewService creates the case registry.
func NewService(log *slog.Logger, queries *sqlc.Queries, hub *realtime.Hub) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		queries: queries,
		hub:     hub,
		locks:   newKeyedMutex(),
		logger:  log.With(slog.String("service", "cases")),
	}
}

// WithCaseLock runs fn inside the per-case critical section. The conversation
// log uses the same section for appends, so status changes and appends to one
// case never interleave.
func (s *Service) WithCaseLock(caseID int64, fn func() error) error {
	unlock := s.locks.lock("case:" + strconv.FormatInt(caseID, 10))
	defer unlock()
	return fn()
}

// ResolveOrCreate returns the open case for (customerExternalID, channelID),
// creating one with status new if none exists. Two concurrent inbound events
// for the same customer resolve to the same case: the lookup and insert run
// under a lock keyed by the pair, and the partial unique index on open cases
// backstops other processes writing the same table.
func (s *Service) ResolveOrCreate(ctx context.Context, customerExternalID, channelID string) (Case, error) {
	customerExternalID = strings.TrimSpace(customerExternalID)
	channelID = strings.TrimSpace(channelID)
	if customerExternalID == "" {
		return Case{}, fmt.Errorf("customer external id is required")
	}
	if channelID == "" {
		return Case{}, fmt.Errorf("channel id is required")
	}

	unlock := s.locks.lock("resolve:" + channelID + ":" + customerExternalID)
	defer unlock()

	params := sqlc.GetOpenCaseByCustomerParams{
		CustomerExternalID: customerExternalID,
		ChannelID:          channelID,
	}
	row, err := s.queries.GetOpenCaseByCustomer(ctx, params)
	if err == nil {
		return toCase(row), nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Case{}, fmt.Errorf("lookup open case: %w", err)
	}

	row, err = s.queries.CreateCase(ctx, sqlc.CreateCaseParams{
		CustomerExternalID: customerExternalID,
		ChannelID:          channelID,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			// Raced with another writer; the open case exists now.
			row, err = s.queries.GetOpenCaseByCustomer(ctx, params)
			if err != nil {
				return Case{}, fmt.Errorf("re-read open case: %w", err)
			}
			return toCase(row), nil
		}
		return Case{}, fmt.Errorf("create case: %w", err)
	}

	created := toCase(row)
	s.logger.Info("case created",
		slog.Int64("case_id", created.ID),
		slog.String("channel_id", created.ChannelID),
	)
	s.hub.Publish(realtime.AdminChannel, realtime.Event{
		Type:    realtime.EventCaseCreated,
		Payload: created,
	})
	return created, nil
}

// Get returns a case by id, or ErrCaseNotFound.
func (s *Service) Get(ctx context.Context, caseID int64) (Case, error) {
	row, err := s.queries.GetCaseByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Case{}, ErrCaseNotFound
		}
		return Case{}, err
	}
	return toCase(row), nil
}

// Assign transitions a case to assigned and records the admin. Reassigning an
// already assigned case is permitted (last writer wins) and still notifies.
func (s *Service) Assign(ctx context.Context, caseID int64, adminName string) (Case, error) {
	adminName = strings.TrimSpace(adminName)
	if adminName == "" {
		return Case{}, fmt.Errorf("admin name is required")
	}

	var assigned Case
	err := s.WithCaseLock(caseID, func() error {
		current, err := s.Get(ctx, caseID)
		if err != nil {
			return err
		}
		if !CanTransition(current.Status, StatusAssigned) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, StatusAssigned)
		}
		row, err := s.queries.UpdateCaseAssignment(ctx, sqlc.UpdateCaseAssignmentParams{
			ID:        caseID,
			AdminName: db.TextOrNull(adminName),
		})
		if err != nil {
			return fmt.Errorf("assign case: %w", err)
		}
		assigned = toCase(row)
		// Publish inside the critical section so event order matches the
		// order the updates were committed in.
		s.hub.Publish(realtime.AdminChannel, realtime.Event{
			Type:    realtime.EventCaseAssigned,
			Payload: assigned,
		})
		return nil
	})
	if err != nil {
		return Case{}, err
	}
	return assigned, nil
}

// SetNote replaces the free-text note on a case.
func (s *Service) SetNote(ctx context.Context, caseID int64, note string) (Case, error) {
	var updated Case
	err := s.WithCaseLock(caseID, func() error {
		if _, err := s.Get(ctx, caseID); err != nil {
			return err
		}
		row, err := s.queries.UpdateCaseNote(ctx, sqlc.UpdateCaseNoteParams{
			ID:   caseID,
			Note: db.TextOrNull(note),
		})
		if err != nil {
			return fmt.Errorf("set note: %w", err)
		}
		updated = toCase(row)
		return nil
	})
	if err != nil {
		return Case{}, err
	}
	return updated, nil
}

// Close transitions a case to closed. The row stays queryable; closure is a
// status change, not a removal.
func (s *Service) Close(ctx context.Context, caseID int64) (Case, error) {
	var closed Case
	err := s.WithCaseLock(caseID, func() error {
		current, err := s.Get(ctx, caseID)
		if err != nil {
			return err
		}
		if !CanTransition(current.Status, StatusClosed) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, StatusClosed)
		}
		row, err := s.queries.CloseCase(ctx, caseID)
		if err != nil {
			return fmt.Errorf("close case: %w", err)
		}
		closed = toCase(row)
		s.hub.Publish(realtime.AdminChannel, realtime.Event{
			Type:    realtime.EventCaseClosed,
			Payload: closed,
		})
		return nil
	})
	if err != nil {
		return Case{}, err
	}
	return closed, nil
}

// Reopen moves a closed case back to new and clears the assignment. A new
// inbound message from the customer then attaches to the reopened case.
func (s *Service) Reopen(ctx context.Context, caseID int64) (Case, error) {
	var reopened Case
	err := s.WithCaseLock(caseID, func() error {
		current, err := s.Get(ctx, caseID)
		if err != nil {
			return err
		}
		if !CanTransition(current.Status, StatusNew) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, StatusNew)
		}
		row, err := s.queries.ReopenCase(ctx, caseID)
		if err != nil {
			if db.IsUniqueViolation(err) {
				// The customer already has a newer open case.
				return fmt.Errorf("%w: customer already has an open case", ErrInvalidTransition)
			}
			return fmt.Errorf("reopen case: %w", err)
		}
		reopened = toCase(row)
		s.hub.Publish(realtime.AdminChannel, realtime.Event{
			Type:    realtime.EventCaseReopened,
			Payload: reopened,
		})
		return nil
	})
	if err != nil {
		return Case{}, err
	}
	return reopened, nil
}

// List returns cases newest first, optionally filtered by channel or status.
func (s *Service) List(ctx context.Context, filter Filter) ([]Case, error) {
	var (
		rows []sqlc.Case
		err  error
	)
	switch {
	case filter.ChannelID != "" && filter.Status != "":
		rows, err = s.queries.ListCasesByChannelAndStatus(ctx, sqlc.ListCasesByChannelAndStatusParams{
			ChannelID: filter.ChannelID,
			Status:    string(filter.Status),
		})
	case filter.ChannelID != "":
		rows, err = s.queries.ListCasesByChannel(ctx, filter.ChannelID)
	case filter.Status != "":
		rows, err = s.queries.ListCasesByStatus(ctx, string(filter.Status))
	default:
		rows, err = s.queries.ListCases(ctx)
	}
	if err != nil {
		return nil, err
	}
	items := make([]Case, 0, len(rows))
	for _, row := range rows {
		items = append(items, toCase(row))
	}
	return items, nil
}

func toCase(row sqlc.Case) Case {
	return Case{
		ID:                 row.ID,
		CustomerExternalID: row.CustomerExternalID,
		ChannelID:          row.ChannelID,
		Status:             Status(row.Status),
		AdminName:          db.TextToString(row.AdminName),
		Note:               db.TextToString(row.Note),
		CreatedAt:          db.TimeFromPg(row.CreatedAt),
		UpdatedAt:          db.TimeFromPg(row.UpdatedAt),
	}
}
