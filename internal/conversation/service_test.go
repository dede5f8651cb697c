package conversation_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/kingauto/chatdesk/internal/cases"
	"github.com/kingauto/chatdesk/internal/conversation"
	"github.com/kingauto/chatdesk/internal/db/sqlc"
	"github.com/kingauto/chatdesk/internal/realtime"
)

// flakyDB answers case lookups with a fixed open case and fails every
// message insert, standing in for a database that dies mid-request. Query
// arguments are captured so tests can inspect what would hit Postgres.
type flakyDB struct {
	insertErr error
	queryArgs []interface{}
}

type staticCaseRow struct{}

func (staticCaseRow) Scan(dest ...any) error {
	for _, d := range dest {
		switch v := d.(type) {
		case *int64:
			*v = 1
		case *string:
			*v = "new"
		case *pgtype.Text:
			*v = pgtype.Text{}
		case *pgtype.Timestamptz:
			*v = pgtype.Timestamptz{}
		}
	}
	return nil
}

type errRow struct{ err error }

func (r errRow) Scan(dest ...any) error { return r.err }

func (f *flakyDB) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("not supported")
}

func (f *flakyDB) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	f.queryArgs = args
	return nil, errors.New("not supported")
}

func (f *flakyDB) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	if strings.Contains(sql, "INSERT INTO messages") {
		return errRow{err: f.insertErr}
	}
	return staticCaseRow{}
}

func TestAppendPersistFailurePublishesNothing(t *testing.T) {
	queries := sqlc.New(&flakyDB{insertErr: errors.New("disk full")})
	logger := slog.Default()
	hub := realtime.NewHub()
	registry := cases.NewService(logger, queries, hub)
	log := conversation.NewService(logger, queries, registry, hub, nil)

	_, stream, cancel := hub.Subscribe(realtime.CaseChannel(1))
	defer cancel()

	_, err := log.Append(context.Background(), conversation.AppendRequest{
		CaseID: 1,
		Sender: conversation.SenderCustomer,
		Body:   "hello",
	})
	if err == nil {
		t.Fatal("expected append to fail when the insert fails")
	}

	select {
	case event := <-stream:
		t.Fatalf("no event may be published for an unpersisted message, got %+v", event)
	default:
	}
}

func TestHistoryClampsOversizedLimit(t *testing.T) {
	fake := &flakyDB{insertErr: errors.New("unused")}
	queries := sqlc.New(fake)
	logger := slog.Default()
	hub := realtime.NewHub()
	registry := cases.NewService(logger, queries, hub)
	log := conversation.NewService(logger, queries, registry, hub, nil)

	// A limit past int32 range must be clamped, not truncated into a
	// negative LIMIT.
	_, _ = log.History(context.Background(), 1, 1<<40)
	if len(fake.queryArgs) != 2 {
		t.Fatalf("expected case id and limit args, got %v", fake.queryArgs)
	}
	limit, ok := fake.queryArgs[1].(int32)
	if !ok {
		t.Fatalf("limit arg is %T, want int32", fake.queryArgs[1])
	}
	if limit <= 0 || limit > 1000 {
		t.Fatalf("limit %d outside the clamped range", limit)
	}

	_, _ = log.Recent(context.Background(), 1, 1<<40)
	limit, ok = fake.queryArgs[1].(int32)
	if !ok {
		t.Fatalf("limit arg is %T, want int32", fake.queryArgs[1])
	}
	if limit <= 0 || limit > 1000 {
		t.Fatalf("recent limit %d outside the clamped range", limit)
	}
}
