package cases_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kingauto/chatdesk/internal/cases"
	"github.com/kingauto/chatdesk/internal/db/sqlc"
	"github.com/kingauto/chatdesk/internal/realtime"
)

func setupCasesIntegrationTest(t *testing.T) (*cases.Service, *realtime.Hub, func()) {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("skip integration test: TEST_POSTGRES_DSN is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Skipf("skip integration test: cannot connect to database: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("skip integration test: database ping failed: %v", err)
	}

	queries := sqlc.New(pool)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	hub := realtime.NewHub()
	registry := cases.NewService(logger, queries, hub)

	return registry, hub, func() { pool.Close() }
}

func uniqueCustomer() string {
	return "U" + uuid.NewString()
}

func TestIntegrationResolveOrCreateConcurrent(t *testing.T) {
	registry, _, cleanup := setupCasesIntegrationTest(t)
	defer cleanup()

	ctx := context.Background()
	customer := uniqueCustomer()
	channelID := "oa-" + uuid.NewString()

	const workers = 8
	ids := make([]int64, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			item, err := registry.ResolveOrCreate(ctx, customer, channelID)
			ids[i], errs[i] = item.ID, err
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: resolve failed: %v", i, errs[i])
		}
		if ids[i] != ids[0] {
			t.Fatalf("worker %d resolved case %d, worker 0 resolved %d", i, ids[i], ids[0])
		}
	}

	item, err := registry.Get(ctx, ids[0])
	if err != nil {
		t.Fatalf("get case failed: %v", err)
	}
	if item.Status != cases.StatusNew {
		t.Fatalf("expected status new, got %s", item.Status)
	}
}

func TestIntegrationCaseLifecycle(t *testing.T) {
	registry, hub, cleanup := setupCasesIntegrationTest(t)
	defer cleanup()

	ctx := context.Background()
	customer := uniqueCustomer()
	channelID := "oa-" + uuid.NewString()

	_, events, cancel := hub.Subscribe(realtime.AdminChannel)
	defer cancel()

	created, err := registry.ResolveOrCreate(ctx, customer, channelID)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	assigned, err := registry.Assign(ctx, created.ID, "Alice")
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if assigned.Status != cases.StatusAssigned || assigned.AdminName != "Alice" {
		t.Fatalf("unexpected case after assign: %+v", assigned)
	}

	// Reassignment is allowed; last writer wins.
	reassigned, err := registry.Assign(ctx, created.ID, "Bob")
	if err != nil {
		t.Fatalf("reassign failed: %v", err)
	}
	if reassigned.AdminName != "Bob" {
		t.Fatalf("expected reassignment to Bob, got %q", reassigned.AdminName)
	}

	noted, err := registry.SetNote(ctx, created.ID, "vip customer")
	if err != nil {
		t.Fatalf("set note failed: %v", err)
	}
	if noted.Note != "vip customer" {
		t.Fatalf("expected note to stick, got %q", noted.Note)
	}

	closed, err := registry.Close(ctx, created.ID)
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if closed.Status != cases.StatusClosed {
		t.Fatalf("expected status closed, got %s", closed.Status)
	}

	if _, err := registry.Assign(ctx, created.ID, "Carol"); !errors.Is(err, cases.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition assigning a closed case, got %v", err)
	}

	// A new inbound message after closure opens a fresh case.
	next, err := registry.ResolveOrCreate(ctx, customer, channelID)
	if err != nil {
		t.Fatalf("resolve after close failed: %v", err)
	}
	if next.ID == created.ID {
		t.Fatalf("expected a new case after closure, got the old one (%d)", next.ID)
	}

	// Reopening the old case now conflicts with the fresh open case.
	if _, err := registry.Reopen(ctx, created.ID); !errors.Is(err, cases.ErrInvalidTransition) {
		t.Fatalf("expected reopen conflict with existing open case, got %v", err)
	}

	if _, err := registry.Close(ctx, next.ID); err != nil {
		t.Fatalf("close fresh case failed: %v", err)
	}
	reopened, err := registry.Reopen(ctx, created.ID)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if reopened.Status != cases.StatusNew || reopened.AdminName != "" {
		t.Fatalf("expected reopened case new and unassigned, got %+v", reopened)
	}

	wantTypes := []realtime.EventType{
		realtime.EventCaseCreated,
		realtime.EventCaseAssigned,
		realtime.EventCaseAssigned,
		realtime.EventCaseClosed,
		realtime.EventCaseCreated,
		realtime.EventCaseClosed,
		realtime.EventCaseReopened,
	}
	for i, want := range wantTypes {
		event := <-events
		if event.Type != want {
			t.Fatalf("admin event %d: expected %s, got %s", i, want, event.Type)
		}
	}
}

func TestIntegrationConcurrentReassignEventOrder(t *testing.T) {
	registry, hub, cleanup := setupCasesIntegrationTest(t)
	defer cleanup()

	ctx := context.Background()
	created, err := registry.ResolveOrCreate(ctx, uniqueCustomer(), "oa-"+uuid.NewString())
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	_, events, cancel := hub.Subscribe(realtime.AdminChannel)
	defer cancel()

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := registry.Assign(ctx, created.ID, fmt.Sprintf("admin-%d", i)); err != nil {
				t.Errorf("worker %d: assign failed: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	final, err := registry.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get case failed: %v", err)
	}

	// The event for the update that won in the database must be the last
	// one delivered; a subscriber replaying the stream ends on the truth.
	var last realtime.Event
	for i := 0; i < workers; i++ {
		event := <-events
		if event.Type != realtime.EventCaseAssigned {
			t.Fatalf("event %d: expected %s, got %s", i, realtime.EventCaseAssigned, event.Type)
		}
		last = event
	}
	payload, ok := last.Payload.(cases.Case)
	if !ok {
		t.Fatalf("unexpected payload %T", last.Payload)
	}
	if payload.AdminName != final.AdminName {
		t.Fatalf("last event names %q, database has %q", payload.AdminName, final.AdminName)
	}
}

func TestIntegrationOperationsOnUnknownCase(t *testing.T) {
	registry, _, cleanup := setupCasesIntegrationTest(t)
	defer cleanup()

	ctx := context.Background()
	const missing = int64(1) << 60

	if _, err := registry.Get(ctx, missing); !errors.Is(err, cases.ErrCaseNotFound) {
		t.Fatalf("expected ErrCaseNotFound from Get, got %v", err)
	}
	if _, err := registry.Assign(ctx, missing, "Alice"); !errors.Is(err, cases.ErrCaseNotFound) {
		t.Fatalf("expected ErrCaseNotFound from Assign, got %v", err)
	}
	if _, err := registry.Close(ctx, missing); !errors.Is(err, cases.ErrCaseNotFound) {
		t.Fatalf("expected ErrCaseNotFound from Close, got %v", err)
	}
}

func TestIntegrationListFilters(t *testing.T) {
	registry, _, cleanup := setupCasesIntegrationTest(t)
	defer cleanup()

	ctx := context.Background()
	channelID := "oa-" + uuid.NewString()

	var created []int64
	for i := 0; i < 3; i++ {
		item, err := registry.ResolveOrCreate(ctx, fmt.Sprintf("U%s-%d", uuid.NewString(), i), channelID)
		if err != nil {
			t.Fatalf("resolve %d failed: %v", i, err)
		}
		created = append(created, item.ID)
	}
	if _, err := registry.Assign(ctx, created[0], "Alice"); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	byChannel, err := registry.List(ctx, cases.Filter{ChannelID: channelID})
	if err != nil {
		t.Fatalf("list by channel failed: %v", err)
	}
	if len(byChannel) != 3 {
		t.Fatalf("expected 3 cases on channel, got %d", len(byChannel))
	}

	assigned, err := registry.List(ctx, cases.Filter{ChannelID: channelID, Status: cases.StatusAssigned})
	if err != nil {
		t.Fatalf("list assigned failed: %v", err)
	}
	if len(assigned) != 1 || assigned[0].ID != created[0] {
		t.Fatalf("expected exactly the assigned case, got %+v", assigned)
	}
}
