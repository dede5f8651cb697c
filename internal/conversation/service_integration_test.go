package conversation_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kingauto/chatdesk/internal/cases"
	"github.com/kingauto/chatdesk/internal/conversation"
	"github.com/kingauto/chatdesk/internal/db/sqlc"
	"github.com/kingauto/chatdesk/internal/realtime"
)

// recordingSender captures outbound pushes and fails on demand.
type recordingSender struct {
	fail bool
	sent []string
}

func (s *recordingSender) Send(ctx context.Context, channelID, customerExternalID, body string) error {
	if s.fail {
		return errors.New("push rejected")
	}
	s.sent = append(s.sent, body)
	return nil
}

func setupConversationIntegrationTest(t *testing.T, sender conversation.ReplySender) (*cases.Service, *conversation.Service, *realtime.Hub, func()) {
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
	log := conversation.NewService(logger, queries, registry, hub, sender)

	return registry, log, hub, func() { pool.Close() }
}

func TestIntegrationInboundAssignReplyFlow(t *testing.T) {
	sender := &recordingSender{}
	registry, log, hub, cleanup := setupConversationIntegrationTest(t, sender)
	defer cleanup()

	ctx := context.Background()
	customer := "U" + uuid.NewString()
	channelID := "oa-" + uuid.NewString()

	first, err := registry.ResolveOrCreate(ctx, customer, channelID)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	_, stream, cancel := hub.Subscribe(realtime.CaseChannel(first.ID))
	defer cancel()

	if _, err := log.Append(ctx, conversation.AppendRequest{
		CaseID: first.ID,
		Sender: conversation.SenderCustomer,
		Body:   "hello",
	}); err != nil {
		t.Fatalf("append inbound failed: %v", err)
	}

	if _, err := registry.Assign(ctx, first.ID, "Alice"); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	// The follow-up attaches to the same case, not a new one.
	again, err := registry.ResolveOrCreate(ctx, customer, channelID)
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if again.ID != first.ID {
		t.Fatalf("follow-up resolved to case %d, expected %d", again.ID, first.ID)
	}
	if _, err := log.Append(ctx, conversation.AppendRequest{
		CaseID: again.ID,
		Sender: conversation.SenderCustomer,
		Body:   "are you there?",
	}); err != nil {
		t.Fatalf("append follow-up failed: %v", err)
	}

	reply, err := log.Append(ctx, conversation.AppendRequest{
		CaseID: first.ID,
		Sender: conversation.SenderAdmin,
		Body:   "yes, checking now",
	})
	if err != nil {
		t.Fatalf("append reply failed: %v", err)
	}
	if reply.DeliveryStatus != conversation.DeliverySent {
		t.Fatalf("expected reply delivery sent, got %s", reply.DeliveryStatus)
	}
	if len(sender.sent) != 1 || sender.sent[0] != "yes, checking now" {
		t.Fatalf("expected one pushed reply, got %v", sender.sent)
	}

	wantBodies := []string{"hello", "are you there?", "yes, checking now"}
	history, err := log.History(ctx, first.ID, 0)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != len(wantBodies) {
		t.Fatalf("expected %d messages, got %d", len(wantBodies), len(history))
	}
	for i, want := range wantBodies {
		if history[i].Body != want {
			t.Fatalf("history[%d]: expected %q, got %q", i, want, history[i].Body)
		}
		if i > 0 && history[i].ID <= history[i-1].ID {
			t.Fatalf("history out of order at %d: %d then %d", i, history[i-1].ID, history[i].ID)
		}
	}

	// Reading again with no intervening append yields the identical slice.
	repeat, err := log.History(ctx, first.ID, 0)
	if err != nil {
		t.Fatalf("repeat history failed: %v", err)
	}
	if len(repeat) != len(history) {
		t.Fatalf("repeat history changed: %d vs %d messages", len(repeat), len(history))
	}
	for i := range history {
		if repeat[i].ID != history[i].ID {
			t.Fatalf("repeat history diverged at %d", i)
		}
	}

	// The case stream delivered each message once, in persistence order.
	for i, want := range wantBodies {
		event := <-stream
		if event.Type != realtime.EventMessage {
			t.Fatalf("stream event %d: expected message event, got %s", i, event.Type)
		}
		msg, ok := event.Payload.(conversation.Message)
		if !ok {
			t.Fatalf("stream event %d: unexpected payload %T", i, event.Payload)
		}
		if msg.Body != want {
			t.Fatalf("stream event %d: expected body %q, got %q", i, want, msg.Body)
		}
	}

	recent, err := log.Recent(ctx, first.ID, 2)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Body != "yes, checking now" {
		t.Fatalf("expected latest two messages newest first, got %+v", recent)
	}
}

func TestIntegrationReplyDeliveryFailure(t *testing.T) {
	sender := &recordingSender{fail: true}
	registry, log, hub, cleanup := setupConversationIntegrationTest(t, sender)
	defer cleanup()

	ctx := context.Background()
	item, err := registry.ResolveOrCreate(ctx, "U"+uuid.NewString(), "oa-"+uuid.NewString())
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	_, adminEvents, cancel := hub.Subscribe(realtime.AdminChannel)
	defer cancel()

	reply, err := log.Append(ctx, conversation.AppendRequest{
		CaseID: item.ID,
		Sender: conversation.SenderAdmin,
		Body:   "this will not arrive",
	})
	if err != nil {
		t.Fatalf("append reply failed: %v", err)
	}
	if reply.DeliveryStatus != conversation.DeliveryFailed {
		t.Fatalf("expected delivery failed, got %s", reply.DeliveryStatus)
	}

	// The message is still in the log.
	history, err := log.History(ctx, item.ID, 0)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 1 || history[0].DeliveryStatus != conversation.DeliveryFailed {
		t.Fatalf("expected one failed message in history, got %+v", history)
	}

	event := <-adminEvents
	if event.Type != realtime.EventDeliveryFailed {
		t.Fatalf("expected delivery failed event, got %s", event.Type)
	}
}

func TestIntegrationAppendUnknownCase(t *testing.T) {
	_, log, _, cleanup := setupConversationIntegrationTest(t, &recordingSender{})
	defer cleanup()

	ctx := context.Background()
	_, err := log.Append(ctx, conversation.AppendRequest{
		CaseID: int64(1) << 60,
		Sender: conversation.SenderCustomer,
		Body:   "orphan",
	})
	if !errors.Is(err, conversation.ErrUnknownCase) {
		t.Fatalf("expected ErrUnknownCase, got %v", err)
	}
	if _, err := log.History(ctx, int64(1)<<60, 0); !errors.Is(err, conversation.ErrUnknownCase) {
		t.Fatalf("expected ErrUnknownCase from history, got %v", err)
	}
}

func TestIntegrationAppendValidation(t *testing.T) {
	registry, log, _, cleanup := setupConversationIntegrationTest(t, &recordingSender{})
	defer cleanup()

	ctx := context.Background()
	item, err := registry.ResolveOrCreate(ctx, "U"+uuid.NewString(), "oa-"+uuid.NewString())
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if _, err := log.Append(ctx, conversation.AppendRequest{
		CaseID: item.ID,
		Sender: conversation.SenderCustomer,
		Body:   "   ",
	}); err == nil {
		t.Fatal("expected blank body to be rejected")
	}
	if _, err := log.Append(ctx, conversation.AppendRequest{
		CaseID: item.ID,
		Sender: conversation.Sender("bot"),
		Body:   "hi",
	}); err == nil {
		t.Fatal("expected unknown sender to be rejected")
	}

	history, err := log.History(ctx, item.ID, 0)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("rejected appends must not persist, got %d messages", len(history))
	}
}

func TestIntegrationAdminChannelIsolation(t *testing.T) {
	sender := &recordingSender{}
	registry, log, hub, cleanup := setupConversationIntegrationTest(t, sender)
	defer cleanup()

	ctx := context.Background()
	first, err := registry.ResolveOrCreate(ctx, "U"+uuid.NewString(), "oa-"+uuid.NewString())
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	second, err := registry.ResolveOrCreate(ctx, "U"+uuid.NewString(), "oa-"+uuid.NewString())
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	_, firstStream, cancelFirst := hub.Subscribe(realtime.CaseChannel(first.ID))
	defer cancelFirst()

	for i := 0; i < 3; i++ {
		if _, err := log.Append(ctx, conversation.AppendRequest{
			CaseID: second.ID,
			Sender: conversation.SenderCustomer,
			Body:   fmt.Sprintf("message %d", i),
		}); err != nil {
			t.Fatalf("append to second case failed: %v", err)
		}
	}

	select {
	case event := <-firstStream:
		t.Fatalf("first case stream received foreign event: %+v", event)
	default:
	}
}
