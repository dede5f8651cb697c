// Package realtime provides the in-process pub/sub hub that fans events out
// to connected admin console sessions.
package realtime

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// AdminChannel is the broadcast channel every connected admin console
// subscribes to; it carries case lifecycle events, not message bodies.
const AdminChannel = "admin"

// CaseChannel returns the hub channel key carrying messages for one case.
func CaseChannel(caseID int64) string {
	return "case:" + strconv.FormatInt(caseID, 10)
}

// EventType identifies what a hub event describes.
type EventType string

const (
	EventMessage        EventType = "message"
	EventCaseCreated    EventType = "case.created"
	EventCaseAssigned   EventType = "case.assigned"
	EventCaseClosed     EventType = "case.closed"
	EventCaseReopened   EventType = "case.reopened"
	EventDeliveryFailed EventType = "message.delivery_failed"
)

// Event is a single realtime notification delivered to subscribers.
type Event struct {
	Type    EventType `json:"type"`
	Channel string    `json:"channel"`
	Payload any       `json:"payload,omitempty"`
}

// Hub routes published events to all current subscribers of a channel key.
// Delivery is at-most-once per subscriber: slow receivers are dropped rather
// than allowed to block a publish. Durability lives in the conversation log,
// never here.
type Hub struct {
	mu      sync.RWMutex
	streams map[string]map[string]chan Event
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		streams: map[string]map[string]chan Event{},
	}
}

// Subscribe registers a new stream for the given channel key and returns a
// subscriber ID, a read-only event channel, and a cancel function.
func (h *Hub) Subscribe(channelKey string) (string, <-chan Event, func()) {
	subID := uuid.NewString()
	ch := make(chan Event, 32)

	h.mu.Lock()
	subs, ok := h.streams[channelKey]
	if !ok {
		subs = map[string]chan Event{}
		h.streams[channelKey] = subs
	}
	subs[subID] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		subs := h.streams[channelKey]
		if subs != nil {
			if current, ok := subs[subID]; ok {
				delete(subs, subID)
				close(current)
			}
			if len(subs) == 0 {
				delete(h.streams, channelKey)
			}
		}
		h.mu.Unlock()
	}

	return subID, ch, cancel
}

// Publish delivers an event to all subscribers of the given channel key.
// Slow receivers are silently dropped.
func (h *Hub) Publish(channelKey string, event Event) {
	event.Channel = channelKey
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.streams[channelKey] {
		select {
		case ch <- event:
		default:
			// Drop if receiver is slow.
		}
	}
}

// SubscriberCount reports how many streams are subscribed to a channel key.
func (h *Hub) SubscriberCount(channelKey string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.streams[channelKey])
}
