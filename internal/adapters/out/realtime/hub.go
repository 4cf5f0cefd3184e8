// Package realtime keeps the in-process sessions of connected clients and
// fans published events out to the rooms they joined.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultSessionBuffer is the number of events a slow session may lag behind
// before new events are dropped for it.
const DefaultSessionBuffer = 32

var ErrSessionClosed = errors.New("session is closed")

// Event is one encoded message ready to be written to a client.
type Event struct {
	Name string
	Data json.RawMessage
}

// Hub implements ports.RealtimeChannel. Sessions join rooms named
// "role:<role>" or "user:<id>"; Publish reaches every session in the room.
type Hub struct {
	mu       sync.RWMutex
	rooms    map[string]map[*Session]struct{}
	buffer   int
	sessions prometheus.Gauge
	dropped  prometheus.Counter
	logger   *slog.Logger
}

// NewHub creates an empty hub. A nil reg leaves its collectors unregistered.
func NewHub(buffer int, reg prometheus.Registerer, logger *slog.Logger) *Hub {
	if buffer <= 0 {
		buffer = DefaultSessionBuffer
	}
	h := &Hub{
		rooms:  make(map[string]map[*Session]struct{}),
		buffer: buffer,
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orderflow_realtime_sessions",
			Help: "Connected real-time sessions",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orderflow_realtime_events_dropped_total",
			Help: "Events dropped because a session buffer was full",
		}),
		logger: logger.With("component", "RealtimeHub"),
	}
	if reg != nil {
		reg.MustRegister(h.sessions, h.dropped)
	}
	return h
}

// Connect opens a session already joined to rooms.
func (h *Hub) Connect(rooms ...string) *Session {
	s := &Session{
		id:     kernel.NewUUID(),
		hub:    h,
		events: make(chan Event, h.buffer),
		rooms:  make(map[string]struct{}),
	}
	h.sessions.Inc()
	for _, room := range rooms {
		_ = s.Join(room)
	}
	return s
}

// Publish encodes payload once and offers it to every session in room without
// blocking. A room without sessions is not an error.
func (h *Hub) Publish(ctx context.Context, room, event string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	room = strings.TrimSpace(room)
	if room == "" {
		return errs.NewValueIsRequiredError("room")
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("payload", err)
	}
	msg := Event{Name: event, Data: data}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.rooms[room] {
		select {
		case s.events <- msg:
		default:
			h.dropped.Inc()
			h.logger.WarnContext(ctx, "session buffer full, event dropped",
				"session", s.id.String(), "room", room, "event", event)
		}
	}
	return nil
}

// RoomSize reports how many sessions are joined to room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

func (h *Hub) join(s *Session, room string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Session]struct{})
		h.rooms[room] = members
	}
	members[s] = struct{}{}
	s.rooms[room] = struct{}{}
	return nil
}

func (h *Hub) leave(s *Session, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(s, room)
}

func (h *Hub) leaveLocked(s *Session, room string) {
	delete(s.rooms, room)
	members := h.rooms[room]
	delete(members, s)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

func (h *Hub) disconnect(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if s.closed {
		return
	}
	for room := range s.rooms {
		h.leaveLocked(s, room)
	}
	s.closed = true
	close(s.events)
	h.sessions.Dec()
}

// Session is one connected client. Its fields are guarded by the hub lock.
type Session struct {
	id     kernel.UUID
	hub    *Hub
	events chan Event
	rooms  map[string]struct{}
	closed bool
}

func (s *Session) ID() kernel.UUID {
	return s.id
}

// Events yields published events until the session is closed.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Join adds the session to room. Joining twice is a no-op.
func (s *Session) Join(room string) error {
	room = strings.TrimSpace(room)
	if room == "" {
		return errs.NewValueIsRequiredError("room")
	}
	return s.hub.join(s, room)
}

func (s *Session) Leave(room string) {
	s.hub.leave(s, room)
}

// Close leaves every room and closes the event channel. Safe to call twice.
func (s *Session) Close() {
	s.hub.disconnect(s)
}
