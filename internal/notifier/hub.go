package notifier

import (
	"sync"

	"github.com/google/uuid"

	"github.com/woongiiit/DailyQuest-Backend/pkg/logger"
)

// Event is one frame pushed to a live client.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

const (
	EventEncouragement = "receive_encouragement"
	EventQuestUpdate   = "quest_updated"
)

// Session is one live client connection. Send must not block; it
// reports whether the event was accepted.
type Session interface {
	Send(event Event) bool
}

// Hub is the connection registry events fan out through. It is owned by
// whoever constructs it and passed to the usecases explicitly; there is
// no package-level instance. It holds no state beyond the per-connection
// identity binding, so missed events are only recoverable by reading
// the stores.
type Hub struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]map[string]Session
	logger   logger.Logger
}

func NewHub(logger logger.Logger) *Hub {
	return &Hub{
		sessions: make(map[uuid.UUID]map[string]Session),
		logger:   logger,
	}
}

// Register binds a connection to its owning user. Registering the same
// connection id again replaces the previous binding.
func (h *Hub) Register(connID string, userID uuid.UUID, s Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.sessions[userID]
	if !ok {
		conns = make(map[string]Session)
		h.sessions[userID] = conns
	}
	conns[connID] = s
}

func (h *Hub) Unregister(connID string, userID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.sessions[userID]
	if !ok {
		return
	}
	delete(conns, connID)
	if len(conns) == 0 {
		delete(h.sessions, userID)
	}
}

// ActiveSessions reports how many connections a user currently has.
func (h *Hub) ActiveSessions(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[userID])
}

func (h *Hub) NotifyEncouragement(toUserID uuid.UUID, payload any) {
	h.notify(toUserID, Event{Type: EventEncouragement, Payload: payload})
}

func (h *Hub) NotifyQuestUpdate(toUserID uuid.UUID, payload any) {
	h.notify(toUserID, Event{Type: EventQuestUpdate, Payload: payload})
}

// notify fans the event out to every session of the target user.
// Fire-and-forget: a slow or absent session drops the event, nothing is
// queued or retried.
func (h *Hub) notify(toUserID uuid.UUID, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for connID, s := range h.sessions[toUserID] {
		if !s.Send(event) {
			h.logger.Warn("dropped event for slow session", "user_id", toUserID, "conn_id", connID, "event", event.Type)
		}
	}
}
