package chat

import (
	"sync"
)

// Sender is the write side of one chat connection. Satisfied by
// *websocket.Conn; tests substitute fakes.
type Sender interface {
	WriteJSON(v interface{}) error
}

// room holds the open connections of one forum behind its own lock, so
// traffic in one forum never contends with another.
type room struct {
	mu    sync.Mutex
	conns map[Sender]bool
}

// Hub is the process-wide registry of open chat connections, keyed by
// forum id. It starts empty and is rebuilt empty on every restart;
// nothing here is persisted.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*room
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]*room)}
}

// Register adds a connection to the forum's room, creating the room if
// needed. The insert happens while the registry lock is still held, so a
// concurrent Unregister can never remove the room between the lookup and
// the add and strand the connection in an unreachable room.
func (h *Hub) Register(forumID string, conn Sender) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rooms[forumID]
	if !ok {
		r = &room{conns: make(map[Sender]bool)}
		h.rooms[forumID] = r
	}
	r.mu.Lock()
	r.conns[conn] = true
	r.mu.Unlock()
}

// Unregister drops a connection; an empty room is removed from the
// registry so dead forums don't accumulate.
func (h *Hub) Unregister(forumID string, conn Sender) {
	h.mu.Lock()
	r, ok := h.rooms[forumID]
	if !ok {
		h.mu.Unlock()
		return
	}
	r.mu.Lock()
	delete(r.conns, conn)
	empty := len(r.conns) == 0
	r.mu.Unlock()
	if empty {
		delete(h.rooms, forumID)
	}
	h.mu.Unlock()
}

// Count reports how many connections a forum currently has.
func (h *Hub) Count(forumID string) int {
	h.mu.RLock()
	r, ok := h.rooms[forumID]
	h.mu.RUnlock()
	if !ok {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}

// Broadcast writes v to every connection registered under the forum.
// Sends are sequential under the room lock, which is what keeps message
// order identical for all recipients. A failed send drops only that
// connection; nothing is reported back to the sender.
func (h *Hub) Broadcast(forumID string, v interface{}) {
	h.mu.RLock()
	r, ok := h.rooms[forumID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for conn := range r.conns {
		if err := conn.WriteJSON(v); err != nil {
			delete(r.conns, conn)
		}
	}
}
