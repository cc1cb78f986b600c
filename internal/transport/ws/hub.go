package ws

import (
	"sync"
)

type Conn interface {
	Send(msg Message) error
	Close() error
}

// Hub tracks which connections listen to which room channel. Membership in
// the registry is the authority; the hub only fans events out.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[Conn]struct{} // room code -> set of connections
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[Conn]struct{})}
}

func (h *Hub) Join(code string, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rs, ok := h.rooms[code]
	if !ok {
		rs = make(map[Conn]struct{})
		h.rooms[code] = rs
	}
	rs[c] = struct{}{}
}

func (h *Hub) Leave(code string, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if rs, ok := h.rooms[code]; ok {
		delete(rs, c)
		if len(rs) == 0 {
			delete(h.rooms, code)
		}
	}
}

func (h *Hub) Broadcast(code string, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if rs, ok := h.rooms[code]; ok {
		for c := range rs {
			_ = c.Send(msg) // best-effort
		}
	}
}

// BroadcastExcept sends to every connection in the channel except one,
// used for join/leave deltas where the actor gets a full snapshot instead.
func (h *Hub) BroadcastExcept(code string, msg Message, except Conn) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if rs, ok := h.rooms[code]; ok {
		for c := range rs {
			if c == except {
				continue
			}
			_ = c.Send(msg)
		}
	}
}
