package sensor

import (
	"sync"
)

// Hub keeps the stream of every connected user.
type Hub struct {
	mu      sync.Mutex
	streams map[string]*Stream
}

func NewHub() *Hub {
	return &Hub{
		streams: map[string]*Stream{},
	}
}

// Stream returns the stream of userID, creating it on first use.
func (h *Hub) Stream(userID string) *Stream {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.streams[userID]
	if !ok {
		s = NewStream()
		h.streams[userID] = s
	}
	return s
}

// Remove drops the stream of userID. Its subscribers stop receiving readings.
func (h *Hub) Remove(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.streams, userID)
}

// Len returns the number of streams.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.streams)
}
