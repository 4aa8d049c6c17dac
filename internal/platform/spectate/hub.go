// Package spectate streams game snapshots to WebSocket spectators.
// The game loop publishes; the hub fans each frame out to every connected
// client without ever blocking the publisher.
package spectate

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// Frame is one message on the wire. Session names the player that
// produced it, so spectators can follow one run when several share a hub.
type Frame struct {
	Session string `json:"session"`
	Game    string `json:"game"`
	Seq     uint64 `json:"seq"`
	Score   int    `json:"score"`
	State   any    `json:"state"`
}

// Hub maintains the set of active spectators and broadcasts frames to them.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}

	mu     sync.Mutex
	latest []byte
	last   Frame
	seq    uint64

	logger *log.Logger
}

// NewHub creates a hub. Call Run to start it.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run handles registration and broadcasts until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			if h.latest != nil {
				c.send <- h.latest
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("Spectator connected", "remote", c.remote, "spectators", n)
		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.logger.Info("Spectator disconnected", "remote", c.remote)
			}
			h.mu.Unlock()
		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Too slow to keep up.
					close(c.send)
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish encodes a snapshot from one session and queues it for every
// spectator. A frame is dropped when the hub is behind.
func (h *Hub) Publish(session, game string, score int, snapshot any) error {
	h.mu.Lock()
	h.seq++
	frame := Frame{Session: session, Game: game, Seq: h.seq, Score: score, State: snapshot}
	h.mu.Unlock()

	payload, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("spectate: encode frame: %w", err)
	}

	h.mu.Lock()
	h.latest = payload
	h.last = frame
	h.mu.Unlock()

	select {
	case h.broadcast <- payload:
	default:
	}
	return nil
}

// Latest returns the most recently published frame.
func (h *Hub) Latest() (Frame, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last, h.latest != nil
}

// Spectators returns the number of connected clients.
func (h *Hub) Spectators() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
