package ws

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/tithmeassambo-coder/QCM/internal/service"
	"go.uber.org/zap"
)

// Hub tracks live attempts. Each websocket connection owns exactly one attempt.
type Hub struct {
	svc      service.PlayService
	log      *zap.Logger
	upgrader websocket.Upgrader

	mu       sync.RWMutex
	attempts map[string]*Client

	register   chan *Client
	unregister chan *Client
	quit       chan struct{}
	stopOnce   sync.Once
}

// NewHub accepts websocket upgrades from allowedOrigins; an empty list or "*"
// allows any origin.
func NewHub(svc service.PlayService, log *zap.Logger, allowedOrigins ...string) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Hub{
		svc:        svc,
		log:        log,
		attempts:   make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: originChecker(allowedOrigins)}
	go h.run()
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	if len(set) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.attempts[c.attemptID] = c
			h.mu.Unlock()

			h.log.Info("ws attempt registered",
				zap.String("attempt_id", c.attemptID),
				zap.String("subject", c.session.Subject()),
				zap.Int("part", c.session.PartIndex()),
			)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.attempts[c.attemptID]; ok {
				delete(h.attempts, c.attemptID)
				c.closeSend()
			}
			h.mu.Unlock()

			h.log.Info("ws attempt unregistered", zap.String("attempt_id", c.attemptID))

		case <-h.quit:
			h.mu.Lock()
			for id, c := range h.attempts {
				c.closeSend()
				delete(h.attempts, id)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) add(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.quit:
		return false
	}
}

func (h *Hub) remove(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.quit:
	}
}

// Attempts reports the number of connected attempts.
func (h *Hub) Attempts() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.attempts)
}

// Shutdown closes every attempt's send queue; their write pumps then send a
// close frame and exit.
func (h *Hub) Shutdown() {
	h.stopOnce.Do(func() { close(h.quit) })
}
