package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/anjiri1684/skill_swap/logger"
	"github.com/google/uuid"
)

const busPublishTimeout = 2 * time.Second

// Hub tracks live connections per user and delivers events only to the
// users they are addressed to.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[*Client]struct{}

	bus Bus
	log *logger.Logger

	sendBuffer   int
	pingInterval time.Duration
	writeTimeout time.Duration
}

type Option func(*Hub)

func WithSendBuffer(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.sendBuffer = n
		}
	}
}

func WithPingInterval(d time.Duration) Option {
	return func(h *Hub) {
		if d > 0 {
			h.pingInterval = d
		}
	}
}

func NewHub(log *logger.Logger, opts ...Option) *Hub {
	if log == nil {
		log = logger.L()
	}
	h := &Hub{
		clients:      map[uuid.UUID]map[*Client]struct{}{},
		log:          log.With("component", "ws_hub"),
		sendBuffer:   64,
		pingInterval: 25 * time.Second,
		writeTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// UseBus routes Publish through b and starts delivering what b forwards.
func (h *Hub) UseBus(ctx context.Context, b Bus) error {
	if err := b.StartForwarder(ctx, h.Deliver); err != nil {
		return err
	}
	h.mu.Lock()
	h.bus = b
	h.mu.Unlock()
	return nil
}

func (h *Hub) Register(userID uuid.UUID, conn Conn) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		UserID: userID,
		conn:   conn,
		send:   make(chan Event, h.sendBuffer),
		ctx:    ctx,
		cancel: cancel,
		hub:    h,
	}

	h.mu.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = map[*Client]struct{}{}
	}
	h.clients[userID][c] = struct{}{}
	h.mu.Unlock()

	c.wg.Add(2)
	go c.writeLoop()
	go c.pingLoop()

	h.log.Debug("client registered", "user_id", userID)
	return c
}

// Unregister stops the client's pumps and forgets it. Safe to call twice.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if set, ok := h.clients[c.UserID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()

	c.stop()
	h.log.Debug("client unregistered", "user_id", c.UserID)
}

// Publish hands ev to every connection of the recipients. It never blocks on
// a slow client or on the bus.
func (h *Hub) Publish(recipients []uuid.UUID, ev Event) {
	if len(recipients) == 0 {
		return
	}
	h.mu.RLock()
	bus := h.bus
	h.mu.RUnlock()

	if bus == nil {
		h.Deliver(recipients, ev)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), busPublishTimeout)
		defer cancel()
		if err := bus.Publish(ctx, recipients, ev); err != nil {
			h.log.Warn("bus publish failed, delivering locally", "error", err, "type", ev.Type)
			h.Deliver(recipients, ev)
		}
	}()
}

// Deliver writes to connections held by this process only.
func (h *Hub) Deliver(recipients []uuid.UUID, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[uuid.UUID]struct{}, len(recipients))
	for _, uid := range recipients {
		if _, dup := seen[uid]; dup {
			continue
		}
		seen[uid] = struct{}{}
		for c := range h.clients[uid] {
			select {
			case c.send <- ev:
			default:
				h.log.Warn("client send buffer full, dropping event", "user_id", uid, "type", ev.Type)
			}
		}
	}
}

// Connected reports how many live connections userID has on this process.
func (h *Hub) Connected(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	var all []*Client
	for _, set := range h.clients {
		for c := range set {
			all = append(all, c)
		}
	}
	h.clients = map[uuid.UUID]map[*Client]struct{}{}
	h.mu.Unlock()

	for _, c := range all {
		c.stop()
	}
}
