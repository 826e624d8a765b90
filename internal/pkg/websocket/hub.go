package websocket

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/nexusai/nexus-backend/internal/pkg/metrics"
)

// Event names pushed to connected clients on job mutations.
const (
	EventJobCreated = "job:created"
	EventJobUpdated = "job:updated"
	EventJobDeleted = "job:deleted"
)

// Event is the frame broadcast to every connected client. Data carries the
// full job record for create/update and the bare identity for delete.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub maintains the set of active clients and broadcasts events to them.
// There is no per-client filtering: every client receives every job event.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Channel for outbound events
	broadcast chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Logger for Hub operations
	logger zerolog.Logger

	// Metrics collector, may be nil
	metrics *metrics.Collector
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger, collector *metrics.Collector) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
		metrics:    collector,
	}
}

// Run starts the hub, handling client registrations and broadcasts
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// Broadcast queues an event for delivery to all connected clients. Delivery is
// fire-and-forget: no acknowledgment and no guarantee a given client receives
// it.
func (h *Hub) Broadcast(event string, data interface{}) {
	h.broadcast <- &Event{Event: event, Data: data}
}

// ClientCount returns the number of currently connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	if h.metrics != nil {
		h.metrics.ClientConnected()
	}

	h.logger.Info().
		Str("connectionID", client.id).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client connected")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}

	delete(h.clients, client)
	close(client.send)
	if h.metrics != nil {
		h.metrics.ClientDisconnected()
	}

	h.logger.Info().
		Str("connectionID", client.id).
		Msg("Client disconnected")
}

// broadcastEvent serializes an event and fans it out to every client
func (h *Hub) broadcastEvent(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("event", event.Event).
			Msg("Failed to marshal event for broadcast")
		return
	}

	var slow []*Client

	h.mu.RLock()
	for client := range h.clients {
		select {
		case client.send <- data:
			// Event queued for this client
		default:
			// Client's send buffer is full; drop the connection
			slow = append(slow, client)
		}
	}
	clientCount := len(h.clients)
	h.mu.RUnlock()

	for _, client := range slow {
		h.unregisterClient(client)
	}

	if h.metrics != nil {
		h.metrics.RecordEventBroadcast(event.Event)
	}

	h.logger.Debug().
		Str("event", event.Event).
		Int("clientCount", clientCount).
		Msg("Event broadcasted")
}
