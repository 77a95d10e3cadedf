package main

import "sync"

const maxConnsPerIP = 4

// Hub manages all connected clients, keyed by connection id, and owns the
// room registry and the quick-match queue via its RoomManager.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]*Client // connection id -> client
	register   chan *Client
	unregister chan *Client

	rooms *RoomManager
	tel   *Telemetry

	// Connection limiting (mutex-protected, accessed from HTTP handlers)
	connMu     sync.Mutex
	ipConns    map[string]int
	totalConns int
	maxConns   int
}

// NewHub creates a new Hub.
func NewHub(cfg Config, tel *Telemetry) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		rooms:      NewRoomManager(cfg.MaxRooms, tel),
		tel:        tel,
		ipConns:    make(map[string]int),
		maxConns:   cfg.MaxConns,
	}
}

// CanAccept checks the connection limits for a new connection from ip.
func (h *Hub) CanAccept(ip string) bool {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	if h.totalConns >= h.maxConns {
		return false
	}
	return h.ipConns[ip] < maxConnsPerIP
}

// TrackConnect records an accepted connection.
func (h *Hub) TrackConnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]++
	h.totalConns++
}

// TrackDisconnect records a closed connection.
func (h *Hub) TrackDisconnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]--
	if h.ipConns[ip] <= 0 {
		delete(h.ipConns, ip)
	}
	h.totalConns--
}

// TotalConns returns the tracked connection count.
func (h *Hub) TotalConns() int {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	return h.totalConns
}

// Run processes register/unregister events. Cleanup on disconnect always
// runs regardless of room state: the waiter queue entry, the room tick
// loop, and every pending ability timer all go away with the client.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				close(client.send)
			}
			h.mu.Unlock()

			h.rooms.Dequeue(client)
			if room, playerID := client.currentRoom(); room != nil {
				room.Drop(playerID)
			}
			h.tel.Track(EvtDisconnect)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
