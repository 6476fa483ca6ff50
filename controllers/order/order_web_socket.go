// order_web_socket.go
package orderControllers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/junaidrashid-git/fishparque-api/models"
)

const (
	EventOrderCreated = "order.created"
	EventOrderStatus  = "order.status"

	writeWait = 5 * time.Second
)

// OrderEvent is pushed to every connected admin dashboard.
type OrderEvent struct {
	Type  string       `json:"type"`
	Order models.Order `json:"order"`
}

// feedConn is the part of *websocket.Conn the hub writes to.
type feedConn interface {
	SetWriteDeadline(t time.Time) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// feedClient serializes writes to one connection; gorilla allows a single writer.
type feedClient struct {
	conn    feedConn
	writeMu sync.Mutex
}

func (c *feedClient) send(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub fans order events out to the admin live feed.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[feedConn]*feedClient
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[feedConn]*feedClient),
	}
}

// GET /api/admin/orders/ws
func OrderWebSocketHandler(h *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		h.add(conn)
		defer h.remove(conn)

		// Clients only listen; reading detects the close.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}

func (h *Hub) add(conn feedConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = &feedClient{conn: conn}
}

func (h *Hub) remove(conn feedConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

// Clients is the number of connected dashboards.
func (h *Hub) Clients() int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends event to every client in parallel and drops the ones that
// fail. The hub lock is only held to snapshot the client set, so a stalled
// dashboard delays checkout by at most writeWait. A nil Hub discards the event.
func (h *Hub) Broadcast(event OrderEvent) {
	if h == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("❌ Failed to encode %s event: %v", event.Type, err)
		return
	}

	h.mu.Lock()
	clients := make([]*feedClient, 0, len(h.clients))
	for _, client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	var wg sync.WaitGroup
	for _, client := range clients {
		wg.Add(1)
		go func(client *feedClient) {
			defer wg.Done()
			if err := client.send(data); err != nil {
				log.Printf("⚠️ Dropping live feed client: %v", err)
				h.remove(client.conn)
			}
		}(client)
	}
	wg.Wait()
}

// Close disconnects every client.
func (h *Hub) Close() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}
