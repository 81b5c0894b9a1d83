package dashboard

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Uranury/sensorlog/recorder"
)

// writeWait bounds how long a slow client can hold up a sample.
var writeWait = 2 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans samples out to websocket clients and remembers the latest one.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	latest  *recorder.Sample
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]bool)}
}

// Write broadcasts s. A client that fails a write is dropped; it never
// fails the sample.
func (h *Hub) Write(s recorder.Sample) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = &s
	for client := range h.clients {
		client.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.WriteJSON(s); err != nil {
			log.Println("WebSocket write error:", err)
			client.Close()
			delete(h.clients, client)
		}
	}
	return nil
}

func (h *Hub) Latest() (recorder.Sample, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.latest == nil {
		return recorder.Sample{}, false
	}
	return *h.latest, true
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	n := len(h.clients)
	h.mu.Unlock()
	log.Printf("Client connected. Total clients: %d", n)

	// Keep connection alive
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	if h.clients[conn] {
		delete(h.clients, conn)
		conn.Close()
	}
	n = len(h.clients)
	h.mu.Unlock()
	log.Printf("Client disconnected. Total clients: %d", n)
}
