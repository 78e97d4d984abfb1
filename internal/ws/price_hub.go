package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type client struct {
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

// PriceHub broadcasts price refresh results to connected dashboards. Prices
// are not account-scoped, so connections are unauthenticated.
type PriceHub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	log     zerolog.Logger
}

func NewPriceHub(log zerolog.Logger) *PriceHub {
	return &PriceHub{
		clients: make(map[*client]struct{}),
		log:     log.With().Str("component", "price_hub").Logger(),
	}
}

// Broadcast sends the payload to every connected client, dropping clients
// whose send buffers are full.
func (h *PriceHub) Broadcast(payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Slow consumer; it will be removed when its write loop exits.
		}
	}
}

func (h *PriceHub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *PriceHub) unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.close()
}

// Serve upgrades the connection and streams broadcasts until the peer goes
// away.
func (h *PriceHub) Serve() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		c := &client{send: make(chan []byte, 64)}
		h.register(c)
		defer h.unregister(c)
		go writePump(c, conn)
		readPump(conn)
	}
}

func writePump(c *client, conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func readPump(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
