// Package realtime transmite entradas de auditoria para clientes websocket.
package realtime

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rafabene/backoffice/internal/domain/entities"
	"github.com/rafabene/backoffice/internal/domain/ports"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	clientBuffer   = 32
	broadcastQueue = 256
)

// Message é o envelope enviado aos clientes
type Message struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// ActivityEvent é a forma pública de uma entrada de auditoria no feed
type ActivityEvent struct {
	ID           string    `json:"id"`
	Action       string    `json:"action"`
	Description  string    `json:"description"`
	ActorUserID  *string   `json:"actorUserId"`
	TargetUserID *string   `json:"targetUserId"`
	ResourceType string    `json:"resourceType,omitempty"`
	ResourceID   string    `json:"resourceId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Client é uma conexão websocket registrada no hub
type Client struct {
	ID   string
	conn *websocket.Conn
	send chan Message
}

// ClientCounter recebe o número de clientes conectados (ex.: gauge de métricas)
type ClientCounter func(n int)

// Hub mantém os clientes e distribui mensagens; implementa ports.ActivityPublisher
type Hub struct {
	log      ports.Logger
	upgrader websocket.Upgrader
	onCount  ClientCounter

	clients    map[*Client]bool
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once

	mu    sync.RWMutex
	count int
}

// NewHub cria um hub; allowedOrigins vazio aceita apenas a mesma origem
func NewHub(log ports.Logger, allowedOrigins []string, onCount ClientCounter) *Hub {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}

	h := &Hub{
		log:        log,
		onCount:    onCount,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, broadcastQueue),
		register:   make(chan *Client, 10),
		unregister: make(chan *Client, 10),
		done:       make(chan struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origins[origin] || origin == "http://"+r.Host || origin == "https://"+r.Host
		},
	}
	return h
}

// Run processa registros e broadcasts até ctx terminar ou Stop ser chamado.
// Ao sair, done fica fechado para que ServeHTTP e readPump não bloqueiem.
func (h *Hub) Run(ctx context.Context) {
	defer h.closeAll()
	defer h.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-h.done:
			return
		case client := <-h.register:
			h.clients[client] = true
			h.setCount(len(h.clients))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.setCount(len(h.clients))
			}
		case msg := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					// Cliente lento: desconecta em vez de segurar o hub
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.setCount(len(h.clients))
		}
	}
}

// Stop encerra o loop do hub
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Publish enfileira uma entrada de auditoria sem bloquear; descarta se a fila estiver cheia
func (h *Hub) Publish(entry *entities.ActivityLog) {
	if entry == nil {
		return
	}

	msg := Message{
		Type:      "activity",
		Timestamp: time.Now().UTC(),
		Data: ActivityEvent{
			ID:           entry.ID,
			Action:       string(entry.Action),
			Description:  entry.Description,
			ActorUserID:  entry.ActorUserID,
			TargetUserID: entry.TargetUserID,
			ResourceType: entry.ResourceType,
			ResourceID:   entry.ResourceID,
			CreatedAt:    entry.CreatedAt,
		},
	}

	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn("activity stream queue full, dropping event", "activity_id", entry.ID)
	}
}

// ClientCount retorna o número de clientes conectados
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// ServeHTTP faz o upgrade da conexão e registra o cliente
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade já respondeu ao cliente
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		ID:   uuid.NewString(),
		conn: conn,
		send: make(chan Message, clientBuffer),
	}

	if !h.enqueue(h.register, client) {
		_ = conn.Close()
		return
	}

	h.log.Debug("activity stream client connected", "client_id", client.ID)

	go h.writePump(client)
	go h.readPump(client)
}

// readPump descarta mensagens recebidas e detecta desconexão
func (h *Hub) readPump(client *Client) {
	defer func() {
		h.enqueue(h.unregister, client)
		_ = client.conn.Close()
	}()

	client.conn.SetReadLimit(512)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = client.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// enqueue entrega o cliente ao loop; false quando o hub já parou
func (h *Hub) enqueue(ch chan<- *Client, client *Client) bool {
	select {
	case <-h.done:
		return false
	default:
	}

	select {
	case ch <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) closeAll() {
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
	h.setCount(0)
}

func (h *Hub) setCount(n int) {
	h.mu.Lock()
	h.count = n
	h.mu.Unlock()
	if h.onCount != nil {
		h.onCount(n)
	}
}
