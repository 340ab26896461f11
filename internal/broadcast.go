package internal

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // local replay viewer only
	},
}

// Frame is one JSON message pushed to connected renderers
type Frame struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Broadcaster pushes replay frames to browser renderers over websockets.
// Clients are read-only consumers: inbound messages are drained and ignored.
type Broadcaster struct {
	mu         sync.RWMutex
	clients    map[string]chan []byte
	port       int
	httpServer *http.Server
}

// NewBroadcaster creates a broadcaster with no clients
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{clients: make(map[string]chan []byte)}
}

// Start listens on addr (":0" picks a free port) and serves /ws and /health.
// Returns the bound port.
func (b *Broadcaster) Start(addr string) (int, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return 0, err
	}
	b.port = listener.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", b.handleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	b.httpServer = &http.Server{Handler: mux}

	go func() {
		if err := b.httpServer.Serve(listener); err != http.ErrServerClosed {
			LogError("Broadcast server error: %v", err)
		}
	}()

	return b.port, nil
}

// Stop closes all clients and shuts the server down
func (b *Broadcaster) Stop(ctx context.Context) error {
	b.mu.Lock()
	for id, send := range b.clients {
		close(send)
		delete(b.clients, id)
	}
	b.mu.Unlock()

	if b.httpServer == nil {
		return nil
	}
	return b.httpServer.Shutdown(ctx)
}

// Port returns the bound port
func (b *Broadcaster) Port() int {
	return b.port
}

// ClientCount returns the number of connected renderers
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Broadcast sends a frame to every connected renderer. Slow clients whose
// buffers are full are skipped rather than blocking the replay loop.
func (b *Broadcaster) Broadcast(frameType string, payload interface{}) {
	data, err := json.Marshal(Frame{Type: frameType, Payload: payload})
	if err != nil {
		LogWarn("Failed to marshal frame %s: %v", frameType, err)
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for id, send := range b.clients {
		select {
		case send <- data:
		default:
			LogDebug("Client %s buffer full, dropping frame", id)
		}
	}
}

func (b *Broadcaster) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		LogWarn("WebSocket upgrade error: %v", err)
		return
	}

	clientID := uuid.NewString()
	send := make(chan []byte, 256)

	b.mu.Lock()
	b.clients[clientID] = send
	b.mu.Unlock()

	go func() {
		defer conn.Close()
		for message := range send {
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		}
	}()

	// Drain inbound messages until the client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	b.mu.Lock()
	if send, ok := b.clients[clientID]; ok {
		close(send)
		delete(b.clients, clientID)
	}
	b.mu.Unlock()
	conn.Close()
}
