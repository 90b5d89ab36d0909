package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	eventConnected     = "connected"
	eventRoomCreated   = "room_created"
	eventRoomUpdated   = "room_updated"
	eventPlayerCreated = "player_created"
	eventPlayerMoved   = "player_moved"
)

// worldHub fans world events out to connected watchers. Outbound only:
// inbound frames are read solely to notice the close.
type worldHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func newWorldHub() *worldHub {
	return &worldHub{
		conns: make(map[*websocket.Conn]struct{}),
	}
}

func (h *worldHub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

func (h *worldHub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
	_ = conn.Close()
}

func (h *worldHub) Send(conn *websocket.Conn, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = conn.WriteMessage(websocket.TextMessage, data)
}

func (h *worldHub) Broadcast(event string, payload map[string]any) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	message := map[string]any{"event": event}
	for key, value := range payload {
		message[key] = value
	}
	data, err := json.Marshal(message)
	if err != nil {
		return
	}
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.Remove(conn)
		}
	}
}

func (s *Server) handleWorldWebsocket(c *gin.Context) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	log.Printf("ws connected remote=%s", c.Request.RemoteAddr)
	s.ws.Add(conn)
	s.ws.Send(conn, map[string]any{"event": eventConnected})
	go s.readWorldWS(conn)
}

func (s *Server) readWorldWS(conn *websocket.Conn) {
	defer s.ws.Remove(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Printf("ws disconnected error=%v", err)
			return
		}
	}
}
