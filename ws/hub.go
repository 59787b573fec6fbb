package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub giữ các client đang xem bảng xếp hạng / danh mục
type Hub struct {
	Clients map[*websocket.Conn]*Client
	Mutex   sync.RWMutex
}

var H = Hub{
	Clients: make(map[*websocket.Conn]*Client),
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	h.Clients[conn] = client

	go h.readPump(conn)
	go h.writePump(conn)
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if client, ok := h.Clients[conn]; ok {
		close(client.Send)
		delete(h.Clients, conn)
	}
}

// Broadcast gửi tới toàn bộ client, client chậm bị bỏ qua thay vì chặn hub
func (h *Hub) Broadcast(data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	for _, client := range h.Clients {
		select {
		case client.Send <- data:
		default:
		}
	}
}

// GetStats cho health check
func (h *Hub) GetStats() map[string]interface{} {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	return map[string]interface{}{
		"connected_clients": len(h.Clients),
	}
}

// BroadcastLeaderboard đẩy bảng xếp hạng mới nhất cho mọi client đang xem
func BroadcastLeaderboard(ranked interface{}) {
	payload := map[string]interface{}{
		"type": "leaderboard_updated",
		"data": ranked,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}
	H.Broadcast(data)
}

// BroadcastCatalogChanged báo cho client biết danh mục vừa thay đổi để
// fetch lại danh sách (và kéo theo hợp nhất tiến độ lần sau)
func BroadcastCatalogChanged() {
	data := []byte(`{"type": "catalog_changed"}`)
	H.Broadcast(data)
}

func (h *Hub) readPump(conn *websocket.Conn) {
	defer h.Unregister(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) writePump(conn *websocket.Conn) {
	h.Mutex.RLock()
	client := h.Clients[conn]
	h.Mutex.RUnlock()
	if client == nil {
		return
	}

	defer func() {
		conn.WriteMessage(websocket.CloseMessage, []byte{})
		conn.Close()
	}()
	for msg := range client.Send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}
