package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // chỉ để phát triển, nên giới hạn ở production
	},
}

// gửi message dạng JSON qua WebSocket
func sendJSON(conn *websocket.Conn, data interface{}) {
	msg, err := json.Marshal(data)
	if err != nil {
		log.Println("Lỗi JSON marshal:", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		log.Println("Lỗi gửi message:", err)
	}
}

// HandleLeaderboardWebSocket cho trang bảng xếp hạng: client kết nối sẽ nhận
// broadcast mỗi khi scheduler tính lại hạng hoặc danh mục thay đổi.
// Xem bảng xếp hạng không cần đăng nhập nên không kiểm tra token ở đây.
func HandleLeaderboardWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade thất bại:", err)
		return
	}

	H.Register(conn)

	sendJSON(conn, gin.H{"type": "connected", "message": "Connected to leaderboard feed"})
}
