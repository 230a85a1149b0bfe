package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Nyaru01/Skyjo-V2-sub000/internal/room"
)

// Hub tracks the live connections per room and fans room events out to
// them. Writes go through the hub lock so broadcasts and direct replies
// never interleave on one connection.
type Hub struct {
	mu          sync.Mutex
	rooms       map[string]map[*websocket.Conn]struct{}
	coordinator Coordinator
}

func NewHub(coordinator Coordinator) *Hub {
	return &Hub{
		rooms:       make(map[string]map[*websocket.Conn]struct{}),
		coordinator: coordinator,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// HandleWS upgrades the connection and runs its read loop. The player
// binds to a seat via query parameters; when the loop ends the seat is
// reported as disconnected.
func (h *Hub) HandleWS(c *gin.Context) {
	roomCode := c.Query("room_code")
	playerID := c.Query("player_id")
	if roomCode == "" || playerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing room_code or player_id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	log.Printf("WebSocket connected: room=%s player=%s", roomCode, playerID)

	h.mu.Lock()
	if _, ok := h.rooms[roomCode]; !ok {
		h.rooms[roomCode] = make(map[*websocket.Conn]struct{})
	}
	h.rooms[roomCode][conn] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.rooms[roomCode], conn)
		if len(h.rooms[roomCode]) == 0 {
			delete(h.rooms, roomCode)
		}
		h.mu.Unlock()
		_ = conn.Close()
		h.coordinator.HandleDisconnect(roomCode, playerID)
	}()

	for {
		var msg envelope
		if err := conn.ReadJSON(&msg); err != nil {
			log.Printf("WebSocket read ended: room=%s player=%s: %v", roomCode, playerID, err)
			break
		}

		switch msg.Type {
		case "start_game":
			if err := h.coordinator.StartGame(roomCode, playerID); err != nil {
				h.sendError(conn, msg.Type, err)
			}
		case "game_action":
			var act room.Action
			if err := json.Unmarshal(msg.Data, &act); err != nil {
				h.sendError(conn, msg.Type, err)
				continue
			}
			if _, _, err := h.coordinator.ApplyAction(roomCode, playerID, act); err != nil {
				h.sendError(conn, msg.Type, err)
			}
		case "ready":
			if err := h.coordinator.Ready(roomCode, playerID); err != nil {
				h.sendError(conn, msg.Type, err)
			}
		default:
			log.Printf("Unknown message type: %s", msg.Type)
		}
	}
}

// Broadcast sends an event to every connection in a room.
func (h *Hub) Broadcast(roomCode, event string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[roomCode]
	if !ok {
		return
	}
	message := gin.H{
		"type": event,
		"data": data,
	}
	for conn := range clients {
		if err := conn.WriteJSON(message); err != nil {
			log.Printf("Failed to send message: %v", err)
			conn.Close()
			delete(clients, conn)
		}
	}
}

// sendError reports a rejected message back to its sender only.
func (h *Hub) sendError(conn *websocket.Conn, requestType string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	writeErr := conn.WriteJSON(gin.H{
		"type": "error",
		"data": gin.H{
			"request": requestType,
			"message": err.Error(),
		},
	})
	if writeErr != nil {
		log.Printf("Failed to send error reply: %v", writeErr)
	}
}
