package http

import (
	"github.com/gin-gonic/gin"

	"github.com/Nyaru01/Skyjo-V2-sub000/internal/api/ws"
	"github.com/Nyaru01/Skyjo-V2-sub000/internal/config"
	"github.com/Nyaru01/Skyjo-V2-sub000/internal/room"
)

func NewRouter(rm *room.Manager, hub *ws.Hub, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// WebSocket for live room events
	r.GET("/ws", hub.HandleWS)

	// --- ROOM ENDPOINTS ---
	r.POST("/create-room", CreateRoomHandler(rm))
	r.POST("/join-room", JoinRoomHandler(rm))
	r.POST("/add-bot", AddBotHandler(rm))
	r.POST("/start-game", StartGameHandler(rm))
	r.GET("/rooms", ListRoomsHandler(rm))
	r.GET("/room", GetRoomHandler(rm))

	// --- CONFIG ENDPOINTS ---
	ch := NewConfigHandler(rm, cfg)
	r.GET("/config/bot-weights", ch.GetBotWeightsHandler)
	r.POST("/config/bot-weights", ch.UpdateBotWeightsHandler)

	return r
}
