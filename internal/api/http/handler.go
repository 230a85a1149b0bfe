package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nyaru01/Skyjo-V2-sub000/internal/room"
)

// statusFor maps coordinator errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, room.ErrRoomFull),
		errors.Is(err, room.ErrGameStarted):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// @Summary Create new room
// @Description Create a new room with the calling player as host
// @Tags Room
// @Accept json
// @Produce json
// @Param request body http.CreateRoomRequest true "Player info"
// @Success 200 {object} map[string]interface{}
// @Router /create-room [post]
func CreateRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRoomRequest
		if err := c.BindJSON(&req); err != nil || req.PlayerName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "playerName required"})
			return
		}
		rx, host := rm.CreateRoom(req.PlayerName, req.Avatar, req.Public)
		snap, _ := rm.Snapshot(rx.Code)
		c.JSON(http.StatusOK, gin.H{
			"roomCode": rx.Code,
			"playerId": host.ID,
			"room":     snap,
		})
	}
}

// @Summary Join a room
// @Description Take a seat in an open room; rejoining with a known playerId is a no-op
// @Tags Room
// @Accept json
// @Produce json
// @Param request body http.JoinRoomRequest true "Join info"
// @Success 200 {object} map[string]interface{}
// @Router /join-room [post]
func JoinRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req JoinRoomRequest
		if err := c.BindJSON(&req); err != nil || req.RoomCode == "" || req.PlayerName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomCode and playerName required"})
			return
		}
		rx, seat, err := rm.JoinRoom(req.RoomCode, req.PlayerID, req.PlayerName, req.Avatar)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		snap, _ := rm.Snapshot(rx.Code)
		c.JSON(http.StatusOK, gin.H{
			"roomCode": rx.Code,
			"playerId": seat.ID,
			"room":     snap,
		})
	}
}

// @Summary Add a bot to a room
// @Description Seat a computer player in an open room
// @Tags Room
// @Accept json
// @Produce json
// @Param request body http.AddBotRequest true "Room info"
// @Success 200 {object} map[string]interface{}
// @Router /add-bot [post]
func AddBotHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddBotRequest
		if err := c.BindJSON(&req); err != nil || req.RoomCode == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomCode required"})
			return
		}
		rx, seat, err := rm.AddBot(req.RoomCode)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		snap, _ := rm.Snapshot(rx.Code)
		c.JSON(http.StatusOK, gin.H{"bot": seat, "room": snap})
	}
}

// @Summary Start the game
// @Description Deal the first round for the current roster (host only)
// @Tags Room
// @Accept json
// @Produce json
// @Param request body http.StartGameRequest true "Start info"
// @Success 200 {object} map[string]interface{}
// @Router /start-game [post]
func StartGameHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StartGameRequest
		if err := c.BindJSON(&req); err != nil || req.RoomCode == "" || req.PlayerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomCode and playerId required"})
			return
		}
		if err := rm.StartGame(req.RoomCode, req.PlayerID); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// @Summary List public rooms
// @Description Open public rooms for the lobby, newest first
// @Tags Room
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /rooms [get]
func ListRoomsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": rm.PublicRooms()})
	}
}

// @Summary Get a room
// @Description Full session state for one room code
// @Tags Room
// @Produce json
// @Param roomCode query string true "Room Code"
// @Success 200 {object} map[string]interface{}
// @Router /room [get]
func GetRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomCode := c.Query("roomCode")
		if roomCode == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomCode required"})
			return
		}
		snap, ok := rm.Snapshot(roomCode)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": snap})
	}
}
