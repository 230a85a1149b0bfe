package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nyaru01/Skyjo-V2-sub000/internal/config"
	"github.com/Nyaru01/Skyjo-V2-sub000/internal/room"
)

type ConfigHandler struct {
	rm  *room.Manager
	cfg *config.Config
}

func NewConfigHandler(rm *room.Manager, cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{rm: rm, cfg: cfg}
}

// @Summary Get bot weights
// @Description Returns the effective bot tuning for a room, or the server defaults when no roomCode is given
// @Tags Config
// @Produce json
// @Param roomCode query string false "Room Code"
// @Success 200 {object} map[string]interface{}
// @Router /config/bot-weights [get]
func (h *ConfigHandler) GetBotWeightsHandler(c *gin.Context) {
	roomCode := c.Query("roomCode")
	if roomCode == "" {
		c.JSON(http.StatusOK, gin.H{"weights": h.cfg.DefaultBotWeights})
		return
	}
	w, err := h.rm.BotWeights(roomCode)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"roomCode": roomCode,
		"weights":  w,
	})
}

// @Summary Update bot weights
// @Description Overrides the bot tuning for one room
// @Tags Config
// @Accept json
// @Produce json
// @Param request body http.UpdateBotWeightsRequest true "Weights"
// @Success 200 {object} map[string]interface{}
// @Router /config/bot-weights [post]
func (h *ConfigHandler) UpdateBotWeightsHandler(c *gin.Context) {
	var req UpdateBotWeightsRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := h.rm.SetBotWeights(req.RoomCode, req.Weights); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"roomCode": req.RoomCode,
		"weights":  req.Weights,
	})
}
