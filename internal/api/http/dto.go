package http

import "github.com/Nyaru01/Skyjo-V2-sub000/internal/config"

// CreateRoomRequest represents the payload for /create-room.
type CreateRoomRequest struct {
	PlayerName string `json:"playerName"`
	Avatar     string `json:"avatar"`
	Public     bool   `json:"public"`
}

// JoinRoomRequest represents the payload for /join-room.
type JoinRoomRequest struct {
	RoomCode   string `json:"roomCode"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Avatar     string `json:"avatar"`
}

// AddBotRequest represents the payload for /add-bot.
type AddBotRequest struct {
	RoomCode string `json:"roomCode"`
}

// StartGameRequest represents the payload for /start-game.
type StartGameRequest struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
}

// UpdateBotWeightsRequest overrides the bot tuning for one room.
type UpdateBotWeightsRequest struct {
	RoomCode string            `json:"roomCode" binding:"required"`
	Weights  config.BotWeights `json:"weights" binding:"required"`
}
