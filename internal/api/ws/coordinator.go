package ws

import (
	"github.com/Nyaru01/Skyjo-V2-sub000/internal/game"
	"github.com/Nyaru01/Skyjo-V2-sub000/internal/room"
)

// Coordinator is the slice of the room manager the hub drives.
type Coordinator interface {
	StartGame(code, playerID string) error
	ApplyAction(code, playerID string, act room.Action) (*game.GameState, *room.LastAction, error)
	Ready(code, playerID string) error
	HandleDisconnect(code, playerID string)
}
