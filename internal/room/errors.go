package room

import "errors"

// Coordination errors are surfaced to the originating client only and
// never broadcast to the room.
var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomFull         = errors.New("room is full")
	ErrGameStarted      = errors.New("game already started")
	ErrGameNotStarted   = errors.New("no active game")
	ErrNotSeated        = errors.New("player is not in this room")
	ErrNotHost          = errors.New("only the host can do that")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrNotEnoughPlayers = errors.New("need at least two players")
	ErrRoundNotFinished = errors.New("round is not finished")
	ErrAlreadyReady     = errors.New("already ready")
	ErrUnknownAction    = errors.New("unknown action")
)
