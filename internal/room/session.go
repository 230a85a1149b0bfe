package room

import (
	"sync"
	"time"

	"github.com/Nyaru01/Skyjo-V2-sub000/internal/config"
	"github.com/Nyaru01/Skyjo-V2-sub000/internal/game"
)

// Seat is a player's slot in a room roster, independent of the engine's
// player indices. The seat id is stable across rounds and keys the
// cumulative scores.
type Seat struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	IsHost bool   `json:"isHost"`
	IsBot  bool   `json:"isBot"`
	Ready  bool   `json:"ready"`
}

// Session is one room: its roster, the current round's game state and
// the running match totals. Sessions are owned by the Manager; every
// mutation happens under mu, one action at a time per room.
type Session struct {
	Code             string             `json:"code"`
	Players          []Seat             `json:"players"`
	Game             *game.GameState    `json:"gameState,omitempty"`
	CumulativeScores map[string]int     `json:"cumulativeScores"`
	RoundNumber      int                `json:"roundNumber"`
	GameStarted      bool               `json:"gameStarted"`
	GameOver         bool               `json:"isGameOver"`
	WinnerID         string             `json:"winner,omitempty"`
	Public           bool               `json:"public"`
	CreatedAt        time.Time          `json:"createdAt"`
	BotWeights       *config.BotWeights `json:"botWeights,omitempty"`

	mu          sync.Mutex
	roundScored bool
	readyTimer  *time.Timer
}

// seat returns the seat with the given player id, or nil.
func (s *Session) seat(playerID string) *Seat {
	for i := range s.Players {
		if s.Players[i].ID == playerID {
			return &s.Players[i]
		}
	}
	return nil
}

// hostName returns the current host's display name.
func (s *Session) hostName() string {
	for i := range s.Players {
		if s.Players[i].IsHost {
			return s.Players[i].Name
		}
	}
	return ""
}

// allReady reports whether every seat has signalled for the next round.
func (s *Session) allReady() bool {
	for i := range s.Players {
		if !s.Players[i].Ready {
			return false
		}
	}
	return len(s.Players) > 0
}

// snapshot copies the JSON-visible fields so callers can marshal the
// room without holding mu. The game state pointer is shared: committed
// states are never mutated in place. Caller holds mu.
func (s *Session) snapshot() *Session {
	scores := make(map[string]int, len(s.CumulativeScores))
	for id, total := range s.CumulativeScores {
		scores[id] = total
	}
	return &Session{
		Code:             s.Code,
		Players:          append([]Seat(nil), s.Players...),
		Game:             s.Game,
		CumulativeScores: scores,
		RoundNumber:      s.RoundNumber,
		GameStarted:      s.GameStarted,
		GameOver:         s.GameOver,
		WinnerID:         s.WinnerID,
		Public:           s.Public,
		CreatedAt:        s.CreatedAt,
		BotWeights:       s.BotWeights,
	}
}

// stopReadyTimer cancels a pending round-advance timer, if any.
func (s *Session) stopReadyTimer() {
	if s.readyTimer != nil {
		s.readyTimer.Stop()
		s.readyTimer = nil
	}
}

// Summary is the lobby-browsing view of a public room.
type Summary struct {
	Code       string `json:"code"`
	HostName   string `json:"hostName"`
	Seats      int    `json:"seats"`
	MaxPlayers int    `json:"maxPlayers"`
	Started    bool   `json:"started"`
}
