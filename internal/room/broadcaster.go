package room

// Broadcaster delivers an event to every connection in a room. The hub
// implements it; the Manager never talks to sockets directly.
type Broadcaster interface {
	Broadcast(roomCode string, event string, data interface{})
}

// Store owns the room map. Lookups are keyed by room code.
type Store interface {
	GetRoom(code string) (*Session, bool)
	SaveRoom(r *Session)
	// SaveRoomIfAbsent registers a new room atomically; it reports
	// false when the code is already taken.
	SaveRoomIfAbsent(r *Session) bool
	DeleteRoom(code string)
	ListRooms() []*Session
}

// Events broadcast by the Manager.
const (
	EventRoomUpdated   = "room_updated"
	EventGameStarted   = "game_started"
	EventGameUpdate    = "game_update"
	EventRoundFinished = "round_finished"
	EventGameOver      = "game_over"
	EventRoomCancelled = "room_cancelled"
)
