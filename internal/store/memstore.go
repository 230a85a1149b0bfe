package store

import (
	"sync"

	"github.com/Nyaru01/Skyjo-V2-sub000/internal/room"
)

// MemoryStore keeps every session in process memory. The map lock only
// guards lookup and registration; per-session state has its own lock.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]*room.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: map[string]*room.Session{},
	}
}

func (m *MemoryStore) GetRoom(code string) (*room.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[code]
	return r, ok
}

func (m *MemoryStore) SaveRoom(r *room.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[r.Code] = r
}

func (m *MemoryStore) SaveRoomIfAbsent(r *room.Session) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.rooms[r.Code]; taken {
		return false
	}
	m.rooms[r.Code] = r
	return true
}

func (m *MemoryStore) DeleteRoom(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, code)
}

func (m *MemoryStore) ListRooms() []*room.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*room.Session, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	return out
}
