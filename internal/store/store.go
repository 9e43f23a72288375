package store

import (
	"sync"

	"buzzroom/internal/model"
)

// GameStore owns the room id -> game mapping plus the connection index
// used to resolve a dropped connection to its room without scanning
// every game's player list. All state is in-process and lost on
// restart.
type GameStore interface {
	Create(game *model.Game)
	Get(roomID string) (*model.Game, bool)
	Delete(roomID string)
	BindConn(connID, roomID string)
	UnbindConn(connID string)
	RoomForConn(connID string) (string, bool)
	Len() int
}

type memoryStore struct {
	mu    sync.RWMutex
	games map[string]*model.Game
	conns map[string]string // connection id -> room id
}

func NewMemoryStore() GameStore {
	return &memoryStore{
		games: make(map[string]*model.Game),
		conns: make(map[string]string),
	}
}

func (s *memoryStore) Create(game *model.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.RoomID] = game
}

func (s *memoryStore) Get(roomID string) (*model.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[roomID]
	return g, ok
}

// Delete removes the game and every connection bound to its room.
func (s *memoryStore) Delete(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, roomID)
	for connID, room := range s.conns {
		if room == roomID {
			delete(s.conns, connID)
		}
	}
}

func (s *memoryStore) BindConn(connID, roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[connID] = roomID
}

func (s *memoryStore) UnbindConn(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, connID)
}

func (s *memoryStore) RoomForConn(connID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roomID, ok := s.conns[connID]
	return roomID, ok
}

func (s *memoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}
