package world

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps the world in process memory. The server falls back to
// it when DATABASE_URL is unset, and the test suites run against it; it
// enforces the same name-uniqueness and merge rules as the Postgres store.
type MemoryStore struct {
	mu      sync.RWMutex
	rooms   map[string]*Room
	players map[string]*Player
	names   map[string]string // room name -> room id
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms:   map[string]*Room{},
		players: map[string]*Player{},
		names:   map[string]string{},
	}
}

func (m *MemoryStore) CreateRoom(room *Room) error {
	if err := ValidateRoom(room); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := room.Name
	if _, taken := m.names[key]; taken {
		return ErrDuplicateName
	}
	now := time.Now().UTC()
	room.ID = uuid.NewString()
	room.CreatedAt = now
	room.UpdatedAt = now
	m.rooms[room.ID] = room.Clone()
	m.names[key] = room.ID
	return nil
}

func (m *MemoryStore) GetRoom(id string) (*Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	room, ok := m.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room.Clone(), nil
}

func (m *MemoryStore) UpdateRoom(id string, patch RoomPatch) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	room, ok := m.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	merged := room.Clone()
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.TimeFlowRate != nil {
		merged.TimeFlowRate = *patch.TimeFlowRate
	}
	if patch.Exits != nil {
		merged.Exits = MergeExits(merged.Exits, patch.Exits)
	}
	if patch.Objects != nil {
		merged.Objects = append([]string(nil), patch.Objects...)
	}
	if err := ValidateRoom(merged); err != nil {
		return nil, err
	}
	oldKey := room.Name
	newKey := merged.Name
	if newKey != oldKey {
		if _, taken := m.names[newKey]; taken {
			return nil, ErrDuplicateName
		}
		delete(m.names, oldKey)
		m.names[newKey] = id
	}
	merged.UpdatedAt = time.Now().UTC()
	m.rooms[id] = merged
	return merged.Clone(), nil
}

func (m *MemoryStore) CreatePlayer(player *Player) error {
	if err := ValidatePlayer(player); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	player.ID = uuid.NewString()
	player.CreatedAt = now
	player.UpdatedAt = now
	m.players[player.ID] = player.Clone()
	return nil
}

func (m *MemoryStore) GetPlayer(id string) (*Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	player, ok := m.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return player.Clone(), nil
}

func (m *MemoryStore) SetPlayerRoom(playerID, roomID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	player, ok := m.players[playerID]
	if !ok {
		return ErrPlayerNotFound
	}
	player.CurrentRoom = roomID
	player.UpdatedAt = time.Now().UTC()
	return nil
}
