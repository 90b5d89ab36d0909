package db

import (
	"encoding/json"
	"errors"
	"time"

	"chronos-terminal/internal/world"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the Postgres-backed world.Store.
type Store struct {
	conn *gorm.DB
}

func NewStore(conn *gorm.DB) *Store {
	return &Store{conn: conn}
}

func (s *Store) CreateRoom(room *world.Room) error {
	if err := world.ValidateRoom(room); err != nil {
		return err
	}
	now := time.Now().UTC()
	room.ID = uuid.NewString()
	room.CreatedAt = now
	room.UpdatedAt = now
	record, err := toRoomRecord(room)
	if err != nil {
		return err
	}
	if err := s.conn.Create(record).Error; err != nil {
		if isUniqueViolation(err) {
			return world.ErrDuplicateName
		}
		return err
	}
	return nil
}

func (s *Store) GetRoom(id string) (*world.Room, error) {
	var record Room
	if err := s.conn.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, world.ErrRoomNotFound
		}
		return nil, err
	}
	return fromRoomRecord(&record)
}

// UpdateRoom merges the patch inside a row-locked transaction so the
// per-direction exit merge never clobbers a concurrent update.
func (s *Store) UpdateRoom(id string, patch world.RoomPatch) (*world.Room, error) {
	var merged *world.Room
	err := s.conn.Transaction(func(tx *gorm.DB) error {
		var record Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&record, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return world.ErrRoomNotFound
			}
			return err
		}
		room, err := fromRoomRecord(&record)
		if err != nil {
			return err
		}
		if patch.Name != nil {
			room.Name = *patch.Name
		}
		if patch.Description != nil {
			room.Description = *patch.Description
		}
		if patch.TimeFlowRate != nil {
			room.TimeFlowRate = *patch.TimeFlowRate
		}
		if patch.Exits != nil {
			room.Exits = world.MergeExits(room.Exits, patch.Exits)
		}
		if patch.Objects != nil {
			room.Objects = append([]string(nil), patch.Objects...)
		}
		if err := world.ValidateRoom(room); err != nil {
			return err
		}
		room.UpdatedAt = time.Now().UTC()
		updated, err := toRoomRecord(room)
		if err != nil {
			return err
		}
		if err := tx.Save(updated).Error; err != nil {
			if isUniqueViolation(err) {
				return world.ErrDuplicateName
			}
			return err
		}
		merged = room
		return nil
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *Store) CreatePlayer(player *world.Player) error {
	if err := world.ValidatePlayer(player); err != nil {
		return err
	}
	now := time.Now().UTC()
	player.ID = uuid.NewString()
	player.CreatedAt = now
	player.UpdatedAt = now
	record := Player{
		ID:            player.ID,
		Name:          player.Name,
		CurrentRoomID: player.CurrentRoom,
		CreatedAt:     player.CreatedAt,
		UpdatedAt:     player.UpdatedAt,
	}
	return s.conn.Create(&record).Error
}

func (s *Store) GetPlayer(id string) (*world.Player, error) {
	var record Player
	if err := s.conn.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, world.ErrPlayerNotFound
		}
		return nil, err
	}
	return &world.Player{
		ID:          record.ID,
		Name:        record.Name,
		CurrentRoom: record.CurrentRoomID,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}, nil
}

func (s *Store) SetPlayerRoom(playerID, roomID string) error {
	result := s.conn.Model(&Player{}).
		Where("id = ?", playerID).
		Updates(map[string]any{
			"current_room_id": roomID,
			"updated_at":      time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return world.ErrPlayerNotFound
	}
	return nil
}

func toRoomRecord(room *world.Room) (*Room, error) {
	exits := datatypes.JSONMap{}
	for direction, target := range room.Exits {
		exits[direction] = target
	}
	objects, err := json.Marshal(room.Objects)
	if err != nil {
		return nil, err
	}
	return &Room{
		ID:           room.ID,
		Name:         room.Name,
		Description:  room.Description,
		TimeFlowRate: room.TimeFlowRate,
		Exits:        exits,
		Objects:      datatypes.JSON(objects),
		CreatedAt:    room.CreatedAt,
		UpdatedAt:    room.UpdatedAt,
	}, nil
}

func fromRoomRecord(record *Room) (*world.Room, error) {
	exits := make(map[string]string, len(record.Exits))
	for direction, target := range record.Exits {
		if s, ok := target.(string); ok {
			exits[direction] = s
		}
	}
	var objects []string
	if len(record.Objects) > 0 {
		if err := json.Unmarshal(record.Objects, &objects); err != nil {
			return nil, err
		}
	}
	return &world.Room{
		ID:           record.ID,
		Name:         record.Name,
		Description:  record.Description,
		TimeFlowRate: record.TimeFlowRate,
		Exits:        exits,
		Objects:      objects,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
