package world

import (
	"strings"
	"time"
)

// Room is a node in the world graph. Exits map arbitrary direction labels
// to the id of the room that direction leads to; targets may dangle until
// a move is attempted through them.
type Room struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Exits        map[string]string `json:"exits"`
	TimeFlowRate float64           `json:"timeFlowRate"`
	Objects      []string          `json:"objects"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// Player occupies exactly one room at a time.
type Player struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CurrentRoom string    `json:"currentRoom"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RoomSummary is the denormalized slice of a room returned on player reads.
type RoomSummary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	TimeFlowRate float64 `json:"timeFlowRate"`
}

// PlayerView is a player with the current room joined in. Room is nil when
// the player's room record has gone missing.
type PlayerView struct {
	Player
	Room *RoomSummary `json:"room,omitempty"`
}

// RoomPatch carries a partial room update. Nil pointer fields are left
// untouched. Exits merge per direction into the stored map; an empty-string
// target removes that direction. Objects replaces the stored list when
// non-nil.
type RoomPatch struct {
	Name         *string
	Description  *string
	TimeFlowRate *float64
	Exits        map[string]string
	Objects      []string
}

// ValidateRoom normalizes a room record in place and reports the first
// schema violation. A zero TimeFlowRate means the caller omitted it and
// defaults to 1.
func ValidateRoom(r *Room) error {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	if r.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if r.Description == "" {
		return &ValidationError{Field: "description", Message: "description is required"}
	}
	if r.TimeFlowRate == 0 {
		r.TimeFlowRate = 1
	}
	if r.Exits == nil {
		r.Exits = map[string]string{}
	}
	for direction := range r.Exits {
		if strings.TrimSpace(direction) == "" {
			return &ValidationError{Field: "exits", Message: "exit direction must not be empty"}
		}
	}
	return nil
}

func ValidatePlayer(p *Player) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if p.CurrentRoom == "" {
		return &ValidationError{Field: "currentRoom", Message: "currentRoom is required"}
	}
	return nil
}

// MergeExits folds a patch into an existing exit map without dropping
// directions the patch does not mention. Empty-string targets delete.
func MergeExits(existing, patch map[string]string) map[string]string {
	merged := make(map[string]string, len(existing)+len(patch))
	for direction, target := range existing {
		merged[direction] = target
	}
	for direction, target := range patch {
		if target == "" {
			delete(merged, direction)
			continue
		}
		merged[direction] = target
	}
	return merged
}

// Summary returns the room fields joined into player reads.
func (r *Room) Summary() *RoomSummary {
	return &RoomSummary{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		TimeFlowRate: r.TimeFlowRate,
	}
}

// Clone deep-copies a room so store internals never alias caller state.
func (r *Room) Clone() *Room {
	dup := *r
	dup.Exits = make(map[string]string, len(r.Exits))
	for direction, target := range r.Exits {
		dup.Exits[direction] = target
	}
	if r.Objects != nil {
		dup.Objects = append([]string(nil), r.Objects...)
	}
	return &dup
}

func (p *Player) Clone() *Player {
	dup := *p
	return &dup
}
