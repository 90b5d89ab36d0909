package world

import (
	"errors"
	"fmt"
)

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrDuplicateName  = errors.New("room name already in use")
)

// ValidationError reports a malformed or missing input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InvalidMoveError is the expected gameplay outcome of walking into a wall:
// the player's room has no exit with that label.
type InvalidMoveError struct {
	Direction string
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("Cannot move %s from here.", e.Direction)
}

// DanglingExitError reports referential breakage in the room graph: an exit
// (or the player's own current-room pointer, when Direction is empty) names
// a room that no longer exists. Unlike InvalidMoveError this is world-data
// corruption, not player error.
type DanglingExitError struct {
	RoomID    string
	Direction string
}

func (e *DanglingExitError) Error() string {
	if e.Direction == "" {
		return fmt.Sprintf("current room %s does not exist", e.RoomID)
	}
	return "Target room does not exist."
}
