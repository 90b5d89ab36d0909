package world

import "fmt"

// Nav resolves movement through the room graph and performs the joined
// reads the store itself stays too minimal for.
type Nav struct {
	store Store
}

func NewNav(store Store) *Nav {
	return &Nav{store: store}
}

// MoveResult is what a successful move hands back to the client: the full
// target room and a human-readable transition line.
type MoveResult struct {
	Message string `json:"message"`
	Room    *Room  `json:"room"`
}

// CreatePlayer spawns a player in startingRoomID. The room must exist; no
// player record is written when it does not.
func (n *Nav) CreatePlayer(name, startingRoomID string) (*Player, error) {
	if startingRoomID == "" {
		return nil, &ValidationError{Field: "startingRoomId", Message: "startingRoomId is required"}
	}
	if _, err := n.store.GetRoom(startingRoomID); err != nil {
		return nil, err
	}
	player := &Player{Name: name, CurrentRoom: startingRoomID}
	if err := n.store.CreatePlayer(player); err != nil {
		return nil, err
	}
	return player, nil
}

// DescribePlayer reads a player with the current room summary joined in.
// A missing room leaves the summary nil rather than failing the read.
func (n *Nav) DescribePlayer(playerID string) (*PlayerView, error) {
	player, err := n.store.GetPlayer(playerID)
	if err != nil {
		return nil, err
	}
	view := &PlayerView{Player: *player}
	room, err := n.store.GetRoom(player.CurrentRoom)
	if err == nil {
		view.Room = room.Summary()
	}
	return view, nil
}

// Move walks a player through the labeled exit. The traversal order is
// player -> current room -> exit -> target room; the location write happens
// only after every hop resolves, so any failure leaves the player where
// they were.
func (n *Nav) Move(playerID, direction string) (*MoveResult, error) {
	player, err := n.store.GetPlayer(playerID)
	if err != nil {
		return nil, err
	}

	current, err := n.store.GetRoom(player.CurrentRoom)
	if err != nil {
		// The player's own pointer dangles. Data fault, not user error.
		return nil, &DanglingExitError{RoomID: player.CurrentRoom}
	}

	targetID, ok := current.Exits[direction]
	if !ok || targetID == "" {
		return nil, &InvalidMoveError{Direction: direction}
	}

	target, err := n.store.GetRoom(targetID)
	if err != nil {
		return nil, &DanglingExitError{RoomID: targetID, Direction: direction}
	}

	if err := n.store.SetPlayerRoom(player.ID, target.ID); err != nil {
		return nil, err
	}

	return &MoveResult{
		Message: fmt.Sprintf("Moved %s to %s", direction, target.Name),
		Room:    target,
	}, nil
}
