package world

// Store is the record contract the navigation layer runs on: create, get
// and update by id, nothing more. Referential checks between players and
// rooms belong to Nav, not the store.
type Store interface {
	// CreateRoom validates the record, allocates its id and persists it.
	// Fails with ErrDuplicateName when the name is taken.
	CreateRoom(room *Room) error
	GetRoom(id string) (*Room, error)
	// UpdateRoom merges a patch into the stored record. Exit entries merge
	// per direction (see MergeExits).
	UpdateRoom(id string, patch RoomPatch) (*Room, error)

	CreatePlayer(player *Player) error
	GetPlayer(id string) (*Player, error)
	// SetPlayerRoom writes the player's location as a single all-or-nothing
	// update.
	SetPlayerRoom(playerID, roomID string) error
}
