package db

import (
	"time"

	"gorm.io/datatypes"
)

type Room struct {
	ID           string            `gorm:"primaryKey;size:36"`
	Name         string            `gorm:"size:128;uniqueIndex;not null"`
	Description  string            `gorm:"not null"`
	TimeFlowRate float64           `gorm:"not null;default:1"`
	Exits        datatypes.JSONMap `gorm:"not null"`
	Objects      datatypes.JSON
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// Player carries current_room_id as a plain column, not a foreign key:
// a room vanishing under a player is a runtime condition the navigation
// layer reports, not something the schema forbids.
type Player struct {
	ID            string    `gorm:"primaryKey;size:36"`
	Name          string    `gorm:"size:64;not null"`
	CurrentRoomID string    `gorm:"size:36;not null;index"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}
