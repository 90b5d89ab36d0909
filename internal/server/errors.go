package server

import (
	"errors"
	"log"
	"net/http"

	"chronos-terminal/internal/world"

	"github.com/gin-gonic/gin"
)

// Error codes let operators and clients tell failure kinds apart without
// parsing messages. dangling_exit in particular shares a 404 status with
// not_found but signals broken world data rather than bad input.
const (
	codeValidation    = "validation"
	codeDuplicateName = "duplicate_name"
	codeNotFound      = "not_found"
	codeInvalidMove   = "invalid_move"
	codeDanglingExit  = "dangling_exit"
	codeInternal      = "internal"
)

// writeDomainError maps world errors onto the HTTP surface. Invalid moves
// are expected gameplay and never logged; dangling exits are logged so
// operators can spot graph corruption.
func writeDomainError(c *gin.Context, err error) {
	var verr *world.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "code": codeValidation})
		return
	}
	if errors.Is(err, world.ErrDuplicateName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": codeDuplicateName})
		return
	}
	if errors.Is(err, world.ErrRoomNotFound) || errors.Is(err, world.ErrPlayerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": codeNotFound})
		return
	}
	var invalid *world.InvalidMoveError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error(), "code": codeInvalidMove})
		return
	}
	var dangling *world.DanglingExitError
	if errors.As(err, &dangling) {
		log.Printf("dangling exit room_id=%s direction=%q", dangling.RoomID, dangling.Direction)
		c.JSON(http.StatusNotFound, gin.H{"error": "Target room does not exist.", "code": codeDanglingExit})
		return
	}
	log.Printf("store error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "code": codeInternal})
}
