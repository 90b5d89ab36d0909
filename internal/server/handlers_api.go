package server

import (
	"log"
	"net/http"

	"chronos-terminal/internal/world"

	"github.com/gin-gonic/gin"
)

type createRoomRequest struct {
	Name         string            `json:"name" binding:"required"`
	Description  string            `json:"description" binding:"required"`
	TimeFlowRate float64           `json:"timeFlowRate"`
	Exits        map[string]string `json:"exits"`
	Objects      []string          `json:"objects"`
}

type updateRoomRequest struct {
	Name         *string           `json:"name"`
	Description  *string           `json:"description"`
	TimeFlowRate *float64          `json:"timeFlowRate"`
	Exits        map[string]string `json:"exits"`
	Objects      []string          `json:"objects"`
}

type createPlayerRequest struct {
	Name           string `json:"name" binding:"required"`
	StartingRoomID string `json:"startingRoomId" binding:"required"`
}

type moveRequest struct {
	PlayerID  string `json:"playerId" binding:"required"`
	Direction string `json:"direction" binding:"required"`
}

type roomURI struct {
	RoomID string `uri:"roomId" binding:"required"`
}

type playerURI struct {
	PlayerID string `uri:"playerId" binding:"required"`
}

func (s *Server) handleCreateRoom(c *gin.Context) {
	var req createRoomRequest
	if !bindJSON(c, &req, bindMessages{
		"Name":        {"required": "name is required"},
		"Description": {"required": "description is required"},
	}, "invalid room payload") {
		return
	}
	room := &world.Room{
		Name:         req.Name,
		Description:  req.Description,
		TimeFlowRate: req.TimeFlowRate,
		Exits:        req.Exits,
		Objects:      req.Objects,
	}
	if err := s.store.CreateRoom(room); err != nil {
		writeDomainError(c, err)
		return
	}
	log.Printf("room created room_id=%s name=%q", room.ID, room.Name)
	c.JSON(http.StatusCreated, room)
	s.ws.Broadcast(eventRoomCreated, gin.H{"room": room})
}

func (s *Server) handleGetRoom(c *gin.Context) {
	var uri roomURI
	if !bindURI(c, &uri) {
		return
	}
	room, err := s.store.GetRoom(uri.RoomID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (s *Server) handleUpdateRoom(c *gin.Context) {
	var uri roomURI
	if !bindURI(c, &uri) {
		return
	}
	var req updateRoomRequest
	if !bindJSON(c, &req, nil, "invalid room payload") {
		return
	}
	room, err := s.store.UpdateRoom(uri.RoomID, world.RoomPatch{
		Name:         req.Name,
		Description:  req.Description,
		TimeFlowRate: req.TimeFlowRate,
		Exits:        req.Exits,
		Objects:      req.Objects,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
	s.ws.Broadcast(eventRoomUpdated, gin.H{"room": room})
}

// handleMove walks the player through an exit of their current room. The
// roomId path segment is kept for API-shape compatibility; the authoritative
// source room is the player's stored location.
func (s *Server) handleMove(c *gin.Context) {
	var uri roomURI
	if !bindURI(c, &uri) {
		return
	}
	var req moveRequest
	if !bindJSON(c, &req, bindMessages{
		"PlayerID":  {"required": "playerId is required"},
		"Direction": {"required": "direction is required"},
	}, "invalid move payload") {
		return
	}
	result, err := s.nav.Move(req.PlayerID, req.Direction)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
	s.ws.Broadcast(eventPlayerMoved, gin.H{
		"playerId":  req.PlayerID,
		"direction": req.Direction,
		"room":      result.Room.Summary(),
	})
}

func (s *Server) handleCreatePlayer(c *gin.Context) {
	var req createPlayerRequest
	if !bindJSON(c, &req, bindMessages{
		"Name":           {"required": "name is required"},
		"StartingRoomID": {"required": "startingRoomId is required"},
	}, "invalid player payload") {
		return
	}
	player, err := s.nav.CreatePlayer(req.Name, req.StartingRoomID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	log.Printf("player created player_id=%s name=%q room_id=%s", player.ID, player.Name, player.CurrentRoom)
	c.JSON(http.StatusCreated, player)
	s.ws.Broadcast(eventPlayerCreated, gin.H{"player": player})
}

func (s *Server) handleGetPlayer(c *gin.Context) {
	var uri playerURI
	if !bindURI(c, &uri) {
		return
	}
	view, err := s.nav.DescribePlayer(uri.PlayerID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
