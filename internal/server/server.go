package server

import (
	"net/http"

	"chronos-terminal/internal/config"
	"chronos-terminal/internal/world"

	"github.com/gin-gonic/gin"
)

type Server struct {
	store world.Store
	nav   *world.Nav
	cfg   config.Config
	ws    *worldHub
}

func New(store world.Store, cfg config.Config) *Server {
	return &Server{
		store: store,
		nav:   world.NewNav(store),
		cfg:   cfg,
		ws:    newWorldHub(),
	}
}

// Handler builds the full route table. Returned as http.Handler so tests
// can mount it on httptest servers directly.
func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Chronos Terminal API is running...")
	})

	rooms := router.Group("/api/rooms")
	rooms.POST("", s.handleCreateRoom)
	rooms.GET("/:roomId", s.handleGetRoom)
	rooms.PUT("/:roomId", s.handleUpdateRoom)
	rooms.POST("/:roomId/move", s.handleMove)

	player := router.Group("/api/player")
	player.POST("", s.handleCreatePlayer)
	player.GET("/:playerId", s.handleGetPlayer)

	router.GET("/ws/world", s.handleWorldWebsocket)

	return router
}
