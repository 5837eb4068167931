package handlers

import (
	"github.com/bazaar-dev/bazaar/internal/events"
	"github.com/bazaar-dev/bazaar/internal/media"
	"github.com/gin-gonic/gin"
)

// Server carries the dependencies shared by the store and admin handlers.
type Server struct {
	Media   *media.Storage
	Hub     *events.Hub
	Origins []string
}

func NewServer(storage *media.Storage, hub *events.Hub, origins []string) *Server {
	return &Server{Media: storage, Hub: hub, Origins: origins}
}

// imageURL returns a function resolving stored media paths to absolute URLs
// for the current request.
func (s *Server) imageURL(ctx *gin.Context) func(string) string {
	scheme := "http"

	if ctx.Request.TLS != nil {
		scheme = "https"
	}

	if proto := ctx.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	host := ctx.Request.Host

	return func(name string) string {
		return s.Media.AbsoluteURL(scheme, host, name)
	}
}
