// ABOUTME: MCP server setup for the gymtrack workout store.
// ABOUTME: Wraps the MCP server with storage and the active workout session.
package mcp

import (
	"context"
	"time"

	"github.com/harperreed/gymtrack/internal/models"
	"github.com/harperreed/gymtrack/internal/program"
	"github.com/harperreed/gymtrack/internal/session"
	"github.com/harperreed/gymtrack/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage and session access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	session   *session.Session
	unit      models.WeightUnit
	programs  program.State
	now       func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithUnit sets the weight unit used in tool messages.
func WithUnit(u models.WeightUnit) Option {
	return func(s *Server) {
		s.unit = u
	}
}

// WithPrograms enables the training program tools over the given state.
func WithPrograms(state program.State) Option {
	return func(s *Server) {
		s.programs = state
	}
}

// NewServer creates a new MCP server over the given storage and session.
func NewServer(repo storage.Repository, sess *session.Session, opts ...Option) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "gymtrack",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		session:   sess,
		unit:      models.UnitKg,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
