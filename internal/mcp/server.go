package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/hashline-mcp/internal/history"
)

const (
	// ServerName is the MCP server name
	ServerName = "hashline-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
	// DefaultDBPath is the default location for the edit journal
	DefaultDBPath = "~/.hashline/journal"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp     *server.MCPServer
	history history.Store // nil when journaling is disabled
}

// NewServer creates a new MCP server instance. An empty dbPath disables the
// edit journal; read and edit behavior is identical either way.
func NewServer(dbPath string) (*Server, error) {
	var store history.Store
	if dbPath != "" {
		// Expand home directory if needed
		if dbPath == DefaultDBPath {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get home directory: %w", err)
			}
			dbPath = filepath.Join(home, ".hashline", "journal")
		}

		if err := os.MkdirAll(dbPath, 0755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}

		dbFile := filepath.Join(dbPath, "hashline.db")
		s, err := history.NewSQLiteStore(dbFile)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize edit journal: %w", err)
		}
		store = s
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:     mcpServer,
		history: store,
	}

	s.registerTools()

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer s.closeHistory()
	return server.ServeStdio(s.mcp)
}

func (s *Server) closeHistory() {
	if s.history != nil {
		_ = s.history.Close()
	}
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(readTool(), s.handleRead)
	s.mcp.AddTool(editTool(), s.handleEdit)
	s.mcp.AddTool(historyTool(), s.handleHistory)
}
