// Package mcp exposes the policy assistant to AI agents over the Model
// Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/Abdul234Malik/NELFUND/internal/agent"
	"github.com/Abdul234Malik/NELFUND/internal/vectordb"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes student loan policy tools.
type Server struct {
	pipeline *agent.Pipeline
	store    vectordb.VectorStore
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(pipeline *agent.Pipeline, store vectordb.VectorStore) *Server {
	s := &Server{
		pipeline: pipeline,
		store:    store,
	}

	s.mcp = server.NewMCPServer(
		"nelfund",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(askTool, s.handleAsk)
	s.mcp.AddTool(searchDocumentsTool, s.handleSearchDocuments)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
