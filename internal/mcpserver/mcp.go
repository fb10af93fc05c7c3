// Package mcpserver exposes the analyzer as MCP tools over stdio.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/aristath/taskrank/internal/analysis"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// New creates an MCP server with the taskrank tools registered.
func New(analyzer *analysis.Analyzer) *server.MCPServer {
	s := server.NewMCPServer(
		"taskrank",
		Version,
		server.WithToolCapabilities(true),
	)

	registerTools(s, analyzer)

	return s
}

// Serve runs the server on stdin/stdout until the client disconnects.
func Serve(analyzer *analysis.Analyzer) error {
	return server.ServeStdio(New(analyzer))
}
