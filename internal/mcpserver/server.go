// Package mcpserver exposes the onboarding wizard as MCP tools so agents and
// scripts can drive it without a terminal.
package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mark3labs/onboardr/internal/logger"
	"github.com/mark3labs/onboardr/internal/onboarding"
)

// DefaultAddr listens on a random loopback port.
const DefaultAddr = "127.0.0.1:0"

// Server manages an embedded MCP HTTP server driving one wizard session.
type Server struct {
	driver     *onboarding.Driver
	addr       string
	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
	stdServer  *http.Server
	listenAddr net.Addr
	mu         sync.Mutex
}

// New creates a server for driver. The server is not started until Start
// is called. An empty addr means DefaultAddr.
func New(driver *onboarding.Driver, addr string) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Server{driver: driver, addr: addr}
}

// newMCPServer builds the MCP server with every tool registered.
func (s *Server) newMCPServer() *server.MCPServer {
	mcpServer := server.NewMCPServer(
		"onboardr",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	s.registerTools(mcpServer)
	return mcpServer
}

// Start listens on the configured address and serves /mcp in the
// background. It returns the bound port.
func (s *Server) Start(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer != nil {
		return 0, fmt.Errorf("server already started")
	}

	s.mcpServer = s.newMCPServer()

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return 0, fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listenAddr = listener.Addr()

	mux := http.NewServeMux()
	mcpHandler := server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	)
	mux.Handle("/mcp", mcpHandler)

	s.stdServer = &http.Server{Handler: mux}
	s.httpServer = mcpHandler

	stdServer := s.stdServer
	go func() {
		if err := stdServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("MCP server error: %v", err)
		}
	}()

	port := listener.Addr().(*net.TCPAddr).Port
	logger.Debug("MCP server ready on port %d", port)
	return port, nil
}

// Stop stops the HTTP server.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer == nil {
		return nil
	}

	logger.Debug("Stopping MCP server")
	if err := s.stdServer.Shutdown(context.Background()); err != nil {
		logger.Warn("Error stopping MCP server: %v", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}

	s.httpServer = nil
	s.stdServer = nil
	s.mcpServer = nil
	return nil
}

// URL returns the HTTP URL for the MCP endpoint, or "" before Start.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listenAddr == nil {
		return ""
	}
	return fmt.Sprintf("http://%s/mcp", s.listenAddr.String())
}
