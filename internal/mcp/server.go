package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dgallion1/citeshield/internal/sections"
	"github.com/dgallion1/citeshield/internal/stats"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Ports holds what the server reads from. Stats and Log are optional.
type Ports struct {
	Store *sections.Store
	Stats *stats.Recorder
	Log   *slog.Logger
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Store == nil {
		return ErrMissingStore
	}
	return nil
}

// Server is the MCP server for one brief.
type Server struct {
	ports  *Ports
	log    *slog.Logger
	server *mcp.Server
}

// NewServer creates a new MCP server over the given section store.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	log := ports.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	impl := &mcp.Implementation{
		Name:    "citeshield",
		Version: Version,
	}

	s := &Server{
		ports:  ports,
		log:    log.With("brief", ports.Store.Name()),
		server: mcp.NewServer(impl, nil),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("mcp server starting", "transport", "stdio", "sections", s.ports.Store.Len())
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over streamable HTTP on addr.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	s.log.Info("mcp server starting", "transport", "http", "addr", addr, "sections", s.ports.Store.Len())
	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
