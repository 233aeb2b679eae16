package mcp

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/policyatlas/internal/browse"
	"github.com/rpggio/policyatlas/internal/metrics"
)

// Config contains server configuration.
type Config struct {
	Summaries browse.SummarySource
	Details   browse.DetailSource
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
	// SessionTTL evicts browse sessions idle for longer; zero selects 30m.
	SessionTTL time.Duration
	Version    string
}

// Server exposes the browsing engine as MCP tools. Every MCP session gets
// its own browse.Session over one shared Store.
type Server struct {
	mcp      *sdkmcp.Server
	store    *browse.Store
	sessions *sessionRegistry
	cfg      Config
	logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	// Metrics methods are nil-safe, so a nil *Metrics observer is fine.
	engineOpts := []browse.Option{
		browse.WithLogger(logger),
		browse.WithObserver(cfg.Metrics),
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "policyatlas",
		Version: cfg.Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	s := &Server{
		mcp:    server,
		store:  browse.NewStore(engineOpts...),
		cfg:    cfg,
		logger: logger,
	}
	s.sessions = newSessionRegistry(cfg.SessionTTL, func() *browse.Session {
		return browse.NewSession(s.store, cfg.Details, engineOpts...)
	}, cfg.Metrics)

	registerDocResources(server)

	server.AddReceivingMiddleware(sessionMiddleware())
	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	registerTools(s)

	return s
}

// SDK returns the underlying MCP server.
func (s *Server) SDK() *sdkmcp.Server {
	return s.mcp
}

// Run serves a single MCP session over t until ctx is done or the client
// disconnects.
func (s *Server) Run(ctx context.Context, t sdkmcp.Transport) error {
	return s.mcp.Run(ctx, t)
}

// HTTPHandler serves MCP over streamable HTTP.
func (s *Server) HTTPHandler() http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return s.mcp },
		&sdkmcp.StreamableHTTPOptions{
			SessionTimeout: s.cfg.SessionTTL,
		},
	)
}

// Close releases every browse session.
func (s *Server) Close() {
	s.sessions.closeAll()
}

// session returns the browse session for the calling MCP session, loading
// the shared store on first use.
func (s *Server) session(ctx context.Context, req *sdkmcp.CallToolRequest) *browse.Session {
	s.store.Load(ctx, s.cfg.Summaries)
	return s.sessions.get(sessionKey(ctx, req))
}
