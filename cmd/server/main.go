package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/go-chi/chi/v5"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/policyatlas/internal/apiclient"
	"github.com/rpggio/policyatlas/internal/browse"
	"github.com/rpggio/policyatlas/internal/config"
	"github.com/rpggio/policyatlas/internal/domain/casestudy"
	"github.com/rpggio/policyatlas/internal/fixtures"
	"github.com/rpggio/policyatlas/internal/mcp"
	"github.com/rpggio/policyatlas/internal/metrics"
	"github.com/rpggio/policyatlas/internal/sqlite"
	"github.com/rpggio/policyatlas/internal/transport"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries what every command needs once flags are parsed.
type app struct {
	configPath    string
	transportMode string

	cfg     config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	closers []func() error
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "policyatlas",
		Short:        "Browse AI policy case studies",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.close()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file (overrides POLICYATLAS_CONFIG_PATH)")

	root.AddCommand(
		newAPICmd(a),
		newMCPCmd(a),
		newServeCmd(a),
		newSeedCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if a.transportMode != "" {
		cfg.Transport.Mode = a.transportMode
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	a.cfg = cfg

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cmd.Name() == "mcp" && cfg.Transport.Mode == config.ModeStdio {
		logWriter = os.Stderr
	}
	if logPath := os.Getenv("POLICYATLAS_LOG_PATH"); logPath != "" {
		sink, err := openCappedLog(logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			a.closers = append(a.closers, sink.Close)
			logWriter = sink
		}
	}
	a.logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	a.metrics = metrics.New()
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
	a.closers = nil
}

func newAPICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "api",
		Short: "Serve the case study record service over REST",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := shutdownContext(cmd.Context(), a.logger)
			defer cancel()

			svc, err := a.openService(ctx, true)
			if err != nil {
				return err
			}
			return transport.ListenAndServe(ctx, a.restAddr(), a.restRouter(svc), a.logger)
		},
	}
}

func newMCPCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the browsing engine over MCP",
		Long:  `Serve the browsing engine over MCP, on stdio or streamable HTTP.

The engine reads case studies from the REST record service at api.base_url
when it is set, and from the local database otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := shutdownContext(cmd.Context(), a.logger)
			defer cancel()

			server, err := a.mcpServer(ctx)
			if err != nil {
				return err
			}
			defer server.Close()

			if a.cfg.Transport.Mode == config.ModeStdio {
				a.logger.Info("starting stdio transport")
				// Run blocks until stdin closes or ctx is cancelled.
				if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
					return fmt.Errorf("stdio server: %w", err)
				}
				return nil
			}
			return transport.ListenAndServe(ctx, a.mcpAddr(), a.mcpRouter(server), a.logger)
		},
	}
	cmd.Flags().StringVar(&a.transportMode, "transport", "", "override transport.mode (stdio or http)")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST record service and the MCP browsing engine over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := shutdownContext(cmd.Context(), a.logger)
			defer cancel()

			svc, err := a.openService(ctx, true)
			if err != nil {
				return err
			}

			// The co-hosted engine reads the same service in-process unless
			// a remote record service is configured.
			server, err := a.mcpServerFor(svc)
			if err != nil {
				return err
			}
			defer server.Close()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return transport.ListenAndServe(gctx, a.restAddr(), a.restRouter(svc), a.logger.With("server", "rest"))
			})
			g.Go(func() error {
				return transport.ListenAndServe(gctx, a.mcpAddr(), a.mcpRouter(server), a.logger.With("server", "mcp"))
			})
			return g.Wait()
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "seed [file]",
		Short: "Import case studies from a YAML file, or the bundled set when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if watch && len(args) == 0 {
				return fmt.Errorf("--watch needs a fixtures file")
			}

			var (
				details []casestudy.Detail
				err     error
			)
			if len(args) == 1 {
				details, err = fixtures.LoadFile(args[0])
			} else {
				details, err = fixtures.Seed()
			}
			if err != nil {
				return err
			}

			svc, err := a.openService(ctx, false)
			if err != nil {
				return err
			}
			n, err := svc.Import(ctx, details)
			if err != nil {
				return fmt.Errorf("imported %d of %d case studies: %w", n, len(details), err)
			}
			a.logger.Info("case studies imported", "count", n, "db", a.cfg.DB.Path)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d case studies\n", n)

			if !watch {
				return nil
			}
			ctx, cancel := shutdownContext(ctx, a.logger)
			defer cancel()
			return fixtures.NewWatcher(args[0], 0, func(ctx context.Context, details []casestudy.Detail) error {
				_, err := svc.Import(ctx, details)
				return err
			}, a.logger).Run(ctx)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "keep running and re-import the file whenever it changes")
	return cmd
}

// openService opens the database, applies migrations and, when seedEmpty
// is set, imports the bundled fixtures into an empty database.
func (a *app) openService(ctx context.Context, seedEmpty bool) (*casestudy.Service, error) {
	if err := ensureDBDir(a.cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(a.cfg.DB.Path)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, db.Close)

	if err := db.RunMigrations(); err != nil {
		return nil, err
	}

	svc := casestudy.NewService(sqlite.NewCaseStudyRepository(db), a.logger)
	if seedEmpty {
		if err := seedIfEmpty(ctx, svc, a.logger); err != nil {
			return nil, err
		}
	}
	return svc, nil
}

func seedIfEmpty(ctx context.Context, svc *casestudy.Service, logger *slog.Logger) error {
	n, err := svc.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	details, err := fixtures.Seed()
	if err != nil {
		return err
	}
	imported, err := svc.Import(ctx, details)
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}
	logger.Info("seeded empty database", "count", imported)
	return nil
}

// mcpServer builds the MCP server over the configured record source.
func (a *app) mcpServer(ctx context.Context) (*mcp.Server, error) {
	if a.cfg.API.BaseURL != "" {
		return a.mcpServerFor(nil)
	}
	svc, err := a.openService(ctx, true)
	if err != nil {
		return nil, err
	}
	return a.mcpServerFor(svc)
}

// mcpServerFor uses the remote record service when api.base_url is set and
// local otherwise.
func (a *app) mcpServerFor(local *casestudy.Service) (*mcp.Server, error) {
	var (
		summaries browse.SummarySource = local
		details   browse.DetailSource  = local
	)
	if a.cfg.API.BaseURL != "" {
		client, err := apiclient.New(a.cfg.API.BaseURL, a.cfg.API.Timeout)
		if err != nil {
			return nil, err
		}
		a.logger.Info("reading case studies from record service", "base_url", a.cfg.API.BaseURL)
		summaries, details = client, client
	}
	return mcp.NewServer(mcp.Config{
		Summaries: summaries,
		Details:   details,
		Metrics:   a.metrics,
		Logger:    a.logger,
		Version:   version,
	}), nil
}

func (a *app) restRouter(svc *casestudy.Service) *chi.Mux {
	return transport.NewServer(transport.Config{
		Service: svc,
		Metrics: a.metrics,
		Logger:  a.logger,
	})
}

func (a *app) mcpRouter(server *mcp.Server) *chi.Mux {
	return transport.NewMCPRouter(server.HTTPHandler(), a.metrics, a.logger)
}

func (a *app) restAddr() string {
	return net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(a.cfg.Server.Port))
}

func (a *app) mcpAddr() string {
	return net.JoinHostPort(a.cfg.Transport.Host, strconv.Itoa(a.cfg.Transport.Port))
}

// shutdownContext is cancelled on SIGINT or SIGTERM.
func shutdownContext(parent context.Context, logger *slog.Logger) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(stop)
		select {
		case <-stop:
			logger.Info("shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
