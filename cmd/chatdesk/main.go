package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/jackc/pgx/v5/pgxpool"

	migrations "github.com/kingauto/chatdesk/db"
	"github.com/kingauto/chatdesk/internal/admins"
	"github.com/kingauto/chatdesk/internal/cases"
	"github.com/kingauto/chatdesk/internal/channels"
	"github.com/kingauto/chatdesk/internal/config"
	"github.com/kingauto/chatdesk/internal/conversation"
	"github.com/kingauto/chatdesk/internal/db"
	dbsqlc "github.com/kingauto/chatdesk/internal/db/sqlc"
	"github.com/kingauto/chatdesk/internal/handlers"
	"github.com/kingauto/chatdesk/internal/line"
	"github.com/kingauto/chatdesk/internal/logger"
	"github.com/kingauto/chatdesk/internal/realtime"
	"github.com/kingauto/chatdesk/internal/server"
	"github.com/kingauto/chatdesk/internal/templates"
	"github.com/kingauto/chatdesk/internal/version"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "chatdesk",
	Short: "Multi-account LINE OA support desk",
	Long:  "Chatdesk receives LINE Official Account webhooks, groups customer messages into cases, and serves the admin console API with realtime updates.",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server",
	Run: func(cmd *cobra.Command, args []string) {
		runServe()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down|version|force]",
	Short: "Run database migrations",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger.Init(cfg.Log.Level, cfg.Log.Format)
		return db.RunMigrate(logger.L, cfg.Postgres, migrations.MigrationsFS, args[0], args[1:])
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.toml (or CONFIG_PATH env)")
	rootCmd.AddCommand(serveCmd, migrateCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func runServe() {
	fx.New(
		fx.Provide(
			loadConfig,
			provideLogger,

			provideDBConn,
			provideDBQueries,

			realtime.NewHub,
			cases.NewService,
			admins.NewService,
			channels.NewService,
			templates.NewService,
			line.NewClient,
			fx.Annotate(func(client *line.Client) conversation.ReplySender {
				return client
			}, fx.As(new(conversation.ReplySender))),
			conversation.NewService,

			provideServerHandler(handlers.NewPingHandler),
			provideServerHandler(provideAuthHandler),
			provideServerHandler(handlers.NewCasesHandler),
			provideServerHandler(handlers.NewMessagesHandler),
			provideServerHandler(handlers.NewStreamHandler),
			provideServerHandler(handlers.NewWebhookHandler),
			provideServerHandler(handlers.NewChannelsHandler),
			provideServerHandler(handlers.NewTemplatesHandler),
			provideServerHandler(handlers.NewAdminsHandler),

			provideServer,
		),
		fx.Invoke(
			startServer,
		),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
		}),
	).Run()
}

func provideServerHandler(fn any) any {
	return fx.Annotate(
		fn,
		fx.As(new(server.Handler)),
		fx.ResultTags(`group:"server_handlers"`),
	)
}

func provideDBConn(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	conn, err := db.Open(context.Background(), cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			conn.Close()
			return nil
		},
	})
	return conn, nil
}

func provideDBQueries(conn *pgxpool.Pool) *dbsqlc.Queries {
	return dbsqlc.New(conn)
}

func provideAuthHandler(log *slog.Logger, adminService *admins.Service, cfg config.Config) (*handlers.AuthHandler, error) {
	expiresIn, err := cfg.Auth.ExpiresIn()
	if err != nil {
		return nil, fmt.Errorf("parse jwt_expires_in: %w", err)
	}
	return handlers.NewAuthHandler(log, adminService, cfg.Auth.JWTSecret, expiresIn), nil
}

type serverParams struct {
	fx.In

	Logger         *slog.Logger
	Config         config.Config
	ServerHandlers []server.Handler `group:"server_handlers"`
}

func provideServer(params serverParams) *server.Server {
	return server.NewServer(params.Logger, params.Config.Server.Addr, params.Config.Auth.JWTSecret, params.ServerHandlers...)
}

func startServer(
	lc fx.Lifecycle,
	logger *slog.Logger,
	srv *server.Server,
	shutdowner fx.Shutdowner,
	cfg config.Config,
	adminService *admins.Service,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting chatdesk", slog.String("version", version.String()), slog.String("addr", cfg.Server.Addr))

			if err := adminService.EnsureSeedAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
				return err
			}

			go func() {
				if err := srv.Start(); err != nil { // block until server is stopped
					logger.Error("server failed", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Stop(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server stop: %w", err)
			}
			return nil
		},
	})
}
