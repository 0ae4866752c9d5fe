package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/rpg-initiative/internal/config"
	"github.com/KirkDiggler/rpg-initiative/internal/errors"
	httpv1 "github.com/KirkDiggler/rpg-initiative/internal/handlers/http/v1"
	"github.com/KirkDiggler/rpg-initiative/internal/notify"
	"github.com/KirkDiggler/rpg-initiative/internal/orchestrators/initiative"
	"github.com/KirkDiggler/rpg-initiative/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-initiative/internal/redis"
	"github.com/KirkDiggler/rpg-initiative/internal/repositories/catalog"
	"github.com/KirkDiggler/rpg-initiative/internal/repositories/combatants"
	"github.com/KirkDiggler/rpg-initiative/internal/repositories/roster"
	"github.com/KirkDiggler/rpg-initiative/internal/sqlite"
	"github.com/KirkDiggler/rpg-initiative/internal/telemetry"
)

const serviceName = "rpg-initiative"

var (
	httpPort   int
	grpcPort   int
	sqlitePath string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the tracker server",
	Long: `Start the HTTP API (with websocket event streams) and the gRPC health
endpoint. Settings come from RPG_INITIATIVE_* environment variables; flags
override them.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().IntVar(&httpPort, "http-port", 0, "HTTP API port (overrides RPG_INITIATIVE_HTTP_PORT)")
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC health port (overrides RPG_INITIATIVE_GRPC_PORT)")
	serverCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "campaign database path (overrides RPG_INITIATIVE_SQLITE_PATH)")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if httpPort != 0 {
		cfg.HTTPPort = httpPort
	}
	if grpcPort != 0 {
		cfg.GRPCPort = grpcPort
	}
	if sqlitePath != "" {
		cfg.SQLitePath = sqlitePath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServer(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	slog.SetDefault(cfg.Logger())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{ServiceName: serviceName, Endpoint: cfg.OTELEndpoint})
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}

	redisClient, err := redis.NewClient(cfg.RedisAddr, &redis.Options{DB: cfg.RedisDB, UseTLS: cfg.RedisTLS})
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	err = redis.Ping(pingCtx, redisClient)
	cancelPing()
	if err != nil {
		return err
	}

	db, err := sqlite.Open(ctx, cfg.SQLitePath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	orchestrator, bus, err := buildOrchestrator(redisClient, db)
	if err != nil {
		return err
	}

	handler, err := httpv1.NewHandler(&httpv1.HandlerConfig{
		Service:       orchestrator,
		Notifications: bus,
		JWTSecret:     cfg.JWTSecret,
	})
	if err != nil {
		return fmt.Errorf("failed to create http handler: %w", err)
	}
	if cfg.JWTSecret == "" {
		slog.WarnContext(ctx, "no JWT secret configured, HTTP API is unauthenticated")
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer, healthServer := newGRPCServer()
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	errChan := make(chan error, 2)
	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server: %w", err)
		}
	}()
	go func() {
		slog.InfoContext(ctx, "grpc server starting", "port", cfg.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			errChan <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		slog.Info("received shutdown signal, gracefully stopping")
	case serveErr = <-errChan:
		slog.Error("server failed", "error", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	healthServer.Shutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown incomplete", "error", err)
	}

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-shutdownCtx.Done():
		slog.Warn("graceful shutdown timeout exceeded, forcing stop")
		grpcServer.Stop()
	case <-stopped:
	}

	if err := orchestrator.Shutdown(shutdownCtx); err != nil {
		slog.Warn("tracker sessions did not stop cleanly", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Warn("failed to flush traces", "error", err)
	}

	slog.Info("server stopped")
	return serveErr
}

func buildOrchestrator(redisClient redis.Client, db *sql.DB) (initiative.Service, *notify.Bus, error) {
	combatantRepo, err := combatants.NewRedis(&combatants.RedisConfig{Client: redisClient})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create combatant repository: %w", err)
	}
	statusRepo, err := combatants.NewRedisStatus(&combatants.RedisConfig{Client: redisClient})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create status repository: %w", err)
	}
	catalogRepo, err := catalog.NewSQLite(&catalog.SQLiteConfig{DB: db})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create catalog repository: %w", err)
	}
	rosterRepo, err := roster.NewSQLite(&roster.SQLiteConfig{DB: db})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create roster repository: %w", err)
	}

	bus, err := notify.New(&notify.Config{EventBus: events.NewBus()})
	if err != nil {
		return nil, nil, err
	}

	orchestrator, err := initiative.NewOrchestrator(&initiative.Config{
		Combatants:  combatantRepo,
		Statuses:    statusRepo,
		Catalog:     catalogRepo,
		Roster:      rosterRepo,
		Notifier:    bus,
		IDGenerator: idgen.NewUUID(""),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create initiative orchestrator: %w", err)
	}

	return orchestrator, bus, nil
}

func newGRPCServer() (*grpc.Server, *health.Server) {
	recoveryOpt := grpc_recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
		slog.ErrorContext(ctx, "recovered from panic", "panic", p)
		return errors.ToGRPCError(errors.Internalf("panic: %v", p))
	})

	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(recoveryOpt),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(recoveryOpt),
		),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)
	return srv, healthServer
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
