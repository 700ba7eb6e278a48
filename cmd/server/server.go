package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/spell-cards/internal/handlers/web"
)

// storeService is the health service name reporting spell book store reachability
const storeService = "spellcards.SpellBookStore"

const storeCheckInterval = 15 * time.Second

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the web and health servers",
	Long:  `Serve the spell book web editor over HTTP and a gRPC health service reporting store reachability.`,
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	handler, err := web.NewHandler(&web.HandlerConfig{
		Book:           a.book,
		Editor:         a.editor,
		SRDImport:      a.srd != nil,
		Logger:         slog.Default(),
		RequestTimeout: cfg.RequestTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create web handler: %w", err)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("HTTP server starting on port %d...", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve http: %w", err)
		}
		return nil
	})

	var grpcServer *grpc.Server
	if cfg.GRPCPort > 0 {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
		if err != nil {
			return fmt.Errorf("failed to listen: %w", err)
		}

		grpcServer = newGRPCServer(slog.Default())
		healthServer := health.NewServer()
		grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
		reflection.Register(grpcServer)

		g.Go(func() error {
			log.Printf("gRPC health server starting on port %d...", cfg.GRPCPort)
			if err := grpcServer.Serve(lis); err != nil {
				return fmt.Errorf("failed to serve grpc: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			watchStore(gctx, a.bookRepo, healthServer, storeCheckInterval)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down servers...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if grpcServer != nil {
			stopped := make(chan struct{})
			go func() {
				grpcServer.GracefulStop()
				close(stopped)
			}()

			select {
			case <-shutdownCtx.Done():
				log.Println("Graceful shutdown timeout exceeded, forcing gRPC stop")
				grpcServer.Stop()
			case <-stopped:
			}
		}

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down http: %w", err)
		}
		log.Println("Servers stopped gracefully")
		return nil
	})

	return g.Wait()
}

func newGRPCServer(logger *slog.Logger) *grpc.Server {
	recoveryOpt := grpc_recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
		logger.ErrorContext(ctx, "panic in grpc handler", "panic", p)
		return status.Error(codes.Internal, "internal error")
	})

	return grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(interceptorLogger(logger)),
			grpc_recovery.UnaryServerInterceptor(recoveryOpt),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(interceptorLogger(logger)),
			grpc_recovery.StreamServerInterceptor(recoveryOpt),
		),
	)
}

// interceptorLogger adapts slog to the grpc middleware logger
func interceptorLogger(logger *slog.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
		logger.Log(ctx, slog.Level(level), msg, fields...)
	})
}

// pinger reports whether a store is reachable
type pinger interface {
	Ping(ctx context.Context) error
}

// statusSetter is the part of the health server the store watch updates
type statusSetter interface {
	SetServingStatus(service string, servingStatus grpc_health_v1.HealthCheckResponse_ServingStatus)
}

// watchStore updates the health status from store pings until ctx is done
func watchStore(ctx context.Context, store pinger, setter statusSetter, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		checkStore(ctx, store, setter)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func checkStore(ctx context.Context, store pinger, setter statusSetter) {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	servingStatus := grpc_health_v1.HealthCheckResponse_SERVING
	if err := store.Ping(pingCtx); err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.WarnContext(ctx, "spell book store unreachable", "error", err)
		servingStatus = grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}

	setter.SetServingStatus("", servingStatus)
	setter.SetServingStatus(storeService, servingStatus)
}
