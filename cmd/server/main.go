package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/Xausdorf/swiss-qr-bill/api/qrbillpb"
	grpchandler "github.com/Xausdorf/swiss-qr-bill/internal/delivery/grpc"
	httpdelivery "github.com/Xausdorf/swiss-qr-bill/internal/delivery/http"
	"github.com/Xausdorf/swiss-qr-bill/internal/domain/repository"
	"github.com/Xausdorf/swiss-qr-bill/internal/infrastructure/config"
	"github.com/Xausdorf/swiss-qr-bill/internal/infrastructure/inmemory"
	"github.com/Xausdorf/swiss-qr-bill/internal/infrastructure/postgres"
	"github.com/Xausdorf/swiss-qr-bill/internal/infrastructure/qrgenerator"
	"github.com/Xausdorf/swiss-qr-bill/internal/infrastructure/telemetry"
	"github.com/Xausdorf/swiss-qr-bill/internal/usecase/generateqr"
	"github.com/Xausdorf/swiss-qr-bill/internal/usecase/sharelink"
)

const (
	serviceName           = "swiss-qr-bill"
	readHeaderTimeout     = 5 * time.Second
	gracefulShutdownDelay = 5 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger); err != nil {
		logger.Error("server failed", "error", err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("tracing shutdown failed", "error", err)
		}
	}()

	uow, closeStore, err := openStore(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	qrGen := qrgenerator.NewGenerator(cfg.QRSize, cfg.QRQuietZone)
	generateQRUC := generateqr.NewUseCase(qrGen)
	shareLinkUC := sharelink.NewUseCase(uow)

	handler := httpdelivery.NewHandler(generateQRUC, shareLinkUC, cfg.PublicBaseURL, cfg.QRPNGSize)
	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpdelivery.NewRouter(handler),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	grpcSrv := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	qrbillpb.RegisterBillRendererServer(grpcSrv, grpchandler.NewHandler(generateQRUC))
	reflection.Register(grpcSrv)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("gRPC server starting", "addr", cfg.GRPCAddr)
		return grpcSrv.Serve(lis)
	})

	g.Go(func() error {
		logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownDelay)
		defer shutdownCancel()
		_ = httpSrv.Shutdown(shutdownCtx)
		grpcSrv.GracefulStop()
		return nil
	})

	return g.Wait()
}

func openStore(ctx context.Context, databaseURL string, logger *slog.Logger) (repository.UnitOfWork, func(), error) {
	if databaseURL == "" {
		logger.Info("DATABASE_URL not set, keeping share links in memory")
		return inmemory.NewUnitOfWork(inmemory.NewStore()), func() {}, nil
	}

	pool, err := postgres.Connect(ctx, databaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return postgres.NewUnitOfWork(pool), pool.Close, nil
}
