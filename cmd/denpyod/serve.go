package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/shirakawa-dev/denpyo/internal/common"
	"github.com/shirakawa-dev/denpyo/internal/export"
	"github.com/shirakawa-dev/denpyo/internal/normalize"
	"github.com/shirakawa-dev/denpyo/internal/pipeline"
	"github.com/shirakawa-dev/denpyo/internal/repository"
	"github.com/shirakawa-dev/denpyo/internal/server"
)

func newServeCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(logger)
		},
	}
}

func runServe(logger *slog.Logger) error {
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer repository.Close(db, logger)
	if err := repository.Migrate(ctx, db, logger); err != nil {
		return err
	}

	vocab, err := normalize.LoadVocabulary(cfg.Normalize.VocabPath)
	if err != nil {
		return err
	}
	orch := normalize.NewOrchestrator(vocab, normalize.Config{
		DefaultTaxRate: cfg.Normalize.DefaultTaxRate,
	}, logger)

	docsRepo := repository.NewDocumentRepository(db, cfg.Database.Driver, logger)
	pipe := pipeline.NewPipeline(logger, pipeline.Config{}, orch, docsRepo)
	exporter := export.NewService(docsRepo, cfg.Export.SheetName, logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv, err := server.New(cfg.Server, pipe, docsRepo, exporter, db, reg, logger)
	if err != nil {
		return err
	}

	// Optional gRPC health endpoint for infra probes.
	var grpcServer *grpc.Server
	if cfg.Server.HealthGRPCAddr != "" {
		grpcServer = grpc.NewServer()
		hs := health.NewServer()
		healthpb.RegisterHealthServer(grpcServer, hs)
		hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

		lis, err := net.Listen("tcp", cfg.Server.HealthGRPCAddr)
		if err != nil {
			return err
		}
		logger.Info("grpc health serving", "addr", cfg.Server.HealthGRPCAddr)
		go func() {
			if err := grpcServer.Serve(lis); err != nil {
				logger.Error("grpc serve", "error", err)
			}
		}()
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr)
		if err := srv.Listen(); err != nil {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	return srv.Shutdown()
}
