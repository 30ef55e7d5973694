package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/sheikh-saqib/wire-transfer-simulator/internal/clearing"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/config"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/events"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/events/kafka"
	interfaces "github.com/sheikh-saqib/wire-transfer-simulator/internal/interfaces"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/ledger"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/logging"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/messages"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/registry"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/server"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/storage/memory"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	var publisher interfaces.EventPublisher = events.NewLogPublisher(logger)
	if len(cfg.Kafka.Brokers) > 0 {
		kp := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() {
			if err := kp.Close(); err != nil {
				logger.Warn("failed to close kafka publisher", zap.Error(err))
			}
		}()
		publisher = kp
		logger.Info("publishing lifecycle events to kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic))
	}

	var accounts interfaces.AccountStore = memory.NewMemoryAccountStore()
	var transfers interfaces.TransferStore = memory.NewMemoryTransferStore()

	ledgerService := ledger.NewLedger(accounts, ledger.WithDefaultBalance(cfg.Ledger.DefaultOpeningBalance))
	composer := messages.NewComposer(cfg.Ledger.DebtorAgentBIC)

	pipeline := clearing.NewPipeline(ledgerService, composer,
		clearing.WithDelays(cfg.Clearing.Delays),
		clearing.WithNetworks(cfg.Clearing.Networks),
		clearing.WithPublisher(publisher),
		clearing.WithLogger(logger.Named("clearing")))

	transferRegistry := registry.NewRegistry(ledgerService, transfers, composer, pipeline,
		registry.WithPublisher(publisher),
		registry.WithLogger(logger.Named("registry")))

	handler := server.NewHandler(transferRegistry, logger.Named("http"))
	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler.Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", zap.Error(err))
	}
	// Let running transfers reach a terminal step before the publisher closes.
	if err := transferRegistry.Drain(shutdownCtx); err != nil {
		logger.Warn("transfers still running at shutdown", zap.Error(err))
	}
}
