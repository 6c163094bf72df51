package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/verifyx/provenance-api/internal/adapter"
	"github.com/verifyx/provenance-api/internal/api/server"
	"github.com/verifyx/provenance-api/internal/config"
	"github.com/verifyx/provenance-api/internal/ledger"
	"github.com/verifyx/provenance-api/internal/logger"
	"github.com/verifyx/provenance-api/internal/messaging"
	"github.com/verifyx/provenance-api/internal/providers/jetstream"
	"github.com/verifyx/provenance-api/internal/provenance"
	"github.com/verifyx/provenance-api/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "provenance-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting VerifyX Provenance API")

	// Connect to the metadata store
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName),
	)

	if err := store.Migrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
	}

	metaStore := store.NewPGStore(db)

	// Connect to the ledger node
	dialer := adapter.NewEthClientDialer()
	eth, err := dialer.Dial(ctx, cfg.Ledger.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to ledger node", zap.Error(err), zap.String("rpc_url", cfg.Ledger.RPCURL))
	}
	defer eth.Close()

	// A mismatched chain would sign transactions the node silently rejects
	nodeChainID, err := eth.ChainID(ctx)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to query node chain id", zap.Error(err))
	}
	if nodeChainID.Int64() != cfg.Ledger.ChainID {
		logger.FatalCtx(ctx, "Configured chain id does not match the node",
			zap.Int64("configured", cfg.Ledger.ChainID),
			zap.String("node", nodeChainID.String()),
		)
	}

	identity, err := ledger.NewIdentity(cfg.Ledger.PrivateKey, cfg.Ledger.ChainID, cfg.Ledger.ContractAddress)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load signing identity", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Loaded ledger identity",
		zap.String("address", identity.Address().Hex()),
		zap.String("contract", identity.Contract().Hex()),
		zap.Int64("chain_id", cfg.Ledger.ChainID),
	)

	ledgerClient, err := ledger.NewClient(identity, eth, cfg.Ledger.GasLimit)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create ledger client", zap.Error(err))
	}

	// Seed the nonce sequencer from the node's pending view
	startNonce, err := ledgerClient.PendingNonce(ctx)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to fetch pending nonce", zap.Error(err))
	}
	sequencer := ledger.NewSequencer(startNonce)
	logger.InfoCtx(ctx, "Seeded nonce sequencer", zap.Uint64("start_nonce", startNonce))

	clock := adapter.NewClock()
	coordinator := ledger.NewCoordinator(sequencer, ledgerClient, clock, ledger.CoordinatorConfig{
		ConfirmTimeout:  cfg.Ledger.ConfirmTimeout,
		ConfirmInterval: cfg.Ledger.ConfirmInterval,
		MaxRetries:      cfg.Ledger.MaxRetries,
	})

	jsonAdapter := adapter.NewJSON()
	jcsAdapter := adapter.NewJCS()

	// Event publisher is optional; without a broker the API still serves writes
	var publisher messaging.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		defer publisher.Close()
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("stream", cfg.NATS.StreamName))
	} else {
		logger.WarnCtx(ctx, "NATS URL not configured, provenance events will not be published")
	}

	service := provenance.NewReconciler(ledgerClient, coordinator, metaStore, publisher, jsonAdapter, jcsAdapter, clock)

	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	srv := server.New(serverConfig, service)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}
