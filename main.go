package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Landon87/florida-crypto-lottery/api"
	"github.com/Landon87/florida-crypto-lottery/config"
	"github.com/Landon87/florida-crypto-lottery/database"
	"github.com/Landon87/florida-crypto-lottery/domain/events"
	"github.com/Landon87/florida-crypto-lottery/domain/services"
	"github.com/Landon87/florida-crypto-lottery/infrastructure"
	"github.com/Landon87/florida-crypto-lottery/infrastructure/observability"
	"github.com/Landon87/florida-crypto-lottery/repository"
	"github.com/Landon87/florida-crypto-lottery/worker"

	log "github.com/sirupsen/logrus"
)

func main() {
	// Check for migration subcommands
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := handleMigrationCommand(); err != nil {
			log.WithError(err).Fatal("migration error")
		}
		return
	}

	if err := run(); err != nil {
		log.WithError(err).Fatal("service error")
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("received shutdown signal, shutting down gracefully")
		cancel()
	}()

	cfg := config.Get()

	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetLevel(log.DebugLevel)
	}

	metrics := observability.NewMetricsProvider(cfg)
	if err := metrics.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	natsClient := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := natsClient.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	defer natsClient.Close()

	if err := natsClient.EnsureVRFStream(); err != nil {
		return fmt.Errorf("failed to ensure vrf stream: %w", err)
	}

	subjectMapper := infrastructure.NewEventSubjectMapper()
	eventPublisher := infrastructure.NewNATSEventPublisher(natsClient, subjectMapper, metrics)
	if err := eventPublisher.EnsureDomainEventStream(); err != nil {
		return fmt.Errorf("failed to ensure domain event stream: %w", err)
	}

	// In-process audit trail of paid winners, independent of NATS delivery
	eventPublisher.RegisterLocalHandler(events.EventTypeWinnerPicked, func(ctx context.Context, event events.Event) error {
		picked, ok := event.(events.WinnerPickedEvent)
		if !ok {
			return fmt.Errorf("unexpected payload for %s event", event.Type())
		}
		log.WithFields(log.Fields{
			"requestId":   picked.RequestID,
			"winner":      picked.Winner,
			"winnerIndex": picked.WinnerIndex,
			"payout":      picked.Payout,
		}).Info("winner audit record")
		return nil
	})

	drawRecordRepo := repository.NewDrawRecordRepository(db, metrics)
	payoutRepo := repository.NewPayoutRepository(db, metrics)
	vrfRequester := infrastructure.NewVRFRequester(natsClient)

	raffle := services.NewRaffleService(
		cfg.Schedule(),
		cfg.VRFParams(),
		vrfRequester,
		payoutRepo,
		drawRecordRepo,
		eventPublisher,
	)

	deliveryConsumer := infrastructure.NewVRFDeliveryConsumer(natsClient, raffle, metrics)
	if err := deliveryConsumer.Start(); err != nil {
		return fmt.Errorf("failed to start vrf delivery consumer: %w", err)
	}

	upkeepWorker := worker.NewUpkeepWorker(raffle, metrics, cfg.UpkeepPollInterval)
	stopWorker := upkeepWorker.Start(ctx)
	defer stopWorker()

	server := api.NewServer(cfg.ListenAddr, raffle, metrics)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("http server shutdown failed")
	}
	if err := metrics.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("metrics shutdown failed")
	}

	log.Info("shutdown complete")
	return nil
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: raffle-service migrate [up|down|status] [args...]")
	}

	command := os.Args[2]
	switch command {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(os.Args) > 3 {
			steps = os.Args[3]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
}
