package worker

import (
	"context"
	"errors"
	"time"

	"github.com/Landon87/florida-crypto-lottery/domain/interfaces"
	"github.com/Landon87/florida-crypto-lottery/domain/services"
	"github.com/Landon87/florida-crypto-lottery/infrastructure/observability"

	log "github.com/sirupsen/logrus"
)

// UpkeepWorker is the periodic trigger source: it asks the raffle service
// whether a draw should start at a fixed cadence. The round lifecycle
// itself never self-schedules.
type UpkeepWorker struct {
	raffle   interfaces.RaffleService
	metrics  *observability.MetricsProvider
	interval time.Duration
}

// NewUpkeepWorker creates a new upkeep worker
func NewUpkeepWorker(raffle interfaces.RaffleService, metrics *observability.MetricsProvider, interval time.Duration) *UpkeepWorker {
	return &UpkeepWorker{
		raffle:   raffle,
		metrics:  metrics,
		interval: interval,
	}
}

// Start runs the worker in the background and returns a cleanup function
// to stop it gracefully
func (w *UpkeepWorker) Start(ctx context.Context) func() {
	ticker := time.NewTicker(w.interval)
	stopChan := make(chan struct{})

	performUpkeep := func() {
		requestID, err := w.raffle.PerformUpkeep(ctx)
		if err != nil {
			var notNeeded *services.UpkeepNotNeededError
			if errors.As(err, &notNeeded) {
				log.WithFields(log.Fields{
					"state":   notNeeded.State,
					"entries": notNeeded.EntryCount,
					"pot":     notNeeded.PooledValue,
					"elapsed": notNeeded.TimeSinceLastDraw,
				}).Debug("upkeep not needed")
				return
			}
			log.WithError(err).Error("upkeep attempt failed")
			return
		}

		w.metrics.RecordDrawStarted()
		log.WithField("requestId", requestID).Info("upkeep started a draw")
	}

	go func() {
		log.WithField("interval", w.interval).Info("upkeep worker started")

		// Run immediately on startup
		performUpkeep()

		for {
			select {
			case <-ctx.Done():
				log.Info("upkeep worker shutting down (context cancelled)")
				return
			case <-stopChan:
				log.Info("upkeep worker shutting down (stop requested)")
				return
			case <-ticker.C:
				performUpkeep()
			}
		}
	}()

	return func() {
		close(stopChan)
		ticker.Stop()
	}
}
