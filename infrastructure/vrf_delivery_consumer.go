package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Landon87/florida-crypto-lottery/domain/interfaces"
	"github.com/Landon87/florida-crypto-lottery/infrastructure/observability"

	log "github.com/sirupsen/logrus"
)

// VRFDeliveryConsumer routes randomness deliveries from the provider to
// the raffle service callback. Deliveries arrive on their own consumer
// goroutine, a different execution context than the request that
// originated them.
type VRFDeliveryConsumer struct {
	natsClient *NATSClient
	raffle     interfaces.RaffleService
	metrics    *observability.MetricsProvider
}

// NewVRFDeliveryConsumer creates a new VRF delivery consumer
func NewVRFDeliveryConsumer(natsClient *NATSClient, raffle interfaces.RaffleService, metrics *observability.MetricsProvider) *VRFDeliveryConsumer {
	return &VRFDeliveryConsumer{
		natsClient: natsClient,
		raffle:     raffle,
		metrics:    metrics,
	}
}

// Start subscribes to the delivery subject
func (c *VRFDeliveryConsumer) Start() error {
	return c.natsClient.Subscribe(VRFDeliverySubject, c.handleDelivery)
}

// handleDelivery decodes one delivery and hands it to the raffle service.
// Malformed and mismatched deliveries are dropped; a payout failure is
// returned so the message is redelivered and the payout retried.
func (c *VRFDeliveryConsumer) handleDelivery(data []byte) error {
	var msg vrfDeliveryMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		log.WithError(err).Error("failed to unmarshal vrf delivery, dropping")
		return nil
	}

	c.metrics.RecordNATSMessageReceived("vrf_delivery")

	handled, err := c.raffle.HandleRandomnessDelivered(context.Background(), msg.RequestID, msg.RandomWords)
	if err != nil {
		c.metrics.RecordPayout(observability.PayoutStatusFailed)
		return fmt.Errorf("failed to process vrf delivery %s: %w", msg.RequestID, err)
	}

	if !handled {
		c.metrics.RecordDeliveryReceived(observability.DeliveryStatusUnhandled)
		log.WithField("requestId", msg.RequestID).Warn("dropped vrf delivery with no matching request")
		return nil
	}

	c.metrics.RecordDeliveryReceived(observability.DeliveryStatusHandled)
	c.metrics.RecordPayout(observability.PayoutStatusPaid)
	return nil
}
