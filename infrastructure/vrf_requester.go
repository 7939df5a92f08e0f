package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Landon87/florida-crypto-lottery/domain/entities"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// NATS subjects for the randomness provider transport
const (
	VRFRequestSubject  = "vrf.requests"
	VRFDeliverySubject = "vrf.deliveries"
)

// vrfRequestMessage is the wire format of a randomness request
type vrfRequestMessage struct {
	RequestID            string    `json:"request_id"`
	KeyHash              string    `json:"key_hash"`
	CallbackGasLimit     uint32    `json:"callback_gas_limit"`
	RequestConfirmations uint16    `json:"request_confirmations"`
	NumWords             uint32    `json:"num_words"`
	RequestedAt          time.Time `json:"requested_at"`
}

// vrfDeliveryMessage is the wire format of a randomness delivery
type vrfDeliveryMessage struct {
	RequestID   string   `json:"request_id"`
	RandomWords []uint64 `json:"random_words"`
}

// VRFRequester implements the RandomnessProvider boundary by publishing
// requests to the provider over NATS. The delivery arrives asynchronously
// on a separate subject; correlation happens by request id.
type VRFRequester struct {
	natsClient *NATSClient
}

// NewVRFRequester creates a new VRF requester
func NewVRFRequester(natsClient *NATSClient) *VRFRequester {
	return &VRFRequester{
		natsClient: natsClient,
	}
}

// RequestRandomWords submits one randomness request and returns its
// correlation id. A submission failure is returned to the caller so the
// round lifecycle never transitions on an unconfirmed request.
func (r *VRFRequester) RequestRandomWords(ctx context.Context, params entities.VRFParams) (string, error) {
	requestID := uuid.New().String()

	msg := vrfRequestMessage{
		RequestID:            requestID,
		KeyHash:              params.KeyHash,
		CallbackGasLimit:     params.CallbackGasLimit,
		RequestConfirmations: params.RequestConfirmations,
		NumWords:             params.NumWords,
		RequestedAt:          time.Now().UTC(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal vrf request: %w", err)
	}

	if err := r.natsClient.Publish(ctx, VRFRequestSubject, data); err != nil {
		return "", fmt.Errorf("failed to submit vrf request: %w", err)
	}

	log.WithFields(log.Fields{
		"requestId": requestID,
		"numWords":  params.NumWords,
	}).Info("submitted randomness request")

	return requestID, nil
}
