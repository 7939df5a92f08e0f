package observability

// Metric name prefixes
const (
	MetricPrefix = "raffle_service"
)

// Metric names
const (
	// Round metrics
	EntriesTotal      = MetricPrefix + ".round.entries_total"
	DrawsStartedTotal = MetricPrefix + ".round.draws_started_total"
	PayoutsTotal      = MetricPrefix + ".round.payouts_total"

	// VRF metrics
	DeliveriesReceivedTotal = MetricPrefix + ".vrf.deliveries_received_total"

	// NATS metrics
	NATSMessagesReceivedTotal  = MetricPrefix + ".nats.messages_received_total"
	NATSMessagesPublishedTotal = MetricPrefix + ".nats.messages_published_total"

	// Database metrics
	DatabaseQueriesTotal  = MetricPrefix + ".database.queries_total"
	DatabaseQueryDuration = MetricPrefix + ".database.query_duration"
)

// Label keys
const (
	LabelEventType  = "event_type"
	LabelStatus     = "status"
	LabelRepository = "repository"
	LabelMethod     = "method"
)

// Payout statuses
const (
	PayoutStatusPaid   = "paid"
	PayoutStatusFailed = "failed"
)

// VRF delivery statuses
const (
	DeliveryStatusHandled   = "handled"
	DeliveryStatusUnhandled = "unhandled"
)
