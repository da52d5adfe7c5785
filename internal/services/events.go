package services

import (
	"context"

	"github.com/AnshRaj112/goalledger-backend/internal/models"
	"github.com/AnshRaj112/goalledger-backend/pkg/rabbitmq"
)

// LedgerEventsExchange is the topic exchange activity events are published to.
// Routing keys are "activity.<type>", e.g. "activity.add_money".
const LedgerEventsExchange = "ledger_events"

// ActivityEvent is the message body published for each saved activity entry.
type ActivityEvent struct {
	ActivityID  int64               `json:"activity_id"`
	UserID      int64               `json:"user_id"`
	Type        models.ActivityKind `json:"type"`
	Description string              `json:"description"`
	Timestamp   string              `json:"timestamp"`
}

// EventPublisher forwards activity entries to a message broker.
type EventPublisher struct {
	producer rabbitmq.Publisher
	exchange string
}

func NewEventPublisher(producer rabbitmq.Publisher) *EventPublisher {
	return &EventPublisher{producer: producer, exchange: LedgerEventsExchange}
}

// PublishActivity implements ActivityPublisher.
func (p *EventPublisher) PublishActivity(ctx context.Context, entry models.ActivityEntry) error {
	event := ActivityEvent{
		ActivityID:  entry.ID,
		UserID:      entry.UserID,
		Type:        entry.Type,
		Description: entry.Description,
		Timestamp:   entry.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
	return p.producer.Publish(ctx, p.exchange, "activity."+string(entry.Type), event)
}
