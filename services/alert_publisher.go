package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"preparedhub-api/models"
)

// AlertPublisher streams alert lifecycle events to Kafka so downstream
// notifiers (SMS, push) can fan out independently of the request path.
// A nil publisher is valid and publishes nothing.
type AlertPublisher struct {
	writer *kafka.Writer
}

func NewAlertPublisher(brokers []string, topic string) *AlertPublisher {
	if len(brokers) == 0 {
		return nil
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return &AlertPublisher{writer: w}
}

func (p *AlertPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

type alertCreatedEvent struct {
	Event       string  `json:"event"`
	AlertID     string  `json:"alert_id"`
	AlertType   string  `json:"alert_type"`
	Severity    string  `json:"severity"`
	State       *string `json:"state"`
	City        *string `json:"city"`
	CommunityID *string `json:"community_id"`
	IssuedAt    string  `json:"issued_at"`
}

// PublishCreated emits an alert.created event. Publishing is best
// effort: a broker failure must not fail the originating request.
func (p *AlertPublisher) PublishCreated(alert *models.Alert) {
	if p == nil || p.writer == nil {
		return
	}

	payload, err := json.Marshal(alertCreatedEvent{
		Event:       "alert.created",
		AlertID:     alert.ID,
		AlertType:   string(alert.AlertType),
		Severity:    string(alert.Severity),
		State:       alert.State,
		City:        alert.City,
		CommunityID: alert.CommunityID,
		IssuedAt:    alert.IssuedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		fmt.Printf("Failed to encode alert event: %v\n", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(alert.ID),
		Value: payload,
	}); err != nil {
		fmt.Printf("Failed to publish alert event: %v\n", err)
	}
}
