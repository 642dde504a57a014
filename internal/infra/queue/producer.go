package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// OutreachSentPayload is published after every successful send so
// downstream consumers can mirror the outreach log.
type OutreachSentPayload struct {
	ProspectID string    `json:"prospect_id"`
	CampaignID string    `json:"campaign_id"`
	Type       string    `json:"type"` // CONNECTION_REQUEST, FIRST_MESSAGE, FOLLOW_UP_1, FOLLOW_UP_2
	ProfileURL string    `json:"profile_url"`
	SentAt     time.Time `json:"sent_at"`
}

// ReplyPayload is what the inbox-watching collaborator drops on the replies
// queue when a prospect answers.
type ReplyPayload struct {
	ProspectID string    `json:"prospect_id"`
	Response   string    `json:"response"`
	ReceivedAt time.Time `json:"received_at"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishOutreachSent(ctx context.Context, payload OutreachSentPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		SentRoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)

	if err != nil {
		return fmt.Errorf("failed to publish to RabbitMQ: %v", err)
	}

	return nil
}
