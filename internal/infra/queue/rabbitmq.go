package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "ex.outreach"
	DLXName      = "ex.outreach.dlx"

	// Sent events go out for downstream consumers (CRM sync, audit).
	EventsQueueName = "q.outreach.events"
	SentRoutingKey  = "k.sent"

	// Replies come in from the inbox-watching collaborator.
	RepliesQueueName = "q.outreach.replies"
	ReplyRoutingKey  = "k.reply"

	RepliesDLQName = "q.outreach.replies.dlq"
)

type RabbitMQ struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewRabbitMQ(user, pass, host, port string) (*RabbitMQ, error) {
	dsn := fmt.Sprintf("amqp://%s:%s@%s:%s/", user, pass, host, port)

	conn, err := amqp.Dial(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := setupTopology(ch); err != nil {
		return nil, err
	}

	return &RabbitMQ{Conn: conn, Ch: ch}, nil
}

func setupTopology(ch *amqp.Channel) error {
	// Dead letter path for poison reply messages.
	err := ch.ExchangeDeclare(DLXName, "direct", true, false, false, false, nil)
	if err != nil {
		return err
	}

	_, err = ch.QueueDeclare(RepliesDLQName, true, false, false, false, nil)
	if err != nil {
		return err
	}

	err = ch.QueueBind(RepliesDLQName, ReplyRoutingKey, DLXName, false, nil)
	if err != nil {
		return err
	}

	err = ch.ExchangeDeclare(ExchangeName, "direct", true, false, false, false, nil)
	if err != nil {
		return err
	}

	_, err = ch.QueueDeclare(EventsQueueName, true, false, false, false, nil)
	if err != nil {
		return err
	}

	err = ch.QueueBind(EventsQueueName, SentRoutingKey, ExchangeName, false, nil)
	if err != nil {
		return err
	}

	replyArgs := amqp.Table{
		"x-dead-letter-exchange":    DLXName,
		"x-dead-letter-routing-key": ReplyRoutingKey,
	}

	_, err = ch.QueueDeclare(RepliesQueueName, true, false, false, false, replyArgs)
	if err != nil {
		return err
	}

	return ch.QueueBind(RepliesQueueName, ReplyRoutingKey, ExchangeName, false, nil)
}
