package queue

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xavierca1/linkreach/internal/infra/http/middleware"
)

// ReplyHandler is the contract for whoever records an inbound reply against
// the prospect and its outreach log.
type ReplyHandler interface {
	HandleReply(ctx context.Context, payload ReplyPayload) error
}

// Worker consumes the replies queue. It is fully decoupled from the
// database; recording goes through the ReplyHandler.
type Worker struct {
	Channel *amqp.Channel
	Handler ReplyHandler

	consuming atomic.Bool
}

func NewWorker(ch *amqp.Channel, handler ReplyHandler) *Worker {
	return &Worker{
		Channel: ch,
		Handler: handler,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ Failed to register RabbitMQ consumer: %s", err)
	}

	w.consuming.Store(true)

	forever := make(chan bool)

	go func() {
		defer w.consuming.Store(false)
		for d := range msgs {
			var payload ReplyPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] Invalid JSON on replies queue: %s", err)
				// Malformed message. Reject without requeue so it dead-letters
				// instead of blocking the queue.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Reply received for prospect %s", payload.ProspectID)

			if err := w.Handler.HandleReply(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] Failed to record reply: %s", err)
				d.Nack(false, false)
			} else {
				log.Printf("✅ [WORKER] Reply recorded, prospect %s is REPLIED", payload.ProspectID)
				middleware.RecordReplyIngested()
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Reply worker running, waiting on queue '%s'", queueName)
	<-forever
}

// Consuming reports whether the replies consumer is registered and its
// delivery channel is still open.
func (w *Worker) Consuming() bool {
	return w.consuming.Load()
}
