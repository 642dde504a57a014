package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/xavierca1/linkreach/internal/infra/queue"
)

// ConsumerStatus is the piece of the reply worker the health check needs.
type ConsumerStatus interface {
	Consuming() bool
}

// HealthHandler reports the engine's dependencies: the prospect store, the
// broker, the replies pipeline (queue depth, dead letters, consumer
// liveness) and the outbound transport mode.
type HealthHandler struct {
	DB          *sql.DB
	RabbitMQ    *amqp091.Connection
	ReplyWorker ConsumerStatus
	StartTime   time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(db *sql.DB, rabbitMQ *amqp091.Connection, replyWorker ConsumerStatus) *HealthHandler {
	return &HealthHandler{
		DB:          db,
		RabbitMQ:    rabbitMQ,
		ReplyWorker: replyWorker,
		StartTime:   time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	if h.DB != nil {
		if err := h.DB.PingContext(r.Context()); err != nil {
			deps["database"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["database"] = "healthy"
		}
	} else {
		deps["database"] = "not configured"
	}

	h.checkBroker(deps)

	if h.ReplyWorker != nil {
		if h.ReplyWorker.Consuming() {
			deps["reply_consumer"] = "consuming"
		} else {
			// Replies pile up and prospects stall at MESSAGE_SENT until the
			// consumer comes back.
			deps["reply_consumer"] = "stopped"
		}
	} else {
		deps["reply_consumer"] = "not configured"
	}

	if os.Getenv("LINKEDIN_API_URL") != "" {
		deps["transport"] = "configured"
	} else {
		deps["transport"] = "simulation"
	}

	status := "healthy"
	for _, v := range deps {
		if v == "stopped" || strings.HasPrefix(v, "unhealthy") {
			status = "degraded"
			break
		}
	}

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	w.Header().Set("Content-Type", "application/json")
	if status == "degraded" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	json.NewEncoder(w).Encode(response)
}

// checkBroker reports the connection plus the replies-pipeline depths. The
// inspect uses its own short-lived channel; a broken one would poison the
// producer's.
func (h *HealthHandler) checkBroker(deps map[string]string) {
	if h.RabbitMQ == nil {
		deps["rabbitmq"] = "not configured"
		return
	}
	if h.RabbitMQ.IsClosed() {
		deps["rabbitmq"] = "unhealthy: connection closed"
		return
	}
	deps["rabbitmq"] = "healthy"

	ch, err := h.RabbitMQ.Channel()
	if err != nil {
		deps["replies_queue"] = fmt.Sprintf("unhealthy: %v", err)
		return
	}
	defer ch.Close()

	if q, err := ch.QueueInspect(queue.RepliesQueueName); err == nil {
		deps["replies_queue"] = fmt.Sprintf("healthy (%d queued)", q.Messages)
	} else {
		deps["replies_queue"] = fmt.Sprintf("unhealthy: %v", err)
	}

	if dlq, err := ch.QueueInspect(queue.RepliesDLQName); err == nil {
		deps["replies_dlq"] = fmt.Sprintf("%d dead-lettered", dlq.Messages)
	}
}
