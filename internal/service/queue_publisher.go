// Package queue_publisher publishes registration lifecycle events to
// RabbitMQ.  Errors are logged and returned so callers can ignore failures
// without interrupting the request flow; a submission never fails because
// the broker is down.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/cache2k25/registration-backend/internal/queue"
)

// Publisher sends events to a broker at a fixed URL.  A fresh connection is
// dialed per publish; publish volume here is a handful of messages per
// minute at fest peak, so connection reuse is not worth the reconnect
// bookkeeping.
type Publisher struct {
	url string
}

// New returns a Publisher for the given broker URL.
func New(url string) *Publisher { return &Publisher{url: url} }

// RegistrationCreated publishes a RegistrationCreatedEvent to the
// registration.created queue.
func (p *Publisher) RegistrationCreated(ctx context.Context, ev q.RegistrationCreatedEvent) error {
	return p.publish(ctx, q.CreatedQueue, ev)
}

// RegistrationVerified publishes a RegistrationVerifiedEvent to the
// registration.verified queue.
func (p *Publisher) RegistrationVerified(ctx context.Context, ev q.RegistrationVerifiedEvent) error {
	return p.publish(ctx, q.VerifiedQueue, ev)
}

func (p *Publisher) publish(ctx context.Context, queueName string, event interface{}) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
