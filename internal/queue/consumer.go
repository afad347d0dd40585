package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartAuditConsumer connects to the broker, declares the registration
// event queues (durable) and starts consuming both.  Each message is
// appended to logs/registrations.log in a single-line, human-friendly
// format.  The function runs a reconnect loop with exponential backoff and
// never returns under normal operation; processing errors are logged and
// the offending message rejected so the server keeps running.
func StartAuditConsumer(url string) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("audit-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.Printf("audit-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("audit-consumer: set QoS failed: %v", err)
	}

	for _, name := range []string{CreatedQueue, VerifiedQueue} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
	}

	created, err := ch.Consume(CreatedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", CreatedQueue, err)
	}
	verified, err := ch.Consume(VerifiedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", VerifiedQueue, err)
	}

	for {
		var d amqp.Delivery
		var ok bool
		var line string
		var lineErr error

		select {
		case d, ok = <-created:
			if !ok {
				return errors.New("created deliveries channel closed")
			}
			line, lineErr = formatCreated(d.Body)
		case d, ok = <-verified:
			if !ok {
				return errors.New("verified deliveries channel closed")
			}
			line, lineErr = formatVerified(d.Body)
		}

		if lineErr == nil {
			lineErr = appendAuditLine(line)
		}
		if lineErr != nil {
			log.Printf("audit-consumer: handle message failed: %v", lineErr)
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
}

func formatCreated(body []byte) (string, error) {
	var ev RegistrationCreatedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return "", fmt.Errorf("unmarshal: %w", err)
	}
	return fmt.Sprintf("[%s] Registration created | id=%d | code=%s | name=%q | event=%q | kind=%s | team_size=%d | amount=%.2f\n",
		ev.CreatedAt, ev.ID, ev.RegistrationID, ev.Name, ev.EventName, ev.Kind, ev.TeamSize, ev.Amount), nil
}

func formatVerified(body []byte) (string, error) {
	var ev RegistrationVerifiedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return "", fmt.Errorf("unmarshal: %w", err)
	}
	return fmt.Sprintf("[%s] Verification set | id=%d | code=%s | event=%q | verified=%t\n",
		ev.ChangedAt, ev.ID, ev.RegistrationID, ev.EventName, ev.Verified), nil
}

func appendAuditLine(line string) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", "registrations.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
