package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

const sourceService = "tpbot"

// Envelope wraps every event forwarded to NATS
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     EventType       `json:"event_type"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"source_service"`
	Payload       json.RawMessage `json:"payload"`
}

// MessagePublisher is the subset of *nats.Conn the forwarder needs
type MessagePublisher interface {
	Publish(subject string, data []byte) error
}

// NATSForwarder mirrors bus events onto NATS subjects
type NATSForwarder struct {
	conn MessagePublisher
}

// NewNATSForwarder creates a forwarder publishing through conn
func NewNATSForwarder(conn MessagePublisher) *NATSForwarder {
	return &NATSForwarder{conn: conn}
}

// ConnectNATS dials the NATS servers with reconnect handling
func ConnectNATS(servers string) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name(sourceService),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				log.WithError(err).Error("NATS disconnected with error")
			} else {
				log.Warn("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected")
		}),
	}

	nc, err := nats.Connect(servers, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.WithField("servers", servers).Info("Connected to NATS")
	return nc, nil
}

// Attach subscribes the forwarder to every event type on the bus
func (f *NATSForwarder) Attach(bus *Bus) {
	for _, eventType := range AllEventTypes {
		bus.Subscribe(eventType, f.handle)
	}
}

func (f *NATSForwarder) handle(ctx context.Context, event Event) {
	if err := f.Forward(event); err != nil {
		log.WithFields(log.Fields{
			"eventType": event.Type(),
			"error":     err,
		}).Error("Failed to forward event to NATS")
	}
}

// Forward publishes a single event wrapped in an envelope
func (f *NATSForwarder) Forward(event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := Envelope{
		EventID:       uuid.New().String(),
		EventType:     event.Type(),
		Timestamp:     time.Now().UTC(),
		SourceService: sourceService,
		Payload:       payload,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	subject := SubjectFor(event.Type())
	if err := f.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish event to %s: %w", subject, err)
	}

	log.WithFields(log.Fields{
		"eventType": event.Type(),
		"eventId":   envelope.EventID,
		"subject":   subject,
	}).Debug("Forwarded event to NATS")
	return nil
}
