package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/cardoctor/cardoctor-api/pkg/logger"
)

// Publisher emits domain events. Handlers treat publishing as best-effort;
// a failed publish never fails the request.
type Publisher interface {
	Publish(ctx context.Context, subject string, data any) error
	Close() error
}

// Booking event subjects.
const (
	BookingCreated       = "booking.created"
	BookingStatusUpdated = "booking.status_updated"
	BookingDeleted       = "booking.deleted"
)

type BookingCreatedEvent struct {
	BookingID    int64     `json:"booking_id"`
	Email        string    `json:"email"`
	ServiceID    string    `json:"service_id"`
	ServiceTitle string    `json:"service_title"`
	CreatedAt    time.Time `json:"created_at"`
}

type BookingStatusUpdatedEvent struct {
	BookingID int64     `json:"booking_id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BookingDeletedEvent struct {
	BookingID int64     `json:"booking_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (n *NATSPublisher) Publish(ctx context.Context, subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "publishing event", "subject", subject)

	return n.conn.Publish(subject, payload)
}

func (n *NATSPublisher) Close() error {
	n.conn.Close()
	return nil
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, any) error { return nil }
func (NoopPublisher) Close() error                               { return nil }
