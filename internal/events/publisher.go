package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"organizer-service/internal/model"
)

const (
	SubjectUserRegistered = "user.registered"
	SubjectEventCreated   = "event.created"
)

type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, user *model.User) error
	PublishEventCreated(ctx context.Context, event *model.Event) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

// NewNatsPublisher connects to natsURL. An empty URL yields a publisher that
// drops every message.
func NewNatsPublisher(natsURL string) (EventPublisher, error) {
	if natsURL == "" {
		return NoopPublisher{}, nil
	}

	nc, err := nats.Connect(natsURL, nats.Name("organizer-service"))

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

func (p *NatsPublisher) Close() {
	p.conn.Close()
}

type UserRegisteredEvent struct {
	EventType    string     `json:"event_type"`
	UserID       uuid.UUID  `json:"user_id"`
	Username     string     `json:"username"`
	Role         model.Role `json:"role"`
	RegisteredAt time.Time  `json:"registered_at"`
}

type EventCreatedEvent struct {
	EventType    string    `json:"event_type"`
	EventID      uuid.UUID `json:"event_id"`
	Title        string    `json:"title"`
	Date         string    `json:"date"`
	Organization string    `json:"organization"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewUserRegisteredEvent(user *model.User) UserRegisteredEvent {
	return UserRegisteredEvent{
		EventType:    SubjectUserRegistered,
		UserID:       user.ID,
		Username:     user.Username,
		Role:         user.Role,
		RegisteredAt: user.CreatedAt,
	}
}

func NewEventCreatedEvent(event *model.Event) EventCreatedEvent {
	return EventCreatedEvent{
		EventType:    SubjectEventCreated,
		EventID:      event.ID,
		Title:        event.Title,
		Date:         event.Date.Format(time.DateOnly),
		Organization: event.Organization,
		CreatedAt:    event.CreatedAt,
	}
}

func (p *NatsPublisher) PublishUserRegistered(ctx context.Context, user *model.User) error {
	return p.publish(ctx, SubjectUserRegistered, NewUserRegisteredEvent(user))
}

func (p *NatsPublisher) PublishEventCreated(ctx context.Context, event *model.Event) error {
	return p.publish(ctx, SubjectEventCreated, NewEventCreatedEvent(event))
}

func (p *NatsPublisher) publish(ctx context.Context, subject string, payload any) error {
	data, err := json.Marshal(payload)

	if err != nil {
		slog.ErrorContext(ctx, "Error marshalling event JSON", slog.String("subject", subject), slog.String("error", err.Error()))
		return err
	}

	if err := p.conn.Publish(subject, data); err != nil {
		slog.ErrorContext(ctx, "Error publishing to NATS", slog.String("subject", subject), slog.String("error", err.Error()))
		return err
	}

	slog.InfoContext(ctx, "Published event to NATS", slog.String("subject", subject))

	return nil
}

type NoopPublisher struct{}

func (NoopPublisher) PublishUserRegistered(context.Context, *model.User) error { return nil }

func (NoopPublisher) PublishEventCreated(context.Context, *model.Event) error { return nil }
