// Package joinrequest handles the public join form and the admin
// request queue. Approving or declining flips the status only; it does
// not touch the audit log and does not create a profile.
package joinrequest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/infom4th/club-console/internal/lib/sl"
	"github.com/infom4th/club-console/internal/models"
	"github.com/infom4th/club-console/internal/rabbitmq"
)

// Repository defines the join request storage methods.
type Repository interface {
	CreateJoinRequest(ctx context.Context, req models.DummyJoinRequest) (string, error)
	ListJoinRequests(ctx context.Context) ([]models.JoinRequest, error)
	UpdateJoinRequestStatus(ctx context.Context, id, status string) error
}

// Publisher sends one notification event to the broker.
type Publisher interface {
	Publish(event any) error
}

// AMQPPublisher publishes join-request events to the notifications
// exchange.
type AMQPPublisher struct {
	ch *amqp.Channel
}

// NewAMQPPublisher wraps a channel as a Publisher.
func NewAMQPPublisher(ch *amqp.Channel) *AMQPPublisher {
	return &AMQPPublisher{ch: ch}
}

// Publish sends the event with the join-request routing key.
func (p *AMQPPublisher) Publish(event any) error {
	return rabbitmq.PublishMessage(p.ch, rabbitmq.Exchange, rabbitmq.JoinRequestKey, event)
}

// SubmittedEvent is the broker payload emitted for every new request.
type SubmittedEvent struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Major string `json:"major,omitempty"`
}

// Service implements the join request flow.
type Service struct {
	repo      Repository
	publisher Publisher
	log       *slog.Logger
}

// New creates a joinrequest Service. The publisher may be nil when the
// broker is not configured.
func New(repo Repository, publisher Publisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Submit stores a new join request and emits a notification event.
// The event is best-effort: a broker outage must not reject the form.
func (s *Service) Submit(ctx context.Context, req models.DummyJoinRequest) (string, error) {
	const op = "services.joinrequest.Submit"

	id, err := s.repo.CreateJoinRequest(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if s.publisher != nil {
		event := SubmittedEvent{ID: id, Name: req.Name, Email: req.Email, Major: req.Major}
		if err := s.publisher.Publish(event); err != nil {
			s.log.Warn("failed to publish join request event",
				slog.String("id", id), sl.Err(err))
		}
	}

	return id, nil
}

// List returns all join requests, newest first.
func (s *Service) List(ctx context.Context) ([]models.JoinRequest, error) {
	return s.repo.ListJoinRequests(ctx)
}

// Decide resolves a request as approved or declined.
func (s *Service) Decide(ctx context.Context, id, status string) error {
	const op = "services.joinrequest.Decide"

	if err := s.repo.UpdateJoinRequestStatus(ctx, id, status); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
