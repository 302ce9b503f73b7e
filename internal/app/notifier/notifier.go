// Package notifier assembles the notification sender: it consumes
// join-request events from the broker and mails the admins.
package notifier

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/infom4th/club-console/internal/config"
	"github.com/infom4th/club-console/internal/lib/smtp"
	"github.com/infom4th/club-console/internal/rabbitmq"
	notifierservice "github.com/infom4th/club-console/internal/services/notifier"
)

// App holds the wired notification sender.
type App struct {
	conn    *amqp.Connection
	ch      *amqp.Channel
	service *notifierservice.Service
	logger  *slog.Logger
}

// New builds the notification sender from the config.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.AddressRabbit, cfg.RetriesRabbit, cfg.DelayRabbit)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	service := notifierservice.New(transport, cfg.AdminEmail, logger)

	return &App{
		conn:    conn,
		ch:      ch,
		service: service,
		logger:  logger,
	}, nil
}

// Run consumes the join-request queue until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.JoinRequestQueue, a.service.HandleJoinRequest)
	if err != nil {
		a.logger.Error("failed to start join request consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("notification sender shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
