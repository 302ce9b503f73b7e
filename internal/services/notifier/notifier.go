// Package notifier turns join-request broker events into admin emails.
// It runs in its own binary and shares only the broker and the mail
// transport with the console.
package notifier

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/infom4th/club-console/internal/lib/sl"
	"github.com/infom4th/club-console/internal/lib/smtp"
	"github.com/infom4th/club-console/internal/services/joinrequest"
)

// Service consumes join-request events and mails the admins.
type Service struct {
	transport   smtp.TransportInterface
	adminEmails []string
	log         *slog.Logger
}

// New creates a notifier Service.
func New(transport smtp.TransportInterface, adminEmails []string, log *slog.Logger) *Service {
	return &Service{
		transport:   transport,
		adminEmails: adminEmails,
		log:         log,
	}
}

// HandleJoinRequest processes one broker message. A returned error
// requeues the message.
func (s *Service) HandleJoinRequest(body []byte) error {
	var event joinrequest.SubmittedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal join request event", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	subject := "New join request: " + event.Name
	bodyText := fmt.Sprintf("A new join request has been submitted.\n\nName: %s\nEmail: %s\nMajor: %s\n\nOpen the admin console to review it.",
		event.Name, event.Email, event.Major)

	return s.sendEmail(s.adminEmails, subject, bodyText)
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		if err := client.Quit(); err != nil {
			s.log.Warn("failed to close SMTP session", sl.Err(err))
			_ = client.Close()
		}
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, recipient := range to {
		if err := client.Rcpt(recipient); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", recipient, err)
		}
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open message body: %w", err)
	}
	if err := writeAll(writer, msg); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write message body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish message body: %w", err)
	}

	s.log.Info("join request notification sent",
		slog.Int("recipients", len(to)), slog.String("subject", subject))
	return nil
}

func writeAll(w io.Writer, msg string) error {
	_, err := w.Write([]byte(msg))
	return err
}
