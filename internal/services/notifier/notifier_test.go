package notifier

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infom4th/club-console/internal/lib/smtp"
	"github.com/infom4th/club-console/internal/services/joinrequest"
)

type fakeClient struct {
	from string
	rcpt []string
	body bytes.Buffer
}

func (c *fakeClient) Mail(from string) error { c.from = from; return nil }
func (c *fakeClient) Rcpt(to string) error   { c.rcpt = append(c.rcpt, to); return nil }
func (c *fakeClient) Data() (io.WriteCloser, error) {
	return nopWriteCloser{&c.body}, nil
}
func (c *fakeClient) Quit() error  { return nil }
func (c *fakeClient) Close() error { return nil }

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

type fakeTransport struct {
	client *fakeClient
}

func (t *fakeTransport) Connect() (smtp.Client, error) { return t.client, nil }
func (t *fakeTransport) GetSMTPUser() string           { return "console@example.com" }

func TestHandleJoinRequest(t *testing.T) {
	client := &fakeClient{}
	service := New(&fakeTransport{client: client},
		[]string{"admin1@example.com", "admin2@example.com"},
		slog.New(slog.DiscardHandler))

	body, err := json.Marshal(joinrequest.SubmittedEvent{
		ID:    "req-1",
		Name:  "Riley Kim",
		Email: "riley@example.com",
		Major: "CS",
	})
	require.NoError(t, err)

	require.NoError(t, service.HandleJoinRequest(body))

	assert.Equal(t, "console@example.com", client.from)
	assert.Equal(t, []string{"admin1@example.com", "admin2@example.com"}, client.rcpt)
	assert.Contains(t, client.body.String(), "Subject: New join request: Riley Kim")
	assert.Contains(t, client.body.String(), "riley@example.com")
}

func TestHandleJoinRequestBadPayload(t *testing.T) {
	service := New(&fakeTransport{client: &fakeClient{}},
		[]string{"admin@example.com"}, slog.New(slog.DiscardHandler))

	err := service.HandleJoinRequest([]byte("not json"))
	assert.Error(t, err)
}
