package mail

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/krishiseeds/catalog-service/internal/types"
)

type stubMailer struct {
	err  error
	sent atomic.Int32
}

func (m *stubMailer) Send(context.Context, Message) error {
	m.sent.Add(1)
	return m.err
}

type countingFailures struct{ n atomic.Int32 }

func (c *countingFailures) RecordEmailFailure() { c.n.Add(1) }

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("send did not finish")
	}
}

func TestAsyncSuccess(t *testing.T) {
	m := &stubMailer{}
	f := &countingFailures{}
	a := NewAsync(m, f, zerolog.Nop())

	waitDone(t, a.Send(Message{To: "a@example.com"}))
	assert.EqualValues(t, 1, m.sent.Load())
	assert.EqualValues(t, 0, f.n.Load())
}

func TestAsyncFailureIsCounted(t *testing.T) {
	m := &stubMailer{err: errors.New("smtp down")}
	f := &countingFailures{}
	a := NewAsync(m, f, zerolog.Nop())

	waitDone(t, a.Send(Message{To: "a@example.com"}))
	assert.EqualValues(t, 1, f.n.Load())
}

func TestConfirmation(t *testing.T) {
	msg := Confirmation(types.ContactMessage{
		Name: "Ravi", Email: "ravi@example.com", Subject: "Cotton seeds", Message: "Need 20 packets",
	}, "Krishi Seeds")

	assert.Equal(t, "ravi@example.com", msg.To)
	assert.Equal(t, "We received your message: Cotton seeds", msg.Subject)
	assert.Contains(t, msg.Body, "Dear Ravi")
	assert.Contains(t, msg.Body, "Need 20 packets")
}

func TestComposeSanitizesHeaders(t *testing.T) {
	raw := string(Compose("shop@example.com", Message{
		To: "a@example.com", Subject: "hi\r\nBcc: x@example.com", Body: "line1\nline2",
	}))
	assert.Contains(t, raw, "Subject: hi  Bcc: x@example.com\r\n")
	assert.Contains(t, raw, "line1\r\nline2")
	assert.Equal(t, 1, strings.Count(raw, "Bcc"))
}

func TestLogMailer(t *testing.T) {
	assert.NoError(t, NewLogMailer(zerolog.Nop()).Send(context.Background(), Message{To: "a@example.com"}))
}
