package mailer

import (
	"context"
	"log/slog"
	"sync"
)

// LogMailer writes codes to the log instead of sending them. It is the
// development default; never run it with real users.
type LogMailer struct {
	Logger *slog.Logger
}

func (l LogMailer) Send(ctx context.Context, msg Message) error {
	subject, _, err := Render(msg)
	if err != nil {
		return err
	}
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "mail not sent (log driver)",
		"to", msg.To,
		"kind", msg.Kind,
		"subject", subject,
		"code", msg.Code,
	)
	return nil
}

// Memory records messages. Tests read codes back out of it.
type Memory struct {
	mu   sync.Mutex
	sent []Message
	Err  error
}

func (m *Memory) Send(_ context.Context, msg Message) error {
	if _, _, err := Render(msg); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.sent = append(m.sent, msg)
	return nil
}

// Last returns the most recent message of kind sent to to.
func (m *Memory) Last(to string, kind Kind) (Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].To == to && m.sent[i].Kind == kind {
			return m.sent[i], true
		}
	}
	return Message{}, false
}

func (m *Memory) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}
