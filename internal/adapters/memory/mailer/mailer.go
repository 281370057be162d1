package mailer

import (
	"context"
	"sync"
)

// Recorder is an in-memory mailer.Mailer that records every send. It backs
// tests and deployments where no mail provider is configured.
type Recorder struct {
	mu    sync.Mutex
	sends []string
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (m *Recorder) SendVerificationReminder(ctx context.Context, to string) error {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sends = append(m.sends, to)
	return nil
}

// Sends returns the recipients of every recorded send, in order.
func (m *Recorder) Sends() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sends...)
}
