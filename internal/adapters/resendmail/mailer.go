// Package resendmail sends portal emails through the Resend API.
package resendmail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// Mailer is a Resend-backed implementation of mailer.Mailer.
type Mailer struct {
	client *resend.Client
	from   string
	log    *slog.Logger
}

func NewMailer(apiKey, from string, log *slog.Logger) *Mailer {
	if log == nil {
		log = slog.Default()
	}
	return &Mailer{
		client: resend.NewClient(apiKey),
		from:   from,
		log:    log,
	}
}

func (m *Mailer) SendVerificationReminder(ctx context.Context, to string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: "Verify your email to use the activities portal",
		Html: `<p>Your account email is not verified yet.</p>` +
			`<p>Please open the verification link we sent when you signed up, ` +
			`then sign in to the portal again.</p>`,
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		m.log.Error("resend_send_failed", "error", err, "to", to)
		return fmt.Errorf("resend send failed: %w", err)
	}

	m.log.Info("resend_sent", "message_id", sent.Id, "to", to)
	return nil
}
