package mailer

import "context"

// Mailer sends identity-related mail on behalf of the portal. Today that is a
// single message: the verification reminder re-sent when a student with an
// unverified email hits a gated endpoint.
//
// Sends are best-effort everywhere they are invoked: failures are logged by
// the caller and never block a response.
type Mailer interface {
	SendVerificationReminder(ctx context.Context, to string) error
}
