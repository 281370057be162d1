package domain

// Role classifies an authenticated identity. Roles are derived from the
// identity's email address against a configured admin allowlist; nothing is
// stored server-side.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStudent Role = "STUDENT"
)

// Identity is the authenticated principal as reported by the external identity
// provider. It is read-only to this system.
type Identity struct {
	Subject SubjectID
	Email   string
	Name    string

	EmailVerified bool
}
