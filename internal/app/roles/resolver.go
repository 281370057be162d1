package roles

import "github.com/klxtra/activities-api/internal/domain"

// Resolver classifies an authenticated identity as Admin or Student by exact,
// case-sensitive match of its email against a fixed allowlist. No roles are
// stored server-side; adding an admin is a configuration change.
//
// A role check at this layer is advisory for clients; the HTTP layer enforces
// it on every admin-gated route.
type Resolver struct {
	admins map[string]struct{}
}

func NewResolver(adminEmails []string) *Resolver {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		if e == "" {
			continue
		}
		admins[e] = struct{}{}
	}
	return &Resolver{admins: admins}
}

// Resolve returns Admin if and only if email is byte-equal to an allowlist
// entry. Absence of an email is a non-match and resolves to Student.
func (r *Resolver) Resolve(email string) domain.Role {
	if _, ok := r.admins[email]; ok {
		return domain.RoleAdmin
	}
	return domain.RoleStudent
}

func (r *Resolver) IsAdmin(email string) bool {
	return r.Resolve(email) == domain.RoleAdmin
}
