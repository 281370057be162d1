package profiles

import (
	"context"
	"errors"

	"github.com/klxtra/activities-api/internal/app/roles"
	"github.com/klxtra/activities-api/internal/domain"
	clockport "github.com/klxtra/activities-api/internal/ports/out/clock"
	"github.com/klxtra/activities-api/internal/ports/out/studentrepo"
)

type Service struct {
	students studentrepo.Repository
	roles    *roles.Resolver
	clk      clockport.Clock
}

func NewService(students studentrepo.Repository, rolesResolver *roles.Resolver, clk clockport.Clock) *Service {
	return &Service{
		students: students,
		roles:    rolesResolver,
		clk:      clk,
	}
}

// Upsert ensures a student profile exists for the identity, merging rather
// than overwriting so registration history tied to the same subject is
// preserved. Admin identities are never upserted: the call is a no-op success
// so the fire-and-forget session-start path needs no special casing.
//
// The profile name falls back through formName → provider display name → local
// part of the email, and is never empty when an email is present.
//
// Both timestamps are stamped on every write. Merge semantics mean CreatedAt
// is effectively overwritten on each call; that matches the portal's current
// behavior and is deliberate.
func (s *Service) Upsert(ctx context.Context, identity domain.Identity, formName string) (domain.StudentProfile, error) {
	if identity.Subject == "" {
		return domain.StudentProfile{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid identity",
			Details: map[string]any{"subject": "must be non-empty"},
		}
	}
	if s.roles.IsAdmin(identity.Email) {
		return domain.StudentProfile{}, nil
	}

	name := domain.NormalizeHumanName(formName)
	if name == "" {
		name = domain.NormalizeHumanName(identity.Name)
	}
	if name == "" {
		name = domain.EmailLocalPart(identity.Email)
	}

	now := s.clk.Now()
	p := studentrepo.StudentProfile{
		Subject:   identity.Subject,
		Name:      name,
		Email:     identity.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.students.Upsert(ctx, p); err != nil {
		return domain.StudentProfile{}, err
	}
	return toDomain(p), nil
}

// GetBySubject returns the stored profile for a subject.
func (s *Service) GetBySubject(ctx context.Context, subject domain.SubjectID) (domain.StudentProfile, error) {
	p, err := s.students.GetBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, studentrepo.ErrNotFound) {
			return domain.StudentProfile{}, &Error{
				Status:  404,
				Code:    "PROFILE_NOT_FOUND",
				Message: "no student profile exists for the authenticated subject",
			}
		}
		return domain.StudentProfile{}, err
	}
	return toDomain(p), nil
}

func toDomain(p studentrepo.StudentProfile) domain.StudentProfile {
	return domain.StudentProfile{
		Subject:   p.Subject,
		Name:      p.Name,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
