package registrations

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/klxtra/activities-api/internal/domain"
	"github.com/klxtra/activities-api/internal/ports/out/activityrepo"
	clockport "github.com/klxtra/activities-api/internal/ports/out/clock"
	"github.com/klxtra/activities-api/internal/ports/out/registrationrepo"
)

type Service struct {
	regs registrationrepo.Repository
	acts activityrepo.Repository
	clk  clockport.Clock

	newRegistrationID func() domain.RegistrationID
}

func NewService(regs registrationrepo.Repository, acts activityrepo.Repository, clk clockport.Clock) *Service {
	return &Service{
		regs: regs,
		acts: acts,
		clk:  clk,
		newRegistrationID: func() domain.RegistrationID {
			return domain.RegistrationID(uuid.NewString())
		},
	}
}

// SetNewRegistrationIDForTest overrides registration ID generation for
// deterministic tests. It should not be used in production code.
func (s *Service) SetNewRegistrationIDForTest(fn func() domain.RegistrationID) {
	if fn != nil {
		s.newRegistrationID = fn
	}
}

type RegisterInput struct {
	ActivityID  domain.ActivityID
	StudentName string
	StudentRoll string
}

// Register appends a registration for an activity. Name and roll are trimmed
// on write; no uniqueness constraint applies, so the same student+activity
// pair may register multiple times.
func (s *Service) Register(ctx context.Context, in RegisterInput) (domain.Registration, error) {
	name := strings.TrimSpace(in.StudentName)
	roll := strings.TrimSpace(in.StudentRoll)
	if name == "" || roll == "" {
		details := map[string]any{}
		if name == "" {
			details["studentName"] = "must be non-empty"
		}
		if roll == "" {
			details["studentRoll"] = "must be non-empty"
		}
		return domain.Registration{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "name and roll number are required", Details: details}
	}

	if _, err := s.acts.GetByID(ctx, in.ActivityID); err != nil {
		if errors.Is(err, activityrepo.ErrNotFound) {
			return domain.Registration{}, &Error{Status: 404, Code: "ACTIVITY_NOT_FOUND", Message: "activity not found"}
		}
		return domain.Registration{}, err
	}

	r := registrationrepo.Registration{
		ID:           s.newRegistrationID(),
		ActivityID:   in.ActivityID,
		StudentName:  name,
		StudentRoll:  roll,
		Status:       domain.RegistrationStatusRegistered,
		RegisteredAt: domain.NewTimestamp(s.clk.Now()),
	}
	if err := s.regs.Create(ctx, r); err != nil {
		return domain.Registration{}, err
	}
	return toDomain(r), nil
}

// ListByRoll returns all registrations whose stored roll is byte-for-byte
// equal to the supplied string. The filter is pushed down to the store; an
// empty roll is rejected locally before any remote call. The input is trimmed
// to match what the creation path applied on write — no further normalization.
func (s *Service) ListByRoll(ctx context.Context, roll string) ([]domain.Registration, error) {
	roll = strings.TrimSpace(roll)
	if roll == "" {
		return nil, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "roll number is required", Details: map[string]any{"roll": "must be non-empty"}}
	}
	rs, err := s.regs.ListByRoll(ctx, roll)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Registration, 0, len(rs))
	for _, r := range rs {
		out = append(out, toDomain(r))
	}
	return out, nil
}

func toDomain(r registrationrepo.Registration) domain.Registration {
	return domain.Registration{
		ID:           r.ID,
		ActivityID:   r.ActivityID,
		StudentName:  r.StudentName,
		StudentRoll:  r.StudentRoll,
		Status:       r.Status,
		RegisteredAt: r.RegisteredAt,
	}
}
