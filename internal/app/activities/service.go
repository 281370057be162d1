package activities

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/klxtra/activities-api/internal/domain"
	"github.com/klxtra/activities-api/internal/ports/out/activityrepo"
	clockport "github.com/klxtra/activities-api/internal/ports/out/clock"
)

type Service struct {
	acts activityrepo.Repository
	clk  clockport.Clock

	newActivityID func() domain.ActivityID
}

func NewService(acts activityrepo.Repository, clk clockport.Clock) *Service {
	return &Service{
		acts: acts,
		clk:  clk,
		newActivityID: func() domain.ActivityID {
			return domain.ActivityID(uuid.NewString())
		},
	}
}

// SetNewActivityIDForTest overrides activity ID generation for deterministic tests.
// It should not be used in production code.
func (s *Service) SetNewActivityIDForTest(fn func() domain.ActivityID) {
	if fn != nil {
		s.newActivityID = fn
	}
}

type CreateActivityInput struct {
	Title       string
	Type        domain.ActivityType
	Date        string
	Location    string
	Description string
}

// Create publishes a new activity. Activities are immutable once created.
// Role enforcement (admin only) happens at the HTTP layer.
func (s *Service) Create(ctx context.Context, in CreateActivityInput) (domain.Activity, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Activity{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid title", Details: map[string]any{"title": "must be non-empty"}}
	}
	if !in.Type.Valid() {
		return domain.Activity{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid type", Details: map[string]any{"type": "must be one of Club, Sports, Event, Workshop"}}
	}
	date := strings.TrimSpace(in.Date)
	if date == "" {
		return domain.Activity{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid date", Details: map[string]any{"date": "must be non-empty"}}
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return domain.Activity{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid date", Details: map[string]any{"date": "must be an ISO date (YYYY-MM-DD)"}}
	}
	location := strings.TrimSpace(in.Location)
	if location == "" {
		return domain.Activity{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid location", Details: map[string]any{"location": "must be non-empty"}}
	}

	now := s.clk.Now()
	a := activityrepo.Activity{
		ID:          s.newActivityID(),
		Title:       title,
		Type:        in.Type,
		Date:        date,
		Location:    location,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
	}
	if err := s.acts.Create(ctx, a); err != nil {
		if errors.Is(err, activityrepo.ErrAlreadyExists) {
			// Extremely unlikely (UUID collision); treat as conflict.
			return domain.Activity{}, &Error{Status: 409, Code: "ACTIVITY_ID_CONFLICT", Message: "activity id conflict"}
		}
		return domain.Activity{}, err
	}
	return toDomain(a), nil
}

// ListForStudents returns the full activity list sorted ascending by date,
// empty dates first. ISO date strings order correctly under plain string
// comparison, which is what the listing relies on.
func (s *Service) ListForStudents(ctx context.Context) ([]domain.Activity, error) {
	as, err := s.acts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Activity, 0, len(as))
	for _, a := range as {
		out = append(out, toDomain(a))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out, nil
}

// GetByID resolves a single activity.
func (s *Service) GetByID(ctx context.Context, id domain.ActivityID) (domain.Activity, error) {
	a, err := s.acts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, activityrepo.ErrNotFound) {
			return domain.Activity{}, &Error{Status: 404, Code: "ACTIVITY_NOT_FOUND", Message: "activity not found"}
		}
		return domain.Activity{}, err
	}
	return toDomain(a), nil
}

func toDomain(a activityrepo.Activity) domain.Activity {
	return domain.Activity{
		ID:          a.ID,
		Title:       a.Title,
		Type:        a.Type,
		Date:        a.Date,
		Location:    a.Location,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
	}
}
