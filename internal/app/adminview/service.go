package adminview

import (
	"context"

	"github.com/klxtra/activities-api/internal/domain"
	"github.com/klxtra/activities-api/internal/ports/out/activityrepo"
	"github.com/klxtra/activities-api/internal/ports/out/registrationrepo"
	"github.com/klxtra/activities-api/internal/ports/out/studentrepo"
)

// Service loads the three full collections and derives the dashboard. Every
// call is a full re-fetch: the view is only as fresh as its last explicit
// reload, and there is no incremental or streaming update.
type Service struct {
	acts     activityrepo.Repository
	regs     registrationrepo.Repository
	students studentrepo.Repository
}

func NewService(acts activityrepo.Repository, regs registrationrepo.Repository, students studentrepo.Repository) *Service {
	return &Service{acts: acts, regs: regs, students: students}
}

func (s *Service) Dashboard(ctx context.Context) (AdminView, error) {
	as, err := s.acts.ListAll(ctx)
	if err != nil {
		return AdminView{}, err
	}
	rs, err := s.regs.ListAll(ctx)
	if err != nil {
		return AdminView{}, err
	}
	ps, err := s.students.ListAll(ctx)
	if err != nil {
		return AdminView{}, err
	}

	activities := make([]domain.Activity, 0, len(as))
	for _, a := range as {
		activities = append(activities, domain.Activity{
			ID:          a.ID,
			Title:       a.Title,
			Type:        a.Type,
			Date:        a.Date,
			Location:    a.Location,
			Description: a.Description,
			CreatedAt:   a.CreatedAt,
		})
	}
	registrations := make([]domain.Registration, 0, len(rs))
	for _, r := range rs {
		registrations = append(registrations, domain.Registration{
			ID:           r.ID,
			ActivityID:   r.ActivityID,
			StudentName:  r.StudentName,
			StudentRoll:  r.StudentRoll,
			Status:       r.Status,
			RegisteredAt: r.RegisteredAt,
		})
	}
	students := make([]domain.StudentProfile, 0, len(ps))
	for _, p := range ps {
		students = append(students, domain.StudentProfile{
			Subject:   p.Subject,
			Name:      p.Name,
			Email:     p.Email,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		})
	}

	return Build(activities, registrations, students), nil
}
