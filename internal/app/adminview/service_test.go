package adminview

import (
	"context"
	"testing"
	"time"

	memactivityrepo "github.com/klxtra/activities-api/internal/adapters/memory/activityrepo"
	memregistrationrepo "github.com/klxtra/activities-api/internal/adapters/memory/registrationrepo"
	memstudentrepo "github.com/klxtra/activities-api/internal/adapters/memory/studentrepo"
	"github.com/klxtra/activities-api/internal/domain"
	"github.com/klxtra/activities-api/internal/ports/out/activityrepo"
	"github.com/klxtra/activities-api/internal/ports/out/registrationrepo"
	"github.com/klxtra/activities-api/internal/ports/out/studentrepo"
)

func TestService_Dashboard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	acts := memactivityrepo.NewRepo()
	regs := memregistrationrepo.NewRepo()
	students := memstudentrepo.NewRepo()

	if err := acts.Create(ctx, activityrepo.Activity{
		ID: "a1", Title: "Hackathon", Type: domain.ActivityTypeEvent,
		Date: "2025-01-18", Location: "CSE Block", CreatedAt: time.Unix(100, 0).UTC(),
	}); err != nil {
		t.Fatalf("seed activity: %v", err)
	}
	if err := regs.Create(ctx, registrationrepo.Registration{
		ID: "r1", ActivityID: "a1", StudentName: "Om", StudentRoll: "2400012345",
		Status: domain.RegistrationStatusRegistered, RegisteredAt: domain.NewTimestamp(time.Unix(200, 0)),
	}); err != nil {
		t.Fatalf("seed registration: %v", err)
	}
	if err := students.Upsert(ctx, studentrepo.StudentProfile{
		Subject: "sub-1", Name: "Om", Email: "om@kluniversity.in",
		CreatedAt: time.Unix(50, 0).UTC(), UpdatedAt: time.Unix(50, 0).UTC(),
	}); err != nil {
		t.Fatalf("seed student: %v", err)
	}

	v, err := NewService(acts, regs, students).Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if v.TotalActivities != 1 || v.TotalRegistrations != 1 || v.TotalStudents != 1 {
		t.Fatalf("totals=%d/%d/%d, want 1/1/1", v.TotalActivities, v.TotalRegistrations, v.TotalStudents)
	}
	if v.Activities[0].RegisteredCount != 1 {
		t.Fatalf("count=%d, want 1", v.Activities[0].RegisteredCount)
	}
	if v.RecentRegistrations[0].ActivityTitle != "Hackathon" {
		t.Fatalf("joined title=%q", v.RecentRegistrations[0].ActivityTitle)
	}
}
