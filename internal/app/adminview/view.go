package adminview

import (
	"sort"

	"github.com/klxtra/activities-api/internal/domain"
)

// ActivityStats is an activity annotated with its registration count for the
// admin dashboard.
type ActivityStats struct {
	domain.Activity

	RegisteredCount int
}

// RegistrationEntry is a registration joined to its activity title for the
// recent-registrations feed.
type RegistrationEntry struct {
	domain.Registration

	// ActivityTitle is the joined title; when the referenced activity is
	// missing it falls back to the raw activity id, and to "Unknown" when the
	// reference itself is empty.
	ActivityTitle string
}

// AdminView is the derived admin dashboard model.
type AdminView struct {
	// Activities is sorted descending by creation time; activities without a
	// creation timestamp sort last. Counts skip registrations with no
	// activity reference.
	Activities []ActivityStats

	// CountByActivity groups registrations on their activity reference.
	CountByActivity map[domain.ActivityID]int

	// TitleByActivity is the id → title lookup used for display joins.
	TitleByActivity map[domain.ActivityID]string

	// RecentRegistrations is sorted descending by registration time, floored
	// to seconds; absent or unparseable timestamps sort oldest. Ties keep
	// input order.
	RecentRegistrations []RegistrationEntry

	// Students is the roster in store order.
	Students []domain.StudentProfile

	TotalActivities int
	// TotalRegistrations counts the full registration list, including records
	// excluded from per-activity counts by a missing activity reference.
	TotalRegistrations int
	TotalStudents      int
}

// Build derives the admin dashboard model from full snapshots of the three
// collections. It is a pure function: deterministic given its inputs, total
// over them (empty inputs produce empty/zero outputs), and unaware of
// pagination — it assumes the collections fit in memory, which bounds this
// design's scalability by construction.
func Build(activities []domain.Activity, registrations []domain.Registration, students []domain.StudentProfile) AdminView {
	counts := make(map[domain.ActivityID]int)
	for _, r := range registrations {
		if r.ActivityID == "" {
			continue
		}
		counts[r.ActivityID]++
	}

	titles := make(map[domain.ActivityID]string, len(activities))
	for _, a := range activities {
		titles[a.ID] = a.Title
	}

	acts := make([]ActivityStats, 0, len(activities))
	for _, a := range activities {
		acts = append(acts, ActivityStats{Activity: a, RegisteredCount: counts[a.ID]})
	}
	sort.SliceStable(acts, func(i, j int) bool {
		return acts[i].CreatedAt.After(acts[j].CreatedAt)
	})

	recent := make([]RegistrationEntry, 0, len(registrations))
	for _, r := range registrations {
		recent = append(recent, RegistrationEntry{Registration: r, ActivityTitle: joinTitle(titles, r.ActivityID)})
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].RegisteredAt.Seconds() > recent[j].RegisteredAt.Seconds()
	})

	return AdminView{
		Activities:          acts,
		CountByActivity:     counts,
		TitleByActivity:     titles,
		RecentRegistrations: recent,
		Students:            append([]domain.StudentProfile(nil), students...),
		TotalActivities:     len(activities),
		TotalRegistrations:  len(registrations),
		TotalStudents:       len(students),
	}
}

func joinTitle(titles map[domain.ActivityID]string, id domain.ActivityID) string {
	if t, ok := titles[id]; ok {
		return t
	}
	if id != "" {
		return string(id)
	}
	return "Unknown"
}
