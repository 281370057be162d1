// Package contracttest holds behavioral contract suites shared by every
// repository adapter. Memory and postgres adapters run the same suites so the
// two backends stay interchangeable.
package contracttest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/klxtra/activities-api/internal/domain"
	activityrepoport "github.com/klxtra/activities-api/internal/ports/out/activityrepo"
	idempotencyport "github.com/klxtra/activities-api/internal/ports/out/idempotency"
	registrationrepoport "github.com/klxtra/activities-api/internal/ports/out/registrationrepo"
	studentrepoport "github.com/klxtra/activities-api/internal/ports/out/studentrepo"
)

type CleanupFunc = func()

type StudentRepoFactory func(t *testing.T) (studentrepoport.Repository, CleanupFunc)
type ActivityRepoFactory func(t *testing.T) (activityrepoport.Repository, CleanupFunc)
type RegistrationRepoFactory func(t *testing.T) (registrationrepoport.Repository, CleanupFunc)
type IdemStoreFactory func(t *testing.T) (idempotencyport.Store, CleanupFunc)

func RunStudentRepo(t *testing.T, newRepo StudentRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	now := time.Unix(1000, 0).UTC()

	// Upsert creates when absent.
	if err := repo.Upsert(ctx, studentrepoport.StudentProfile{
		Subject:   "sub-a",
		Name:      "Alice",
		Email:     "alice@example.edu",
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("Upsert create: %v", err)
	}
	got, err := repo.GetBySubject(ctx, "sub-a")
	if err != nil {
		t.Fatalf("GetBySubject: %v", err)
	}
	if got.Name != "Alice" || got.Email != "alice@example.edu" {
		t.Fatalf("unexpected profile: %+v", got)
	}

	// Upsert merges by subject: last write wins, both timestamps move.
	later := now.Add(time.Hour)
	if err := repo.Upsert(ctx, studentrepoport.StudentProfile{
		Subject:   "sub-a",
		Name:      "Alice Renamed",
		Email:     "alice@example.edu",
		CreatedAt: later,
		UpdatedAt: later,
	}); err != nil {
		t.Fatalf("Upsert merge: %v", err)
	}
	got, err = repo.GetBySubject(ctx, "sub-a")
	if err != nil {
		t.Fatalf("GetBySubject after merge: %v", err)
	}
	if got.Name != "Alice Renamed" || !got.CreatedAt.Equal(later) {
		t.Fatalf("merge did not overwrite: %+v", got)
	}

	// At most one profile per subject.
	ps, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(ps) != 1 {
		t.Fatalf("len=%d, want 1", len(ps))
	}

	// Deterministic ordering by name (case-insensitive), subject tiebreak.
	if err := repo.Upsert(ctx, studentrepoport.StudentProfile{
		Subject: "sub-b", Name: "bob", Email: "bob@example.edu", CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("Upsert b: %v", err)
	}
	if err := repo.Upsert(ctx, studentrepoport.StudentProfile{
		Subject: "sub-c", Name: "Aaron", Email: "aaron@example.edu", CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("Upsert c: %v", err)
	}
	ps, err = repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll ordered: %v", err)
	}
	if len(ps) != 3 || ps[0].Name != "Aaron" || ps[1].Name != "Alice Renamed" || ps[2].Name != "bob" {
		t.Fatalf("unexpected order: %+v", ps)
	}

	if _, err := repo.GetBySubject(ctx, "sub-missing"); err != studentrepoport.ErrNotFound {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func RunActivityRepo(t *testing.T, newRepo ActivityRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	now := time.Unix(1000, 0).UTC()
	aID := domain.ActivityID(uuid.NewString())
	if err := repo.Create(ctx, activityrepoport.Activity{
		ID:        aID,
		Title:     "Hackathon",
		Type:      domain.ActivityTypeEvent,
		Date:      "2025-01-18",
		Location:  "CSE Block",
		CreatedAt: now,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetByID(ctx, aID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Hackathon" || got.Type != domain.ActivityTypeEvent || got.Date != "2025-01-18" {
		t.Fatalf("unexpected activity: %+v", got)
	}

	// ID uniqueness.
	if err := repo.Create(ctx, activityrepoport.Activity{
		ID: aID, Title: "Dup", Type: domain.ActivityTypeClub, Date: "2025-02-01", Location: "Hall", CreatedAt: now,
	}); err != activityrepoport.ErrAlreadyExists {
		t.Fatalf("err=%v, want ErrAlreadyExists", err)
	}

	// Deterministic ordering by CreatedAt ascending.
	bID := domain.ActivityID(uuid.NewString())
	if err := repo.Create(ctx, activityrepoport.Activity{
		ID: bID, Title: "Earlier", Type: domain.ActivityTypeClub, Date: "2025-02-01", Location: "Hall",
		CreatedAt: now.Add(-time.Hour),
	}); err != nil {
		t.Fatalf("Create b: %v", err)
	}
	as, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(as) != 2 || as[0].ID != bID || as[1].ID != aID {
		t.Fatalf("unexpected order: %+v", as)
	}

	if _, err := repo.GetByID(ctx, domain.ActivityID(uuid.NewString())); err != activityrepoport.ErrNotFound {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func RunRegistrationRepo(t *testing.T, newRepo RegistrationRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	mk := func(roll string, at int64) registrationrepoport.Registration {
		return registrationrepoport.Registration{
			ID:           domain.RegistrationID(uuid.NewString()),
			ActivityID:   "act-1",
			StudentName:  "Om",
			StudentRoll:  roll,
			Status:       domain.RegistrationStatusRegistered,
			RegisteredAt: domain.NewTimestamp(time.Unix(at, 0)),
		}
	}

	first := mk("2400012345", 100)
	second := mk("2400012345", 100) // same roll, same instant: duplicates allowed
	other := mk("2400099999", 200)
	for _, rec := range []registrationrepoport.Registration{first, second, other} {
		if err := repo.Create(ctx, rec); err != nil {
			t.Fatalf("Create %s: %v", rec.ID, err)
		}
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len=%d, want 3", len(all))
	}
	// Insertion order.
	if all[0].ID != first.ID || all[1].ID != second.ID || all[2].ID != other.ID {
		t.Fatalf("unexpected order: %+v", all)
	}

	// Equality pushdown is byte-exact.
	rs, err := repo.ListByRoll(ctx, "2400012345")
	if err != nil {
		t.Fatalf("ListByRoll: %v", err)
	}
	if len(rs) != 2 {
		t.Fatalf("len=%d, want 2", len(rs))
	}
	rs, err = repo.ListByRoll(ctx, "2400012345 ")
	if err != nil {
		t.Fatalf("ListByRoll trailing space: %v", err)
	}
	if len(rs) != 0 {
		t.Fatalf("len=%d, want 0 (no normalization at the store)", len(rs))
	}

	// ID uniqueness.
	if err := repo.Create(ctx, first); err != registrationrepoport.ErrAlreadyExists {
		t.Fatalf("err=%v, want ErrAlreadyExists", err)
	}
}

func RunIdempotencyStore(t *testing.T, newStore IdemStoreFactory) {
	t.Helper()
	ctx := context.Background()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	fp := idempotencyport.Fingerprint{
		Key:      "k-1",
		Subject:  domain.SubjectID("sub-1"),
		Method:   "POST",
		Route:    "/v1/registrations",
		BodyHash: "",
	}
	rec := idempotencyport.Record{
		StatusCode:  0,
		ContentType: "text/plain",
		Body:        []byte("hash-abc"),
		CreatedAt:   time.Unix(123, 0).UTC(),
	}
	if err := store.Put(ctx, fp, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := store.Get(ctx, fp)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if string(got.Body) != "hash-abc" || got.ContentType != "text/plain" || got.StatusCode != 0 {
		t.Fatalf("unexpected record: %+v", got)
	}

	// Overwrite semantics.
	rec2 := rec
	rec2.Body = []byte("hash-def")
	if err := store.Put(ctx, fp, rec2); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	got, ok, err = store.Get(ctx, fp)
	if err != nil || !ok || string(got.Body) != "hash-def" {
		t.Fatalf("expected overwritten record, got ok=%v err=%v body=%q", ok, err, string(got.Body))
	}

	// A different body hash is a different fingerprint.
	fp2 := fp
	fp2.BodyHash = "deadbeef"
	if _, ok, err := store.Get(ctx, fp2); err != nil || ok {
		t.Fatalf("expected miss for distinct fingerprint, ok=%v err=%v", ok, err)
	}
}
