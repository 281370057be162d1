package profiles

import (
	"context"
	"errors"
	"testing"
	"time"

	memclock "github.com/klxtra/activities-api/internal/adapters/memory/clock"
	memstudentrepo "github.com/klxtra/activities-api/internal/adapters/memory/studentrepo"
	"github.com/klxtra/activities-api/internal/app/roles"
	"github.com/klxtra/activities-api/internal/domain"
)

func newTestService() (*Service, *memstudentrepo.Repo, *memclock.ManualClock) {
	repo := memstudentrepo.NewRepo()
	clk := memclock.NewManualClock(time.Unix(1000, 0).UTC())
	svc := NewService(repo, roles.NewResolver([]string{"admin@kluportal.in"}), clk)
	return svc, repo, clk
}

func TestService_Upsert_NameFallback(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		formName string
		identity domain.Identity
		want     string
	}{
		{
			name:     "form name wins",
			formName: "Om Kumar",
			identity: domain.Identity{Subject: "sub-1", Email: "jane@x.edu", Name: "Jane"},
			want:     "Om Kumar",
		},
		{
			name:     "display name when form name empty",
			formName: "",
			identity: domain.Identity{Subject: "sub-1", Email: "jane@x.edu", Name: "Jane"},
			want:     "Jane",
		},
		{
			name:     "email local part as last resort",
			formName: "",
			identity: domain.Identity{Subject: "sub-1", Email: "jane@x.edu", Name: ""},
			want:     "jane",
		},
		{
			name:     "whitespace form name falls through",
			formName: "   ",
			identity: domain.Identity{Subject: "sub-1", Email: "jane@x.edu", Name: "  "},
			want:     "jane",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, _, _ := newTestService()
			p, err := svc.Upsert(context.Background(), tc.identity, tc.formName)
			if err != nil {
				t.Fatalf("Upsert: %v", err)
			}
			if p.Name != tc.want {
				t.Fatalf("name=%q, want %q", p.Name, tc.want)
			}
		})
	}
}

func TestService_Upsert_IdempotentVisibleEffect(t *testing.T) {
	t.Parallel()

	svc, repo, clk := newTestService()
	id := domain.Identity{Subject: "sub-1", Email: "jane@x.edu", Name: "Jane"}

	first, err := svc.Upsert(context.Background(), id, "")
	if err != nil {
		t.Fatalf("first Upsert: %v", err)
	}
	clk.Advance(time.Minute)
	second, err := svc.Upsert(context.Background(), id, "")
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if first.Name != second.Name || first.Email != second.Email {
		t.Fatalf("name/email changed between calls: %+v vs %+v", first, second)
	}

	// Current behavior: both timestamps move on every write, CreatedAt included.
	stored, err := repo.GetBySubject(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("GetBySubject: %v", err)
	}
	if !stored.CreatedAt.Equal(clk.Now()) || !stored.UpdatedAt.Equal(clk.Now()) {
		t.Fatalf("timestamps=%v/%v, want both %v", stored.CreatedAt, stored.UpdatedAt, clk.Now())
	}
}

func TestService_Upsert_AdminIsNoOp(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService()
	_, err := svc.Upsert(context.Background(), domain.Identity{Subject: "sub-admin", Email: "admin@kluportal.in"}, "")
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	ps, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(ps) != 0 {
		t.Fatalf("admin identity was upserted: %+v", ps)
	}
}

func TestService_Upsert_MissingSubject(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService()
	_, err := svc.Upsert(context.Background(), domain.Identity{}, "")
	ae := (*Error)(nil)
	if !errors.As(err, &ae) || ae.Status != 422 {
		t.Fatalf("err=%v, want 422 validation error", err)
	}
}
