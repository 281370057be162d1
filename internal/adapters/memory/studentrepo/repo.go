package studentrepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/klxtra/activities-api/internal/domain"
	"github.com/klxtra/activities-api/internal/ports/out/studentrepo"
)

// Repo is an in-memory implementation of studentrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu sync.RWMutex

	bySubject map[domain.SubjectID]studentrepo.StudentProfile
}

func NewRepo() *Repo {
	return &Repo{
		bySubject: make(map[domain.SubjectID]studentrepo.StudentProfile),
	}
}

func (r *Repo) Upsert(ctx context.Context, p studentrepo.StudentProfile) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	// Merge by subject, last-write-wins. All fields are provided on every
	// write, so the merge degenerates to a replace.
	r.bySubject[p.Subject] = p
	return nil
}

func (r *Repo) GetBySubject(ctx context.Context, subject domain.SubjectID) (studentrepo.StudentProfile, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.bySubject[subject]
	if !ok {
		return studentrepo.StudentProfile{}, studentrepo.ErrNotFound
	}
	return p, nil
}

func (r *Repo) ListAll(ctx context.Context) ([]studentrepo.StudentProfile, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]studentrepo.StudentProfile, 0, len(r.bySubject))
	for _, p := range r.bySubject {
		out = append(out, p)
	}
	sortProfilesByName(out)
	return out, nil
}

func sortProfilesByName(ps []studentrepo.StudentProfile) {
	sort.Slice(ps, func(i, j int) bool {
		ni := strings.ToLower(ps[i].Name)
		nj := strings.ToLower(ps[j].Name)
		if ni == nj {
			return string(ps[i].Subject) < string(ps[j].Subject)
		}
		return ni < nj
	})
}
