package registrationrepo

import (
	"context"
	"sync"

	"github.com/klxtra/activities-api/internal/ports/out/registrationrepo"
)

// Repo is an in-memory implementation of registrationrepo.Repository.
// It is safe for concurrent use.
//
// Records are held in an append slice so that ListAll and ListByRoll return
// insertion order, which the aggregation layer's stable sorts rely on for
// deterministic tie-breaking.
type Repo struct {
	mu   sync.RWMutex
	recs []registrationrepo.Registration
}

func NewRepo() *Repo {
	return &Repo{}
}

func (r *Repo) Create(ctx context.Context, rec registrationrepo.Registration) error {
	_ = ctx
	if rec.ID == "" {
		return registrationrepo.ErrAlreadyExists // treat empty ID as invalid; the app layer generates IDs
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.recs {
		if existing.ID == rec.ID {
			return registrationrepo.ErrAlreadyExists
		}
	}
	r.recs = append(r.recs, rec)
	return nil
}

func (r *Repo) ListAll(ctx context.Context) ([]registrationrepo.Registration, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]registrationrepo.Registration(nil), r.recs...), nil
}

func (r *Repo) ListByRoll(ctx context.Context, roll string) ([]registrationrepo.Registration, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]registrationrepo.Registration, 0)
	for _, rec := range r.recs {
		if rec.StudentRoll == roll {
			out = append(out, rec)
		}
	}
	return out, nil
}
