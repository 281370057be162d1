package activityrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/klxtra/activities-api/internal/domain"
	"github.com/klxtra/activities-api/internal/ports/out/activityrepo"
)

// Repo is an in-memory implementation of activityrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu sync.RWMutex

	byID map[domain.ActivityID]activityrepo.Activity
}

func NewRepo() *Repo {
	return &Repo{
		byID: make(map[domain.ActivityID]activityrepo.Activity),
	}
}

func (r *Repo) Create(ctx context.Context, a activityrepo.Activity) error {
	_ = ctx
	if a.ID == "" {
		return activityrepo.ErrAlreadyExists // treat empty ID as invalid; the app layer generates IDs
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[a.ID]; ok {
		return activityrepo.ErrAlreadyExists
	}
	r.byID[a.ID] = a
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.ActivityID) (activityrepo.Activity, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return activityrepo.Activity{}, activityrepo.ErrNotFound
	}
	return a, nil
}

func (r *Repo) ListAll(ctx context.Context) ([]activityrepo.Activity, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]activityrepo.Activity, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return string(out[i].ID) < string(out[j].ID)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
