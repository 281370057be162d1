package activityrepo_test

import (
	"testing"

	"github.com/klxtra/activities-api/internal/adapters/contracttest"
	memactivityrepo "github.com/klxtra/activities-api/internal/adapters/memory/activityrepo"
	activityrepoport "github.com/klxtra/activities-api/internal/ports/out/activityrepo"
)

func TestRepo_Contract(t *testing.T) {
	t.Parallel()
	contracttest.RunActivityRepo(t, func(t *testing.T) (activityrepoport.Repository, contracttest.CleanupFunc) {
		return memactivityrepo.NewRepo(), nil
	})
}
