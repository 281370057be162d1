package activityrepo

import (
	"testing"

	"github.com/klxtra/activities-api/internal/adapters/contracttest"
	"github.com/klxtra/activities-api/internal/adapters/postgres/testutil"
	activityrepoport "github.com/klxtra/activities-api/internal/ports/out/activityrepo"
)

func TestContract_PostgresActivityRepo(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)

	contracttest.RunActivityRepo(t, func(t *testing.T) (activityrepoport.Repository, func()) {
		t.Helper()
		return NewRepo(pool), nil
	})
}
