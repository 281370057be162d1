package registrationrepo

import (
	"testing"

	"github.com/klxtra/activities-api/internal/adapters/contracttest"
	"github.com/klxtra/activities-api/internal/adapters/postgres/testutil"
	registrationrepoport "github.com/klxtra/activities-api/internal/ports/out/registrationrepo"
)

func TestContract_PostgresRegistrationRepo(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)

	contracttest.RunRegistrationRepo(t, func(t *testing.T) (registrationrepoport.Repository, func()) {
		t.Helper()
		return NewRepo(pool), nil
	})
}
