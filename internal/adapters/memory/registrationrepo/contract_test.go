package registrationrepo_test

import (
	"testing"

	"github.com/klxtra/activities-api/internal/adapters/contracttest"
	memregistrationrepo "github.com/klxtra/activities-api/internal/adapters/memory/registrationrepo"
	registrationrepoport "github.com/klxtra/activities-api/internal/ports/out/registrationrepo"
)

func TestRepo_Contract(t *testing.T) {
	t.Parallel()
	contracttest.RunRegistrationRepo(t, func(t *testing.T) (registrationrepoport.Repository, contracttest.CleanupFunc) {
		return memregistrationrepo.NewRepo(), nil
	})
}
