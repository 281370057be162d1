package idempotency_test

import (
	"testing"

	"github.com/klxtra/activities-api/internal/adapters/contracttest"
	memidempotency "github.com/klxtra/activities-api/internal/adapters/memory/idempotency"
	idempotencyport "github.com/klxtra/activities-api/internal/ports/out/idempotency"
)

func TestStore_Contract(t *testing.T) {
	t.Parallel()
	contracttest.RunIdempotencyStore(t, func(t *testing.T) (idempotencyport.Store, contracttest.CleanupFunc) {
		return memidempotency.NewStore(), nil
	})
}
