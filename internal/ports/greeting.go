package ports

import (
	"context"

	"github.com/camixfedex/saludo-app/internal/domain/greeting"
)

// GreetingClient issues one GET to the greeting endpoint and returns
// the decoded reply. Errors are typed for classification: a non-200
// status maps to *greeting.StatusError, an elapsed bound to
// greeting.ErrTimeout, and anything else is a transport fault.
type GreetingClient interface {
	Fetch(ctx context.Context) (greeting.Reply, error)
}
