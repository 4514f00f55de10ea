package ports

import (
	"context"

	"github.com/stemd-dev/stemd/internal/domain"
)

// ToolInvoker runs the external separation tool as a black box. A non-nil
// error means the tool never started (configuration error or launch
// failure); any process that actually ran comes back as a Result, even
// when it exited non-zero.
type ToolInvoker interface {
	Invoke(ctx context.Context, req domain.Request) (*domain.Result, error)
}
