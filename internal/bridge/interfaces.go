package bridge

import (
	"context"
	"time"

	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/bridge/service/executor"
	"github.com/FradSer/mcp-server-apple-reminders-sub000/internal/bridge/service/permission"
)

// binaryResolver locates the validated helper binary path.
type binaryResolver interface {
	Resolve() (string, error)
}

// commandExecutor runs a binary with captured output and a timeout.
type commandExecutor interface {
	Run(ctx context.Context, path string, args []string, timeout time.Duration) (*executor.Result, error)
}

// consentTrigger surfaces the OS consent dialog for a permission domain.
type consentTrigger interface {
	Request(ctx context.Context, domain permission.Domain) error
}
