package transfer

import (
	"context"

	"github.com/mholtz/cabfetch/internal/catalog"
	"github.com/mholtz/cabfetch/internal/models"
	"github.com/mholtz/cabfetch/internal/remote"
)

// RemoteHost is the appliance surface the strategies need
type RemoteHost interface {
	Execute(command string) (stdout, stderr string, exitCode int, err error)
	EnsureDirectory(system string) error
	CopyFile(ctx context.Context, localPath, remotePath string, progress models.ProgressFunc) error
	BasePath() string
}

var _ RemoteHost = (*remote.Session)(nil)

// Fetcher stages a remote resource onto the local disk
type Fetcher interface {
	Download(ctx context.Context, rawURL, localPath string, progress models.ProgressFunc) error
}

var _ Fetcher = (*catalog.Client)(nil)

// Strategy moves one queue item to the appliance
type Strategy interface {
	// Name identifies the strategy in logs and summaries
	Name() string

	// Transfer moves item to its destination on the appliance
	Transfer(ctx context.Context, item models.QueueItem) error
}
