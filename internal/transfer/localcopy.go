package transfer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mholtz/cabfetch/internal/models"
	"github.com/mholtz/cabfetch/internal/utils"
	"github.com/sirupsen/logrus"
)

// LocalCopy stages the file on the local disk first, then pushes it to the
// appliance over the file-copy channel
type LocalCopy struct {
	host     RemoteHost
	fetcher  Fetcher
	stageDir string
	progress models.ProgressFunc
}

// NewLocalCopy creates the local-then-copy strategy. An empty stageDir falls
// back to the system temp directory.
func NewLocalCopy(host RemoteHost, fetcher Fetcher, stageDir string, progress models.ProgressFunc) *LocalCopy {
	if stageDir == "" {
		stageDir = os.TempDir()
	}
	return &LocalCopy{
		host:     host,
		fetcher:  fetcher,
		stageDir: stageDir,
		progress: progress,
	}
}

// Name identifies the strategy
func (l *LocalCopy) Name() string {
	return "local-then-copy"
}

// Transfer downloads the item to a staging file, copies it to the appliance
// and removes the staging file whether or not the copy succeeded. A failed
// download aborts before any remote interaction.
func (l *LocalCopy) Transfer(ctx context.Context, item models.QueueItem) error {
	stagePath := filepath.Join(l.stageDir, uuid.NewString()+"-"+item.Filename)

	logrus.Infof("Downloading %s to staging area...", item.Filename)
	if err := l.fetcher.Download(ctx, item.URL, stagePath, l.progress); err != nil {
		return err
	}

	defer func() {
		if err := utils.RemoveIfExists(stagePath); err != nil {
			logrus.Warnf("Failed to remove staging file %s: %v", stagePath, err)
		}
	}()

	if err := l.host.EnsureDirectory(item.System); err != nil {
		return err
	}

	remotePath := item.RemotePath(l.host.BasePath())
	return l.host.CopyFile(ctx, stagePath, remotePath, l.progress)
}
