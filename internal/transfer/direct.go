package transfer

import (
	"context"
	"fmt"
	"strings"

	"github.com/mholtz/cabfetch/internal/models"
	"github.com/sirupsen/logrus"
)

// Direct has the appliance fetch the URL itself, skipping the local disk.
// It assumes wget is present on the appliance.
type Direct struct {
	host RemoteHost
}

// NewDirect creates the direct-download strategy
func NewDirect(host RemoteHost) *Direct {
	return &Direct{host: host}
}

// Name identifies the strategy
func (d *Direct) Name() string {
	return "direct"
}

// Transfer ensures the system directory exists and runs a single remote
// fetch command; exit status zero means success
func (d *Direct) Transfer(ctx context.Context, item models.QueueItem) error {
	if err := d.host.EnsureDirectory(item.System); err != nil {
		return err
	}

	remotePath := item.RemotePath(d.host.BasePath())
	logrus.Infof("Downloading %s directly to appliance...", item.Filename)

	command := fmt.Sprintf("wget -O '%s' '%s' 2>&1", remotePath, item.URL)
	stdout, _, code, err := d.host.Execute(command)
	if err != nil {
		return err
	}
	if code != 0 {
		return &models.CabFetchError{
			Type: models.ErrRemoteCommand,
			Item: item.Filename,
			Err:  fmt.Errorf("remote fetch exited with %d: %s", code, strings.TrimSpace(stdout)),
		}
	}

	logrus.Infof("Downloaded to %s", remotePath)
	return nil
}
