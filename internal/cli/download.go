package cli

import (
	"github.com/mholtz/cabfetch/internal/catalog"
	"github.com/mholtz/cabfetch/internal/config"
	"github.com/mholtz/cabfetch/internal/models"
	"github.com/mholtz/cabfetch/internal/remote"
	"github.com/mholtz/cabfetch/internal/transfer"
	"github.com/spf13/cobra"
)

// NewDownloadCmd creates the download command
func NewDownloadCmd(cfg *config.Config) *cobra.Command {
	var url, system, filename string
	var local bool

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download a ROM to the cabinet",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			session := remote.NewSession(cfg)
			if err := session.Connect(); err != nil {
				return err
			}
			defer session.Disconnect()

			if filename == "" {
				filename = models.FilenameFromURL(url)
			}
			item := models.QueueItem{
				URL:      url,
				System:   system,
				Filename: filename,
				Status:   models.StatusPending,
			}

			return newStrategy(session, local).Transfer(cmd.Context(), item)
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Download URL")
	cmd.Flags().StringVar(&system, "system", "", "Target system (e.g. mame, fba)")
	cmd.Flags().StringVar(&filename, "filename", "", "Custom filename")
	cmd.Flags().BoolVar(&local, "local", false, "Download locally, then transfer over SCP")
	cmd.MarkFlagRequired("url")
	cmd.MarkFlagRequired("system")

	return cmd
}

// newStrategy selects the transfer strategy for one invocation
func newStrategy(session *remote.Session, local bool) transfer.Strategy {
	if local {
		return transfer.NewLocalCopy(session, catalog.NewClient(), "", newProgressBar())
	}
	return transfer.NewDirect(session)
}
