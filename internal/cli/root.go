package cli

import (
	"github.com/mholtz/cabfetch/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg := config.Default()
	var cfgPath string

	rootCmd := &cobra.Command{
		Use:   "cabfetch",
		Short: "Search archive.org for arcade ROMs and send them to a Batocera cabinet",
		Long: `Cabfetch searches archive.org ROM collections and transfers selected
files to a Batocera arcade cabinet over SSH.

Downloads can run immediately or through a persisted queue. By default the
cabinet fetches files itself (direct mode); with --local the file is staged
on this machine first and pushed over SCP.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}

			loaded, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			*cfg = *loaded

			// Flags override the config file
			flags := cmd.Flags()
			if flags.Changed("host") {
				cfg.Host, _ = flags.GetString("host")
			}
			if flags.Changed("username") {
				cfg.Username, _ = flags.GetString("username")
			}
			if flags.Changed("password") {
				cfg.Password, _ = flags.GetString("password")
			}
			if flags.Changed("port") {
				cfg.Port, _ = flags.GetInt("port")
			}
			if flags.Changed("queue-file") {
				cfg.QueueFile, _ = flags.GetString("queue-file")
			}

			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "cabfetch.yaml", "Path to config file")
	rootCmd.PersistentFlags().String("host", "", "Cabinet IP address or hostname")
	rootCmd.PersistentFlags().String("username", config.DefaultUsername, "SSH username")
	rootCmd.PersistentFlags().String("password", config.DefaultPassword, "SSH password")
	rootCmd.PersistentFlags().Int("port", config.DefaultPort, "SSH port")
	rootCmd.PersistentFlags().String("queue-file", config.DefaultQueueFile, "Path to the download queue file")

	// Add subcommands
	rootCmd.AddCommand(NewSearchCmd(cfg))
	rootCmd.AddCommand(NewBrowseCmd(cfg))
	rootCmd.AddCommand(NewDownloadCmd(cfg))
	rootCmd.AddCommand(NewQueueCmd(cfg))
	rootCmd.AddCommand(NewListSystemsCmd(cfg))
	rootCmd.AddCommand(NewInteractiveCmd(cfg))

	return rootCmd
}
