package cli

import (
	"fmt"

	"github.com/mholtz/cabfetch/internal/config"
	"github.com/mholtz/cabfetch/internal/remote"
	"github.com/spf13/cobra"
)

// NewListSystemsCmd creates the list-systems command
func NewListSystemsCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list-systems",
		Short: "List ROM systems available on the cabinet",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			session := remote.NewSession(cfg)
			if err := session.Connect(); err != nil {
				return err
			}
			defer session.Disconnect()

			systems, err := session.ListSystems()
			if err != nil {
				return err
			}

			fmt.Println("\nAvailable systems on the cabinet:")
			for _, system := range systems {
				fmt.Printf("  - %s\n", system)
			}
			return nil
		},
	}
}
