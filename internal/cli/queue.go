package cli

import (
	"fmt"

	"github.com/mholtz/cabfetch/internal/config"
	"github.com/mholtz/cabfetch/internal/models"
	"github.com/mholtz/cabfetch/internal/queue"
	"github.com/mholtz/cabfetch/internal/remote"
	"github.com/spf13/cobra"
)

// NewQueueCmd creates the queue command group
func NewQueueCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Manage the download queue",
	}

	cmd.AddCommand(newQueueAddCmd(cfg))
	cmd.AddCommand(newQueueListCmd(cfg))
	cmd.AddCommand(newQueueClearCmd(cfg))
	cmd.AddCommand(newQueueProcessCmd(cfg))

	return cmd
}

func newQueueAddCmd(cfg *config.Config) *cobra.Command {
	var url, system, filename string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item to the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := queue.Open(cfg.QueueFile)
			if err != nil {
				return err
			}
			_, err = q.Add(url, system, filename)
			return err
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Download URL")
	cmd.Flags().StringVar(&system, "system", "", "Target system")
	cmd.Flags().StringVar(&filename, "filename", "", "Custom filename")
	cmd.MarkFlagRequired("url")
	cmd.MarkFlagRequired("system")

	return cmd
}

func newQueueListCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List queued items",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := queue.Open(cfg.QueueFile)
			if err != nil {
				return err
			}
			printQueue(q.Items())
			return nil
		},
	}
}

func newQueueClearCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove completed items from the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := queue.Open(cfg.QueueFile)
			if err != nil {
				return err
			}
			if err := q.ClearCompleted(); err != nil {
				return err
			}
			fmt.Println("Cleared completed items")
			return nil
		},
	}
}

func newQueueProcessCmd(cfg *config.Config) *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Process all pending items in the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			q, err := queue.Open(cfg.QueueFile)
			if err != nil {
				return err
			}

			if q.Pending() == 0 {
				fmt.Println("No pending downloads in queue")
				return nil
			}
			fmt.Printf("Processing %d downloads...\n", q.Pending())

			session := remote.NewSession(cfg)
			if err := session.Connect(); err != nil {
				return err
			}
			defer session.Disconnect()

			summary, err := q.Process(cmd.Context(), newStrategy(session, local))
			if err != nil {
				return err
			}

			fmt.Printf("Queue processing complete: %d completed, %d failed\n",
				summary.Completed, summary.Failed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Download locally, then transfer over SCP")

	return cmd
}

// printQueue renders the queue contents
func printQueue(items []models.QueueItem) {
	if len(items) == 0 {
		fmt.Println("Queue is empty")
		return
	}

	fmt.Println("\nDownload Queue:")
	fmt.Println("--------------------------------------------------------------------------------")
	for idx, item := range items {
		fmt.Printf("%d. [%s] %s\n", idx+1, statusIcon(item.Status), item.Filename)
		fmt.Printf("   System: %s | Status: %s\n", item.System, item.Status)
		fmt.Printf("   URL: %s\n", item.URL)
	}
	fmt.Println("--------------------------------------------------------------------------------")
}

func statusIcon(status models.Status) string {
	switch status {
	case models.StatusCompleted:
		return "✓"
	case models.StatusFailed:
		return "✗"
	default:
		return "⋯"
	}
}
