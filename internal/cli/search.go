package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/mholtz/cabfetch/internal/catalog"
	"github.com/mholtz/cabfetch/internal/config"
	"github.com/spf13/cobra"
)

// NewSearchCmd creates the search command
func NewSearchCmd(cfg *config.Config) *cobra.Command {
	var collection string
	var maxResults int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search archive.org for ROMs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]
			fmt.Printf("Searching archive.org for: %s\n", query)

			client := catalog.NewClient()
			results := client.Search(cmd.Context(), query, collection, maxResults)

			if len(results) == 0 {
				fmt.Println("No results found")
				return nil
			}

			fmt.Printf("\nFound %d results:\n\n", len(results))
			for idx, item := range results {
				fmt.Printf("%d. %s\n", idx+1, item.Title)
				fmt.Printf("   ID: %s\n", item.Identifier)
				fmt.Printf("   Downloads: %s | Size: %s\n",
					humanize.Comma(item.Downloads), humanize.Bytes(uint64(item.ItemSize)))
				fmt.Printf("   URL: %s/details/%s\n\n", catalog.DefaultBaseURL, item.Identifier)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&collection, "collection", "", "Specific collection to search")
	cmd.Flags().IntVar(&maxResults, "max-results", 20, "Maximum number of results")

	return cmd
}
