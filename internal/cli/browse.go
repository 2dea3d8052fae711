package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mholtz/cabfetch/internal/catalog"
	"github.com/mholtz/cabfetch/internal/config"
	"github.com/spf13/cobra"
)

// romExtensions are the file suffixes shown when browsing an item
var romExtensions = []string{".zip", ".7z", ".bin", ".iso", ".chd"}

// NewBrowseCmd creates the browse command
func NewBrowseCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "browse <identifier>",
		Short: "Browse ROM files in an archive.org item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identifier := args[0]
			fmt.Printf("Browsing files for: %s\n", identifier)

			client := catalog.NewClient()
			files := filterROMFiles(client.ListFiles(cmd.Context(), identifier))

			if len(files) == 0 {
				fmt.Println("No ROM files found")
				return nil
			}

			fmt.Printf("\nFound %d ROM files:\n\n", len(files))
			for idx, file := range files {
				fmt.Printf("%d. %s (%s)\n", idx+1, file.Name, humanize.Bytes(uint64(file.SizeBytes())))
				fmt.Printf("   %s\n\n", client.DownloadURL(identifier, file.Name))
			}

			return nil
		},
	}
}

// filterROMFiles keeps only files with a known ROM extension
func filterROMFiles(files []catalog.FileEntry) []catalog.FileEntry {
	var roms []catalog.FileEntry
	for _, file := range files {
		for _, ext := range romExtensions {
			if strings.HasSuffix(file.Name, ext) {
				roms = append(roms, file)
				break
			}
		}
	}
	return roms
}
