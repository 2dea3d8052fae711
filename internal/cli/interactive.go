package cli

import (
	"context"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/dustin/go-humanize"
	"github.com/mholtz/cabfetch/internal/catalog"
	"github.com/mholtz/cabfetch/internal/config"
	"github.com/mholtz/cabfetch/internal/models"
	"github.com/mholtz/cabfetch/internal/queue"
	"github.com/mholtz/cabfetch/internal/remote"
	"github.com/mholtz/cabfetch/internal/transfer"
	"github.com/spf13/cobra"
)

// NewInteractiveCmd creates the interactive menu command
func NewInteractiveCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Run the interactive menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := queue.Open(cfg.QueueFile)
			if err != nil {
				return err
			}
			m := &menu{
				cfg:    cfg,
				queue:  q,
				client: catalog.NewClient(),
			}
			return m.run(cmd.Context())
		},
	}
}

// menu drives the interactive session
type menu struct {
	cfg    *config.Config
	queue  *queue.Queue
	client *catalog.Client
}

func (m *menu) run(ctx context.Context) error {
	for {
		if m.cfg.Host != "" {
			fmt.Printf("\nCabinet: %s\n", m.cfg.Host)
		} else {
			fmt.Println("\nNo cabinet configured")
		}

		var choice string
		err := survey.AskOne(&survey.Select{
			Message: "Main menu:",
			Options: []string{
				"Setup cabinet connection",
				"Search for ROMs",
				"Manage download queue",
				"List cabinet systems",
				"Quit",
			},
		}, &choice)
		if err != nil {
			return nil
		}

		switch choice {
		case "Setup cabinet connection":
			m.setupConnection()
		case "Search for ROMs":
			m.searchROMs(ctx)
		case "Manage download queue":
			m.manageQueue(ctx)
		case "List cabinet systems":
			m.listSystems()
		case "Quit":
			fmt.Println("Goodbye!")
			return nil
		}
	}
}

func (m *menu) setupConnection() {
	qs := []*survey.Question{
		{
			Name:   "host",
			Prompt: &survey.Input{Message: "Cabinet IP address:", Default: m.cfg.Host},
		},
		{
			Name:   "username",
			Prompt: &survey.Input{Message: "Username:", Default: m.cfg.Username},
		},
		{
			Name:   "password",
			Prompt: &survey.Password{Message: "Password:"},
		},
	}

	answers := struct {
		Host     string
		Username string
		Password string
	}{}
	if err := survey.Ask(qs, &answers); err != nil {
		return
	}

	m.cfg.Host = answers.Host
	m.cfg.Username = answers.Username
	if answers.Password != "" {
		m.cfg.Password = answers.Password
	}

	fmt.Println("Testing connection...")
	session := remote.NewSession(m.cfg)
	if err := session.Connect(); err != nil {
		fmt.Printf("Connection failed: %v\n", err)
		m.cfg.Host = ""
		return
	}
	session.Disconnect()
	fmt.Println("Connection successful!")
}

func (m *menu) searchROMs(ctx context.Context) {
	var query string
	if err := survey.AskOne(&survey.Input{Message: "Search term:"}, &query); err != nil || query == "" {
		return
	}

	fmt.Printf("Searching for: %s...\n", query)
	results := m.client.Search(ctx, query, "", 20)
	if len(results) == 0 {
		fmt.Println("No results found")
		return
	}

	options := make([]string, len(results))
	for i, r := range results {
		options[i] = fmt.Sprintf("%s (%s downloads, %s)",
			r.Title, humanize.Comma(r.Downloads), humanize.Bytes(uint64(r.ItemSize)))
	}
	options = append(options, "Back")

	for {
		var idx int
		err := survey.AskOne(&survey.Select{
			Message:  "Browse files in item:",
			Options:  options,
			PageSize: 15,
		}, &idx)
		if err != nil || idx == len(results) {
			return
		}
		m.browseItem(ctx, results[idx].Identifier)
	}
}

func (m *menu) browseItem(ctx context.Context, identifier string) {
	fmt.Println("Loading files...")
	files := filterROMFiles(m.client.ListFiles(ctx, identifier))
	if len(files) == 0 {
		fmt.Println("No ROM files found")
		return
	}

	options := make([]string, len(files))
	for i, f := range files {
		options[i] = fmt.Sprintf("%s (%s)", f.Name, humanize.Bytes(uint64(f.SizeBytes())))
	}
	options = append(options, "Back")

	for {
		var idx int
		err := survey.AskOne(&survey.Select{
			Message:  "Download or queue file:",
			Options:  options,
			PageSize: 15,
		}, &idx)
		if err != nil || idx == len(files) {
			return
		}
		url := m.client.DownloadURL(identifier, files[idx].Name)
		m.downloadMenu(ctx, url, files[idx].Name)
	}
}

func (m *menu) downloadMenu(ctx context.Context, url, filename string) {
	var choice string
	err := survey.AskOne(&survey.Select{
		Message: fmt.Sprintf("%s:", filename),
		Options: []string{"Download now", "Add to queue", "Cancel"},
	}, &choice)
	if err != nil {
		return
	}

	switch choice {
	case "Download now":
		m.downloadNow(ctx, url, filename)
	case "Add to queue":
		system := m.askSystem()
		if system == "" {
			return
		}
		if _, err := m.queue.Add(url, system, filename); err != nil {
			fmt.Printf("Failed to add to queue: %v\n", err)
		}
	}
}

func (m *menu) downloadNow(ctx context.Context, url, filename string) {
	if m.cfg.Host == "" {
		fmt.Println("Please setup the cabinet connection first")
		return
	}
	system := m.askSystem()
	if system == "" {
		return
	}

	fmt.Println("Connecting to cabinet...")
	session := remote.NewSession(m.cfg)
	if err := session.Connect(); err != nil {
		fmt.Printf("Failed to connect: %v\n", err)
		return
	}
	defer session.Disconnect()

	item := models.QueueItem{
		URL:      url,
		System:   system,
		Filename: filename,
		Status:   models.StatusPending,
	}
	if err := transfer.NewDirect(session).Transfer(ctx, item); err != nil {
		fmt.Printf("Download failed: %v\n", err)
	}
}

func (m *menu) manageQueue(ctx context.Context) {
	for {
		printQueue(m.queue.Items())

		var choice string
		err := survey.AskOne(&survey.Select{
			Message: "Queue:",
			Options: []string{
				"Add to queue manually",
				"Process queue",
				"Clear completed",
				"Back",
			},
		}, &choice)
		if err != nil {
			return
		}

		switch choice {
		case "Add to queue manually":
			m.addToQueueManual()
		case "Process queue":
			m.processQueue(ctx)
		case "Clear completed":
			if err := m.queue.ClearCompleted(); err != nil {
				fmt.Printf("Failed to clear queue: %v\n", err)
			} else {
				fmt.Println("Cleared completed items")
			}
		case "Back":
			return
		}
	}
}

func (m *menu) addToQueueManual() {
	var url string
	if err := survey.AskOne(&survey.Input{Message: "Download URL:"}, &url); err != nil || url == "" {
		return
	}
	system := m.askSystem()
	if system == "" {
		return
	}
	var filename string
	if err := survey.AskOne(&survey.Input{Message: "Filename (optional):"}, &filename); err != nil {
		return
	}

	if _, err := m.queue.Add(url, system, filename); err != nil {
		fmt.Printf("Failed to add to queue: %v\n", err)
	}
}

func (m *menu) processQueue(ctx context.Context) {
	if m.cfg.Host == "" {
		fmt.Println("Please setup the cabinet connection first")
		return
	}
	if m.queue.Pending() == 0 {
		fmt.Println("No pending downloads in queue")
		return
	}
	fmt.Printf("Processing %d downloads...\n", m.queue.Pending())

	session := remote.NewSession(m.cfg)
	if err := session.Connect(); err != nil {
		fmt.Printf("Failed to connect: %v\n", err)
		return
	}
	defer session.Disconnect()

	summary, err := m.queue.Process(ctx, transfer.NewDirect(session))
	if err != nil {
		fmt.Printf("Queue processing aborted: %v\n", err)
		return
	}
	fmt.Printf("Queue processing complete: %d completed, %d failed\n",
		summary.Completed, summary.Failed)
}

func (m *menu) listSystems() {
	if m.cfg.Host == "" {
		fmt.Println("Please setup the cabinet connection first")
		return
	}

	fmt.Println("Connecting to cabinet...")
	session := remote.NewSession(m.cfg)
	if err := session.Connect(); err != nil {
		fmt.Printf("Failed to connect: %v\n", err)
		return
	}
	defer session.Disconnect()

	systems, err := session.ListSystems()
	if err != nil {
		fmt.Printf("Failed to list systems: %v\n", err)
		return
	}
	fmt.Println("\nAvailable systems:")
	for _, system := range systems {
		fmt.Printf("  - %s\n", system)
	}
}

func (m *menu) askSystem() string {
	var system string
	if err := survey.AskOne(&survey.Input{
		Message: "Target system (e.g. mame, fba, neogeo):",
		Default: "mame",
	}, &system); err != nil {
		return ""
	}
	return system
}
