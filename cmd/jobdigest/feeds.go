package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var feedsCmd = &cobra.Command{
	Use:   "feeds",
	Short: "List all configured feeds",
	Long:  "Reads the config and prints a table of all configured feed sources.",
	RunE:  runFeeds,
}

func init() {
	rootCmd.AddCommand(feedsCmd)
}

func runFeeds(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-20s %-50s %s\n", "Feed", "URL", "Status")
	fmt.Println(strings.Repeat("─", 78))

	enabled, disabled := 0, 0
	for _, f := range cfg.Feeds {
		status := "enabled"
		if !f.Enabled {
			status = "disabled"
			disabled++
		} else {
			enabled++
		}
		fmt.Printf("%-20s %-50s %s\n", f.Name, f.URL, status)
	}

	fmt.Printf("\nTotal: %d feeds (%d enabled, %d disabled)\n", len(cfg.Feeds), enabled, disabled)
	return nil
}
