// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-thread/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "List the papers published on one day",
	Long: `Search queries arXiv for the newest submissions in the configured
categories and lists those published on the given UTC day (yesterday by
default). Nothing is judged or downloaded.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("date", "", "publication day (YYYY-MM-DD, default yesterday)")
	searchCmd.Flags().Int("max-results", 0, "number of newest submissions to request (default 3)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper(), loadedSecrets)
	if n, _ := cmd.Flags().GetInt("max-results"); n > 0 {
		cfg.Search.MaxResults = n
	}

	day := search.Yesterday(time.Now())
	if s, _ := cmd.Flags().GetString("date"); s != "" {
		d, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", s, err)
		}
		day = d
	}

	src := &search.ArxivSource{Client: &http.Client{Timeout: cfg.Search.Timeout}, Logger: logger}
	papers, err := src.Recent(cmd.Context(), cfg.Search, day)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(papers)
	}

	fmt.Printf("Found %d papers published %s.\n", len(papers), day.Format(time.DateOnly))
	for _, p := range papers {
		fmt.Printf("\n%s\n  %s\n  %s | %s\n", p.Title, p.EntryID, p.PrimaryCategory, strings.Join(p.Authors, ", "))
	}
	return nil
}
