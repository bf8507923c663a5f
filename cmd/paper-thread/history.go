// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-thread/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List threads already posted",
	Long: `History lists the most recent threads recorded in the posting history,
newest first. Links in the history are skipped by later runs.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := history.Open(viper.GetString("post.history_path"))
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No threads posted yet.")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %s\n  %s (%s)\n", e.PostedAt.Local().Format(time.DateTime), e.Title, e.Link, strings.Join(e.PostIDs, ", "))
	}
	return nil
}
