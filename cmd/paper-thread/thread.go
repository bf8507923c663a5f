// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-thread/internal/post"
	"github.com/pdiddy/paper-thread/internal/summarylog"
	"github.com/pdiddy/paper-thread/internal/thread"
)

var threadCmd = &cobra.Command{
	Use:   "thread",
	Short: "Print the threads built from the summary log",
	Long: `Thread reads the summary log and prints the thread each record would
be posted as. Use --index to print a single record (0 is the oldest,
negative values count from the newest).`,
	RunE: runThread,
}

func init() {
	threadCmd.Flags().String("log", "", "summary log path (default log.json)")
	threadCmd.Flags().Int("index", 0, "print only this record")

	rootCmd.AddCommand(threadCmd)
}

func runThread(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("log")
	if path == "" {
		path = viper.GetString("log_path")
	}

	entries := summarylog.Load(path)
	if len(entries) == 0 {
		fmt.Println("No data to post.")
		return nil
	}

	if cmd.Flags().Changed("index") {
		i, _ := cmd.Flags().GetInt("index")
		if i < 0 {
			i += len(entries)
		}
		if i < 0 || i >= len(entries) {
			return fmt.Errorf("index out of range: log holds %d records", len(entries))
		}
		post.Preview(os.Stdout, thread.Build(entries[i]))
		return nil
	}

	for i, rec := range entries {
		if i > 0 {
			fmt.Println()
		}
		post.Preview(os.Stdout, thread.Build(rec))
	}
	return nil
}
