// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-thread CLI: a daily
// pipeline that reads yesterday's arXiv submissions, picks the relevant
// ones, summarizes them, and posts each summary as a thread.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-thread/internal/logging"
	"github.com/pdiddy/paper-thread/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds API keys loaded from .secrets/ at startup.
	loadedSecrets map[string]string

	// logger is built from --log-level before any command runs.
	logger = slog.Default()
)

// rootCmd is the base command for the paper-thread CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-thread",
	Short: "Turn yesterday's arXiv papers into posted summary threads",
	Long: `paper-thread searches arXiv for papers published yesterday, asks a model
to judge each abstract against an interest profile, downloads and summarizes
the selected papers, logs the summaries, and posts one thread per paper.

Use "run" for one pass, "schedule" to run daily, and "thread" to preview
threads from the summary log.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.New(os.Stderr, viper.GetString("log_level"))
		slog.SetDefault(logger)

		s, err := secrets.Load(viper.GetString("secrets_dir"))
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", slog.Any("keys", keys))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-thread.yaml or ~/.config/paper-thread/paper-thread.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory holding one secret per file")
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("secrets_dir", rootCmd.PersistentFlags().Lookup("secrets-dir"))

	setDefaults(viper.GetViper())
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-thread")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-thread"))
		}
	}

	viper.SetEnvPrefix("PAPER_THREAD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
