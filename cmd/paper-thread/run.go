// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-thread/internal/acquire"
	"github.com/pdiddy/paper-thread/internal/history"
	"github.com/pdiddy/paper-thread/internal/judge"
	"github.com/pdiddy/paper-thread/internal/llm"
	"github.com/pdiddy/paper-thread/internal/pipeline"
	"github.com/pdiddy/paper-thread/internal/post"
	"github.com/pdiddy/paper-thread/internal/search"
	"github.com/pdiddy/paper-thread/internal/summarize"
	"github.com/pdiddy/paper-thread/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the daily pipeline once",
	Long: `Run searches yesterday's arXiv submissions, judges them against the
interest profile, downloads and summarizes the selected papers, appends the
summaries to the log, and posts one thread per summary.

Threads are only printed unless --dry-run=false is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runPipeline(ctx, loadConfig(viper.GetViper(), loadedSecrets), os.Stdout)
	},
}

func init() {
	runCmd.Flags().Bool("dry-run", true, "print threads without posting them")
	runCmd.Flags().String("log", "", "summary log path (default log.json)")
	runCmd.Flags().String("interests", "", "interest profile YAML (default built-in profile)")
	runCmd.Flags().Int("max-results", 0, "number of newest submissions to request (default 3)")
	runCmd.Flags().String("papers-dir", "", "download directory (default papers)")
	_ = viper.BindPFlag("post.dry_run", runCmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("log_path", runCmd.Flags().Lookup("log"))
	_ = viper.BindPFlag("interests_path", runCmd.Flags().Lookup("interests"))
	_ = viper.BindPFlag("search.max_results", runCmd.Flags().Lookup("max-results"))
	_ = viper.BindPFlag("papers_dir", runCmd.Flags().Lookup("papers-dir"))

	rootCmd.AddCommand(runCmd)
}

// runPipeline wires the collaborators for cfg and executes one pass.
func runPipeline(ctx context.Context, cfg types.PipelineConfig, w io.Writer) error {
	deps, closeDeps, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDeps()
	return pipeline.Run(ctx, deps, cfg, w)
}

func buildDeps(ctx context.Context, cfg types.PipelineConfig) (pipeline.Deps, func(), error) {
	noop := func() {}
	if cfg.AI.APIKey == "" {
		return pipeline.Deps{}, noop, fmt.Errorf("missing Anthropic API key: set ANTHROPIC_API_KEY or .secrets/anthropic-api-key")
	}

	interests, err := judge.LoadInterests(cfg.InterestsPath)
	if err != nil {
		return pipeline.Deps{}, noop, err
	}

	httpClient := &http.Client{Timeout: cfg.Search.Timeout}
	gen := llm.NewAnthropic(cfg.AI, logger)

	deps := pipeline.Deps{
		Source: &search.ArxivSource{Client: httpClient, Logger: logger},
		Judge: &judge.Judge{
			Gen:       gen,
			Model:     cfg.AI.JudgeModel,
			Interests: interests,
			Logger:    logger,
		},
		Acquirer: &acquire.Downloader{Client: httpClient, Config: cfg.Acquisition},
		Summarizer: &summarize.Summarizer{
			Gen:    gen,
			Model:  cfg.AI.SummaryModel,
			Logger: logger,
		},
		Logger: logger,
	}

	if cfg.Post.DryRun {
		return deps, noop, nil
	}

	x := post.NewXClient(cfg.Post, nil, logger)
	name, err := x.Verify(ctx)
	if err != nil {
		return pipeline.Deps{}, noop, err
	}
	logger.Info("authenticated with X", slog.String("user", name))
	deps.Poster = x

	hist, err := history.Open(cfg.Post.HistoryPath)
	if err != nil {
		return pipeline.Deps{}, noop, err
	}
	deps.History = hist
	return deps, func() { hist.Close() }, nil
}
