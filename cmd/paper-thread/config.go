// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/paper-thread/internal/judge"
	"github.com/pdiddy/paper-thread/internal/search"
	"github.com/pdiddy/paper-thread/internal/secrets"
	"github.com/pdiddy/paper-thread/internal/summarize"
	"github.com/pdiddy/paper-thread/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultDelay     = 1 * time.Second
	defaultUserAgent = "paper-thread/0.1"
)

// setDefaults registers the value of every config key when neither the
// config file, the environment, nor a flag sets it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("secrets_dir", ".secrets/")
	v.SetDefault("log_path", "log.json")
	v.SetDefault("papers_dir", "papers")
	v.SetDefault("interests_path", "")

	v.SetDefault("http.timeout", defaultTimeout)
	v.SetDefault("http.user_agent", defaultUserAgent)

	v.SetDefault("search.categories", search.DefaultCategories)
	v.SetDefault("search.max_results", search.DefaultMaxResults)

	v.SetDefault("acquisition.download_delay", defaultDelay)

	v.SetDefault("ai.judge_model", judge.DefaultModel)
	v.SetDefault("ai.summary_model", summarize.DefaultModel)
	v.SetDefault("ai.max_retries", 3)
	v.SetDefault("ai.max_tokens", 4096)

	v.SetDefault("post.dry_run", true)
	v.SetDefault("post.min_interval", 2*time.Second)
	v.SetDefault("post.history_path", "history.db")
}

// loadConfig assembles the pipeline config from viper and the loaded
// secrets. Environment variables ANTHROPIC_API_KEY and X_ACCESS_TOKEN win
// over secret files.
func loadConfig(v *viper.Viper, loaded map[string]string) types.PipelineConfig {
	httpCfg := types.HTTPConfig{
		Timeout:   v.GetDuration("http.timeout"),
		UserAgent: v.GetString("http.user_agent"),
	}
	if httpCfg.Timeout <= 0 {
		httpCfg.Timeout = defaultTimeout
	}

	return types.PipelineConfig{
		Search: types.SearchConfig{
			HTTPConfig: httpCfg,
			Categories: v.GetStringSlice("search.categories"),
			MaxResults: v.GetInt("search.max_results"),
		},
		Acquisition: types.AcquisitionConfig{
			HTTPConfig:    httpCfg,
			DownloadDelay: v.GetDuration("acquisition.download_delay"),
			PapersDir:     v.GetString("papers_dir"),
		},
		AI: types.AIConfig{
			JudgeModel:   v.GetString("ai.judge_model"),
			SummaryModel: v.GetString("ai.summary_model"),
			APIKey:       secrets.Resolve(loaded, secrets.AnthropicAPIKey, "ANTHROPIC_API_KEY"),
			MaxRetries:   v.GetInt("ai.max_retries"),
			MaxTokens:    v.GetInt("ai.max_tokens"),
		},
		Post: types.PostConfig{
			HTTPConfig:  httpCfg,
			DryRun:      v.GetBool("post.dry_run"),
			AccessToken: secrets.Resolve(loaded, secrets.XAccessToken, "X_ACCESS_TOKEN"),
			MinInterval: v.GetDuration("post.min_interval"),
			HistoryPath: v.GetString("post.history_path"),
		},
		LogPath:       v.GetString("log_path"),
		InterestsPath: v.GetString("interests_path"),
	}
}
