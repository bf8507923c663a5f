package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-thread/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the discovery stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Categories are the arXiv categories queried (OR-ed together).
	Categories []string `json:"categories" yaml:"categories"`

	// MaxResults is the number of newest submissions requested (default 3).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// AcquisitionConfig holds settings for the download stage.
type AcquisitionConfig struct {
	HTTPConfig `yaml:",inline"`

	// DownloadDelay is the delay between consecutive downloads (default 1s).
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay"`

	// PapersDir is the base directory for papers (contains raw/ and metadata/).
	PapersDir string `json:"papers_dir" yaml:"papers_dir"`
}

// AIConfig holds settings for stages that call a Generative AI API.
type AIConfig struct {
	// JudgeModel scores abstracts against the interest profile.
	JudgeModel string `json:"judge_model" yaml:"judge_model"`

	// SummaryModel reads full PDFs and writes the structured summary.
	SummaryModel string `json:"summary_model" yaml:"summary_model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// MaxTokens caps the response length (default 4096).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// PostConfig holds settings for the publishing stage.
type PostConfig struct {
	HTTPConfig `yaml:",inline"`

	// DryRun prints threads without posting them.
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// AccessToken is the OAuth 2.0 user-context token for the X API.
	AccessToken string `json:"access_token,omitempty" yaml:"access_token,omitempty"`

	// MinInterval is the minimum spacing between two post requests.
	MinInterval time.Duration `json:"min_interval" yaml:"min_interval"`

	// HistoryPath is the SQLite database recording posted threads.
	HistoryPath string `json:"history_path" yaml:"history_path"`
}

// PipelineConfig groups all stage configurations for a daily run.
type PipelineConfig struct {
	Search      SearchConfig      `json:"search" yaml:"search"`
	Acquisition AcquisitionConfig `json:"acquisition" yaml:"acquisition"`
	AI          AIConfig          `json:"ai" yaml:"ai"`
	Post        PostConfig        `json:"post" yaml:"post"`

	// LogPath is the SummaryLog JSON document.
	LogPath string `json:"log_path" yaml:"log_path"`

	// InterestsPath is an optional YAML interest profile; empty uses the built-in one.
	InterestsPath string `json:"interests_path,omitempty" yaml:"interests_path,omitempty"`
}
