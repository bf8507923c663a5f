// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire downloads the PDFs of selected papers, writes a metadata
// sidecar for each, and removes them once the run is over.
package acquire

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-thread/internal/httputil"
	"github.com/pdiddy/paper-thread/pkg/types"
)

const (
	rawDir      = "raw"
	metadataDir = "metadata"
)

// BatchResult holds the outcome of a batch acquisition run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int
	Papers     []*types.Paper
}

// Total returns the total number of candidates processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any papers failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// RawDir returns the directory holding downloaded PDFs.
func RawDir(papersDir string) string {
	return filepath.Join(papersDir, rawDir)
}

// AcquirePaper downloads the PDF for one arXiv ID and writes its metadata.
// If the PDF already exists on disk, it skips the download. The skipped
// return value indicates whether the download was skipped.
func AcquirePaper(ctx context.Context, client *http.Client, arxivID string, cfg types.AcquisitionConfig, w io.Writer) (paper *types.Paper, skipped bool, err error) {
	slug := Slug(arxivID)
	pdfPath := filepath.Join(cfg.PapersDir, rawDir, slug+".pdf")
	metaPath := filepath.Join(cfg.PapersDir, metadataDir, slug+".yaml")

	if _, err := os.Stat(pdfPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", slug)
		p, readErr := readMetadata(metaPath)
		if readErr != nil {
			p = &types.Paper{ID: slug, PDFPath: pdfPath}
		}
		return p, true, nil
	}

	for _, dir := range []string{
		filepath.Join(cfg.PapersDir, rawDir),
		filepath.Join(cfg.PapersDir, metadataDir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, false, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	fmt.Fprintf(w, "downloading: %s\n", arxivID)

	pdfURL := PDFURL(arxivID)
	if err := downloadFile(ctx, client, pdfURL, pdfPath, cfg); err != nil {
		return nil, false, fmt.Errorf("downloading %s: %w", slug, err)
	}

	p := &types.Paper{
		ID:        slug,
		SourceURL: pdfURL,
		PDFPath:   pdfPath,
	}
	if err := fetchArxivMetadata(ctx, client, arxivID, p, cfg); err != nil {
		fmt.Fprintf(w, "  warning: arXiv metadata fetch failed: %v\n", err)
	}

	if err := writeMetadata(p, metaPath); err != nil {
		return nil, false, fmt.Errorf("writing metadata for %s: %w", slug, err)
	}

	return p, false, nil
}

// AcquireBatch downloads every candidate, printing per-item status and
// returning a summary. Candidates whose ID holds no arXiv identifier are
// counted as failures. It continues after individual failures and applies a
// delay between consecutive downloads.
func AcquireBatch(ctx context.Context, client *http.Client, candidates []types.Candidate, cfg types.AcquisitionConfig, w io.Writer) BatchResult {
	var result BatchResult
	for i, c := range candidates {
		if i > 0 && cfg.DownloadDelay > 0 {
			select {
			case <-ctx.Done():
				fmt.Fprintf(w, "failed:  %s (%v)\n", c.ID, ctx.Err())
				result.Failed += len(candidates) - i
				return result
			case <-time.After(cfg.DownloadDelay):
			}
		}

		arxivID, ok := ExtractArxivID(c.ID)
		if !ok {
			fmt.Fprintf(w, "failed:  %q (invalid arXiv ID or URL format)\n", c.ID)
			result.Failed++
			continue
		}

		paper, wasSkipped, err := AcquirePaper(ctx, client, arxivID, cfg, w)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", arxivID, err)
			result.Failed++
			continue
		}
		if paper.Title == "" {
			paper.Title = c.Title
		}
		if wasSkipped {
			result.Skipped++
		} else {
			result.Downloaded++
		}
		result.Papers = append(result.Papers, paper)
	}
	fmt.Fprintf(w, "\nBatch summary: %d downloaded, %d skipped, %d failed (total: %d)\n",
		result.Downloaded, result.Skipped, result.Failed, result.Total())
	return result
}

// RemoveDownloaded deletes every file under the raw/ and metadata/
// directories, leaving the directories in place. Failures are reported and
// skipped. It returns the number of files removed.
func RemoveDownloaded(papersDir string, w io.Writer) int {
	removed := 0
	for _, dir := range []string{
		filepath.Join(papersDir, rawDir),
		filepath.Join(papersDir, metadataDir),
	} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			if err := os.Remove(path); err != nil {
				fmt.Fprintf(w, "error removing %s: %v\n", path, err)
				continue
			}
			fmt.Fprintf(w, "removed: %s\n", path)
			removed++
		}
	}
	return removed
}

// downloadFile fetches url to destPath using a temporary file.
// It sets User-Agent and requests PDF via Accept header.
func downloadFile(ctx context.Context, client *http.Client, url, destPath string, cfg types.AcquisitionConfig) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".acquire-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID              string        `xml:"id"`
	Title           string        `xml:"title"`
	Summary         string        `xml:"summary"`
	Published       string        `xml:"published"`
	Authors         []arxivAuthor `xml:"author"`
	PrimaryCategory struct {
		Term string `xml:"term,attr"`
	} `xml:"http://arxiv.org/schemas/atom primary_category"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

// fetchArxivMetadata retrieves metadata from the arXiv API.
func fetchArxivMetadata(ctx context.Context, client *http.Client, arxivID string, paper *types.Paper, cfg types.AcquisitionConfig) error {
	apiURL := fmt.Sprintf("%s?id_list=%s", arxivAPIBase, arxivID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return fmt.Errorf("parsing arXiv response: %w", err)
	}

	if len(feed.Entries) == 0 {
		return fmt.Errorf("no entries found for arXiv ID %s", arxivID)
	}

	entry := feed.Entries[0]
	paper.EntryID = strings.TrimSpace(entry.ID)
	paper.Title = strings.Join(strings.Fields(entry.Title), " ")
	paper.Abstract = strings.TrimSpace(entry.Summary)
	paper.PrimaryCategory = entry.PrimaryCategory.Term

	for _, a := range entry.Authors {
		paper.Authors = append(paper.Authors, strings.TrimSpace(a.Name))
	}

	if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
		paper.Date = t
	}
	return nil
}

// writeMetadata writes a Paper record to a YAML file.
func writeMetadata(paper *types.Paper, path string) error {
	data, err := yaml.Marshal(paper)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// readMetadata reads a Paper record from a YAML file.
func readMetadata(path string) (*types.Paper, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var paper types.Paper
	if err := yaml.Unmarshal(data, &paper); err != nil {
		return nil, err
	}
	return &paper, nil
}

// Downloader binds an HTTP client and config to the batch operations.
type Downloader struct {
	Client *http.Client
	Config types.AcquisitionConfig
}

// Download runs AcquireBatch over the candidates.
func (d *Downloader) Download(ctx context.Context, candidates []types.Candidate, w io.Writer) BatchResult {
	return AcquireBatch(ctx, d.Client, candidates, d.Config, w)
}

// Dir returns the directory the PDFs are written to.
func (d *Downloader) Dir() string {
	return RawDir(d.Config.PapersDir)
}

// Cleanup removes everything Download wrote.
func (d *Downloader) Cleanup(w io.Writer) int {
	return RemoveDownloaded(d.Config.PapersDir, w)
}
