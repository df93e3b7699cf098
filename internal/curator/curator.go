package curator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"jokebox/internal/config"
	"jokebox/internal/dataset"
	"jokebox/internal/models"
	"jokebox/pkg/logger"

	"github.com/google/uuid"
)

// FetchError reports an upstream download that failed, either on the
// transport or with a non-200 status.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Curator runs the offline curation pipeline: download, filter, project,
// deduplicate, and write one dataset file per language.
type Curator struct {
	cfg    config.CuratorConfig
	client *http.Client
}

func New(cfg config.CuratorConfig, opts ...Option) *Curator {
	c := &Curator{
		cfg: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type Option func(*Curator)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Curator) {
		c.client = client
	}
}

// Run curates every configured language. A failed language aborts that
// language only; the remaining ones still run.
func (c *Curator) Run(ctx context.Context) error {
	var errs []error
	for _, raw := range c.cfg.Languages {
		lang := models.Language(raw)
		if err := c.RunLanguage(ctx, lang); err != nil {
			logger.Error("Curation failed",
				logger.String("language", string(lang)),
				logger.Err(err),
			)
			errs = append(errs, fmt.Errorf("language %s: %w", lang, err))
		}
	}
	return errors.Join(errs...)
}

// RunLanguage performs one full curation pass for a language and
// overwrites its dataset file. Any fetch or parse failure aborts the
// whole pass; partial output is not written.
func (c *Curator) RunLanguage(ctx context.Context, lang models.Language) error {
	if !lang.Supported() {
		return fmt.Errorf("unsupported language %q", lang)
	}

	runID := uuid.NewString()
	started := time.Now()
	logger.Info("Starting curation run",
		logger.String("run_id", runID),
		logger.String("language", string(lang)),
	)

	records, err := c.collect(ctx, lang)
	if err != nil {
		return err
	}

	lines := make([]string, 0, len(records))
	for _, rec := range records {
		line, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("serialize record: %w", err)
		}
		lines = append(lines, string(line))
	}

	before := len(lines)
	lines = Deduplicate(lines)

	path := filepath.Join(c.cfg.OutputDir, dataset.FileName(lang))
	if err := writeLines(path, lines); err != nil {
		return err
	}

	logger.Info("Curation run finished",
		logger.String("run_id", runID),
		logger.String("language", string(lang)),
		logger.String("path", path),
		logger.Int("records", len(lines)),
		logger.Int("duplicates_dropped", before-len(lines)),
		logger.Duration("elapsed", time.Since(started)),
	)

	return nil
}

// collect gathers records per language in source order: English merges
// provider A fully before provider B, German and Spanish come from
// provider B alone.
func (c *Curator) collect(ctx context.Context, lang models.Language) ([]models.JokeRecord, error) {
	var records []models.JokeRecord

	if lang == models.LangEnglish {
		fromA, err := c.fetchProviderA(ctx)
		if err != nil {
			return nil, err
		}
		records = append(records, fromA...)
	}

	fromB, err := c.fetchProviderB(ctx, lang)
	if err != nil {
		return nil, err
	}
	records = append(records, fromB...)

	return records, nil
}

func (c *Curator) fetchProviderA(ctx context.Context) ([]models.JokeRecord, error) {
	body, err := c.fetch(ctx, c.cfg.ProviderAURL)
	if err != nil {
		return nil, err
	}

	var jokes []providerAJoke
	if err := json.Unmarshal(body, &jokes); err != nil {
		return nil, fmt.Errorf("parse provider A response: %w", err)
	}

	records := make([]models.JokeRecord, 0, len(jokes))
	for _, j := range jokes {
		if !keepProviderA(j) {
			continue
		}
		records = append(records, projectProviderA(j))
	}
	return records, nil
}

func (c *Curator) fetchProviderB(ctx context.Context, lang models.Language) ([]models.JokeRecord, error) {
	body, err := c.fetch(ctx, c.cfg.ProviderBURL(string(lang)))
	if err != nil {
		return nil, err
	}

	var doc providerBDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse provider B response: %w", err)
	}

	records := make([]models.JokeRecord, 0, len(doc.Jokes))
	for _, j := range doc.Jokes {
		if !keepProviderB(j) {
			continue
		}
		records = append(records, projectProviderB(j))
	}
	return records, nil
}

func (c *Curator) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", "jokebox-curator/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return body, nil
}

// Deduplicate removes exact duplicate lines, keeping the first
// occurrence and the original relative order.
func Deduplicate(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}

func writeLines(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write dataset file: %w", err)
	}
	return nil
}
