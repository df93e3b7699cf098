// Package dataset reads curated line-delimited JSON joke files.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"jokebox/internal/models"
)

// FileName returns the dataset file name for a language.
func FileName(lang models.Language) string {
	return fmt.Sprintf("jokes-%s.min.json", lang)
}

// ParseError reports a malformed line. One bad line fails the whole
// load; there is no per-line recovery.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Source loads the joke records for a language. Implementations read
// the same file contract from different places; tests substitute an
// in-memory fake.
type Source interface {
	Load(ctx context.Context, lang models.Language) ([]models.JokeRecord, error)
}

// Parse splits data on line boundaries, discards blank lines, and
// parses each remaining line as a 2-element JSON string array.
func Parse(data []byte) ([]models.JokeRecord, error) {
	var records []models.JokeRecord
	lineNo := 0
	for _, line := range strings.Split(string(data), "\n") {
		lineNo++
		if strings.TrimSpace(line) == "" {
			continue
		}
		var rec models.JokeRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, &ParseError{Line: lineNo, Err: err}
		}
		records = append(records, rec)
	}
	return records, nil
}

// FileSource reads dataset files from a local directory.
type FileSource struct {
	Dir string
}

func (s FileSource) Load(_ context.Context, lang models.Language) ([]models.JokeRecord, error) {
	path := filepath.Join(s.Dir, FileName(lang))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Parse(data)
}

// HTTPSource fetches dataset files from a base URL.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

func (s HTTPSource) Load(ctx context.Context, lang models.Language) ([]models.JokeRecord, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	url := strings.TrimRight(s.BaseURL, "/") + "/" + FileName(lang)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	req.Header.Set("User-Agent", "jokebox-presenter/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch dataset %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	return Parse(data)
}
