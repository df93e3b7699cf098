package presenter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Live fetches a one-liner joke from an online API at request time,
// bypassing the curated dataset files. The endpoint returns a JSON
// array of {text} objects.
type Live struct {
	URL    string
	Client *http.Client
}

func NewLive(url string) *Live {
	return &Live{
		URL: url,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Request fetches one live joke. The joke has no setup/punchline split,
// so the whole text lands in the setup region.
func (l *Live) Request(ctx context.Context) DisplayState {
	text, err := l.fetch(ctx)
	if err != nil {
		return OnError(err)
	}
	return DisplayState{Setup: text}
}

func (l *Live) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", l.URL, nil)
	if err != nil {
		return "", fmt.Errorf("fetch live joke: %w", err)
	}
	req.Header.Set("User-Agent", "jokebox-presenter/1.0")

	resp, err := l.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch live joke: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch live joke: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("fetch live joke: %w", err)
	}

	var jokes []struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &jokes); err != nil {
		return "", fmt.Errorf("parse live joke: %w", err)
	}
	if len(jokes) == 0 || jokes[0].Text == "" {
		return "", ErrEmptyDataset
	}

	return jokes[0].Text, nil
}
