package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"jokebox/internal/config"
	"jokebox/internal/dataset"
	"jokebox/internal/models"
	"jokebox/internal/presenter"
	"jokebox/internal/processing"
	"jokebox/pkg/logger"

	"github.com/charmbracelet/lipgloss"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			Width(64)

	setupStyle = lipgloss.NewStyle().
			Bold(true)

	punchlineStyle = lipgloss.NewStyle().
			Italic(true).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

func main() {
	lang := flag.String("lang", "en", "dataset language (en, de, es)")
	witz := flag.Bool("witz", false, "fetch a live German one-liner instead of a dataset joke")
	ascii := flag.Bool("ascii", false, "fold the joke to plain ASCII before rendering")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.App.LogLevel, os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var state presenter.DisplayState
	if *witz {
		state = presenter.NewLive(cfg.Presenter.WitzURL).Request(ctx)
	} else {
		p := presenter.New(newSource(cfg.Presenter))
		state = p.Request(ctx, models.Language(*lang))
	}

	if *ascii || cfg.Presenter.ASCIIOnly {
		state.Setup = processing.Sanitize(state.Setup)
		state.Punchline = processing.Sanitize(state.Punchline)
	}

	fmt.Println(renderCard(state))

	if state.Failed {
		os.Exit(1)
	}
}

func newSource(cfg config.PresenterConfig) dataset.Source {
	if cfg.DatasetBaseURL != "" {
		return dataset.HTTPSource{
			BaseURL: cfg.DatasetBaseURL,
			Client:  &http.Client{Timeout: 30 * time.Second},
		}
	}
	return dataset.FileSource{Dir: cfg.DatasetDir}
}

func renderCard(state presenter.DisplayState) string {
	if state.Failed {
		return cardStyle.Render(errorStyle.Render(state.Setup))
	}

	content := setupStyle.Render(state.Setup)
	if state.Punchline != "" {
		content += "\n" + punchlineStyle.Render(state.Punchline)
	}
	return cardStyle.Render(content)
}
