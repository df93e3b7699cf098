// Package presenter turns a language request into a DisplayState.
package presenter

import (
	"context"
	"errors"
	"math/rand"

	"jokebox/internal/dataset"
	"jokebox/internal/models"
	"jokebox/pkg/logger"
)

// ErrEmptyDataset is returned instead of computing an index into an
// empty record list.
var ErrEmptyDataset = errors.New("dataset contains no jokes")

// ErrorMessage is the single user-facing failure text. Fetch and parse
// failures are deliberately not distinguished in the display.
const ErrorMessage = "Sorry, no joke available right now."

// DisplayState is the full content of the two display regions after a
// request. Applying it replaces whatever was shown before.
type DisplayState struct {
	Setup     string
	Punchline string
	Failed    bool
}

// Picker selects an index in [0, n). The default is uniform random;
// tests substitute a fixed one.
type Picker interface {
	Pick(n int) int
}

type uniformPicker struct{}

func (uniformPicker) Pick(n int) int {
	return rand.Intn(n)
}

type Presenter struct {
	source dataset.Source
	pick   Picker
}

func New(source dataset.Source, opts ...Option) *Presenter {
	p := &Presenter{
		source: source,
		pick:   uniformPicker{},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

type Option func(*Presenter)

func WithPicker(pick Picker) Option {
	return func(p *Presenter) {
		p.pick = pick
	}
}

// Request loads the dataset for a language and renders one random joke.
// Every request is independent; any failure produces the error state.
func (p *Presenter) Request(ctx context.Context, lang models.Language) DisplayState {
	records, err := p.source.Load(ctx, lang)
	if err != nil {
		logger.Warn("Failed to load dataset",
			logger.String("language", string(lang)),
			logger.Err(err),
		)
		return OnError(err)
	}

	rec, err := PickRandom(p.pick, records)
	if err != nil {
		logger.Warn("Failed to pick joke",
			logger.String("language", string(lang)),
			logger.Err(err),
		)
		return OnError(err)
	}

	return Render(rec)
}

// PickRandom selects one record with a uniform index in [0, len).
func PickRandom(pick Picker, records []models.JokeRecord) (models.JokeRecord, error) {
	if len(records) == 0 {
		return models.JokeRecord{}, ErrEmptyDataset
	}
	return records[pick.Pick(len(records))], nil
}

// Render produces the display state for one joke.
func Render(rec models.JokeRecord) DisplayState {
	return DisplayState{
		Setup:     rec.Setup,
		Punchline: rec.Punchline,
	}
}

// OnError produces the fixed error state: the message in the setup
// region, punchline region cleared.
func OnError(_ error) DisplayState {
	return DisplayState{
		Setup:  ErrorMessage,
		Failed: true,
	}
}
