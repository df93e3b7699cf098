package models

import (
	"encoding/json"
	"fmt"
)

// Language is a dataset language code.
type Language string

const (
	LangEnglish Language = "en"
	LangGerman  Language = "de"
	LangSpanish Language = "es"
)

func SupportedLanguages() []Language {
	return []Language{LangEnglish, LangGerman, LangSpanish}
}

func (l Language) Supported() bool {
	switch l {
	case LangEnglish, LangGerman, LangSpanish:
		return true
	}
	return false
}

// JokeRecord is the canonical two-part joke. On the wire it is a
// 2-element JSON array of strings, one record per line of a dataset file.
type JokeRecord struct {
	Setup     string
	Punchline string
}

func (r JokeRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{r.Setup, r.Punchline})
}

func (r *JokeRecord) UnmarshalJSON(data []byte) error {
	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) != 2 {
		return fmt.Errorf("expected 2 elements, got %d", len(parts))
	}
	r.Setup = parts[0]
	r.Punchline = parts[1]
	return nil
}
