package curator

import "jokebox/internal/models"

// Provider A serves a flat JSON array of typed setup/punchline jokes.
type providerAJoke struct {
	Type      string `json:"type"`
	Setup     string `json:"setup"`
	Punchline string `json:"punchline"`
}

// Provider B wraps its jokes in a document and uses "delivery" for the
// punchline, with per-joke content flags.
type providerBDocument struct {
	Jokes []providerBJoke `json:"jokes"`
}

type providerBJoke struct {
	Category string         `json:"category"`
	Flags    providerBFlags `json:"flags"`
	Setup    *string        `json:"setup"`
	Delivery *string        `json:"delivery"`
}

type providerBFlags struct {
	NSFW     bool `json:"nsfw"`
	Racist   bool `json:"racist"`
	Sexist   bool `json:"sexist"`
	Explicit bool `json:"explicit"`
}

// keepProviderA drops programming jokes and anything missing one of the
// two parts. A dropped record never aborts the batch.
func keepProviderA(j providerAJoke) bool {
	if j.Type == "programming" {
		return false
	}
	return j.Setup != "" && j.Punchline != ""
}

func projectProviderA(j providerAJoke) models.JokeRecord {
	return models.JokeRecord{Setup: j.Setup, Punchline: j.Punchline}
}

// keepProviderB drops flagged content, programming jokes, and records
// without both a setup and a delivery.
func keepProviderB(j providerBJoke) bool {
	if j.Flags.NSFW || j.Flags.Racist || j.Flags.Sexist || j.Flags.Explicit {
		return false
	}
	if j.Category == "Programming" {
		return false
	}
	if j.Setup == nil || *j.Setup == "" {
		return false
	}
	if j.Delivery == nil || *j.Delivery == "" {
		return false
	}
	return true
}

func projectProviderB(j providerBJoke) models.JokeRecord {
	return models.JokeRecord{Setup: *j.Setup, Punchline: *j.Delivery}
}
