package curator

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"jokebox/internal/config"
	"jokebox/internal/models"
	"jokebox/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("error", os.Stderr)
	os.Exit(m.Run())
}

func strPtr(s string) *string {
	return &s
}

func TestKeepProviderA(t *testing.T) {
	tests := []struct {
		name string
		joke providerAJoke
		keep bool
	}{
		{"regular joke", providerAJoke{Type: "general", Setup: "A", Punchline: "B"}, true},
		{"programming joke", providerAJoke{Type: "programming", Setup: "A", Punchline: "B"}, false},
		{"missing setup", providerAJoke{Type: "general", Punchline: "B"}, false},
		{"missing punchline", providerAJoke{Type: "general", Setup: "A"}, false},
		{"empty type", providerAJoke{Setup: "A", Punchline: "B"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keepProviderA(tt.joke); got != tt.keep {
				t.Errorf("keepProviderA() = %v, want %v", got, tt.keep)
			}
		})
	}
}

func TestKeepProviderB(t *testing.T) {
	ok := providerBJoke{
		Category: "Pun",
		Setup:    strPtr("A"),
		Delivery: strPtr("B"),
	}

	tests := []struct {
		name   string
		modify func(j providerBJoke) providerBJoke
		keep   bool
	}{
		{"clean joke", func(j providerBJoke) providerBJoke { return j }, true},
		{"nsfw excluded regardless of other fields", func(j providerBJoke) providerBJoke {
			j.Flags.NSFW = true
			return j
		}, false},
		{"racist excluded", func(j providerBJoke) providerBJoke {
			j.Flags.Racist = true
			return j
		}, false},
		{"sexist excluded", func(j providerBJoke) providerBJoke {
			j.Flags.Sexist = true
			return j
		}, false},
		{"explicit excluded", func(j providerBJoke) providerBJoke {
			j.Flags.Explicit = true
			return j
		}, false},
		{"programming category excluded", func(j providerBJoke) providerBJoke {
			j.Category = "Programming"
			return j
		}, false},
		{"nil setup excluded regardless of flags", func(j providerBJoke) providerBJoke {
			j.Setup = nil
			return j
		}, false},
		{"empty setup excluded", func(j providerBJoke) providerBJoke {
			j.Setup = strPtr("")
			return j
		}, false},
		{"nil delivery excluded", func(j providerBJoke) providerBJoke {
			j.Delivery = nil
			return j
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keepProviderB(tt.modify(ok)); got != tt.keep {
				t.Errorf("keepProviderB() = %v, want %v", got, tt.keep)
			}
		})
	}
}

func TestDeduplicate(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{"no duplicates", []string{"a", "b", "c"}, []string{"a", "b", "c"}},
		{"adjacent duplicates", []string{"a", "a", "b"}, []string{"a", "b"}},
		{"scattered duplicates keep first occurrence", []string{"a", "b", "a", "c", "b"}, []string{"a", "b", "c"}},
		{"whitespace variants are distinct", []string{`["a","b"]`, `["a", "b"]`}, []string{`["a","b"]`, `["a", "b"]`}},
		{"empty input", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Deduplicate(tt.lines)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Deduplicate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeduplicateIdempotent(t *testing.T) {
	lines := []string{"a", "b", "a", "c", "c", "b"}
	once := Deduplicate(lines)
	twice := Deduplicate(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Deduplicate not idempotent: once=%v twice=%v", once, twice)
	}
}

func TestProviderAFilterProjectScenario(t *testing.T) {
	jokes := []providerAJoke{
		{Type: "programming", Setup: "A", Punchline: "B"},
		{Type: "other", Setup: "C", Punchline: "D"},
	}

	var records []models.JokeRecord
	for _, j := range jokes {
		if keepProviderA(j) {
			records = append(records, projectProviderA(j))
		}
	}

	if len(records) != 1 {
		t.Fatalf("expected exactly 1 record, got %d", len(records))
	}
	if records[0].Setup != "C" || records[0].Punchline != "D" {
		t.Errorf("record = %+v, want (C, D)", records[0])
	}
}

func newTestConfig(t *testing.T, srv *httptest.Server) config.CuratorConfig {
	t.Helper()
	return config.CuratorConfig{
		OutputDir:            t.TempDir(),
		Languages:            []string{"en", "de", "es"},
		ProviderAURL:         srv.URL + "/a/index.json",
		ProviderBURLTemplate: srv.URL + "/b/jokes-%s.json",
	}
}

func TestRunLanguageEnglishMergesSources(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/a/index.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"type":"programming","setup":"A","punchline":"B"},
			{"type":"general","setup":"C","punchline":"D"},
			{"type":"general","setup":"C","punchline":"D"}
		]`))
	})
	mux.HandleFunc("/b/jokes-en.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jokes":[
			{"category":"Pun","flags":{"nsfw":false,"racist":false,"sexist":false,"explicit":false},"setup":"E","delivery":"F"},
			{"category":"Pun","flags":{"nsfw":true,"racist":false,"sexist":false,"explicit":false},"setup":"G","delivery":"H"},
			{"category":"Programming","flags":{"nsfw":false,"racist":false,"sexist":false,"explicit":false},"setup":"I","delivery":"J"},
			{"category":"Misc","flags":{"nsfw":false,"racist":false,"sexist":false,"explicit":false},"setup":null,"delivery":"K"}
		]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := newTestConfig(t, srv)
	c := New(cfg, WithHTTPClient(srv.Client()))

	if err := c.RunLanguage(context.Background(), models.LangEnglish); err != nil {
		t.Fatalf("RunLanguage() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "jokes-en.min.json"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	want := "[\"C\",\"D\"]\n[\"E\",\"F\"]\n"
	if string(data) != want {
		t.Errorf("output = %q, want %q", data, want)
	}
}

func TestRunLanguageGermanSingleSource(t *testing.T) {
	providerAHits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/a/index.json", func(w http.ResponseWriter, r *http.Request) {
		providerAHits++
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/b/jokes-de.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jokes":[
			{"category":"Pun","flags":{},"setup":"Warum?","delivery":"Darum."}
		]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := newTestConfig(t, srv)
	c := New(cfg, WithHTTPClient(srv.Client()))

	if err := c.RunLanguage(context.Background(), models.LangGerman); err != nil {
		t.Fatalf("RunLanguage() error = %v", err)
	}
	if providerAHits != 0 {
		t.Errorf("provider A fetched %d times for German, want 0", providerAHits)
	}

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "jokes-de.min.json"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "[\"Warum?\",\"Darum.\"]\n" {
		t.Errorf("output = %q", data)
	}
}

func TestRunLanguageFetchFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := newTestConfig(t, srv)
	c := New(cfg, WithHTTPClient(srv.Client()))

	err := c.RunLanguage(context.Background(), models.LangGerman)
	if err == nil {
		t.Fatal("expected error on 500 response")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %T: %v", err, err)
	}
	if fetchErr.Status != http.StatusInternalServerError {
		t.Errorf("Status = %d, want %d", fetchErr.Status, http.StatusInternalServerError)
	}

	if _, statErr := os.Stat(filepath.Join(cfg.OutputDir, "jokes-de.min.json")); !os.IsNotExist(statErr) {
		t.Error("no output file should be written on a failed run")
	}
}

func TestRunLanguageParseFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/b/jokes-es.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := newTestConfig(t, srv)
	c := New(cfg, WithHTTPClient(srv.Client()))

	if err := c.RunLanguage(context.Background(), models.LangSpanish); err == nil {
		t.Fatal("expected error on malformed upstream document")
	}
}

func TestRunLanguageUnsupported(t *testing.T) {
	c := New(config.CuratorConfig{OutputDir: t.TempDir()})
	if err := c.RunLanguage(context.Background(), models.Language("fr")); err == nil {
		t.Fatal("expected error for unsupported language")
	}
}

func TestRunContinuesAfterLanguageFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/b/jokes-de.json", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	})
	mux.HandleFunc("/b/jokes-es.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jokes":[
			{"category":"Pun","flags":{},"setup":"Hola","delivery":"Adios"}
		]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := newTestConfig(t, srv)
	cfg.Languages = []string{"de", "es"}
	c := New(cfg, WithHTTPClient(srv.Client()))

	if err := c.Run(context.Background()); err == nil {
		t.Fatal("expected error when one language fails")
	}

	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "jokes-es.min.json")); err != nil {
		t.Errorf("Spanish file should still be written: %v", err)
	}
}
