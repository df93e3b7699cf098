package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

var ErrEmptyBotToken = errors.New("telegram bot token is required")

type Config struct {
	App       AppConfig       `yaml:"app"`
	Curator   CuratorConfig   `yaml:"curator"`
	Presenter PresenterConfig `yaml:"presenter"`
	Bot       BotConfig       `yaml:"bot"`
	Health    HealthConfig    `yaml:"health"`
}

type AppConfig struct {
	Name        string `yaml:"name" env:"APP_NAME" env-default:"jokebox"`
	Environment string `yaml:"environment" env:"APP_ENVIRONMENT" env-default:"production"`
	LogLevel    string `yaml:"log_level" env:"APP_LOG_LEVEL" env-default:"info"`
}

type CuratorConfig struct {
	OutputDir string   `yaml:"output_dir" env:"CURATOR_OUTPUT_DIR" env-default:"data"`
	Languages []string `yaml:"languages" env:"CURATOR_LANGUAGES" env-separator:"," env-default:"en,de,es"`

	// ProviderAURL serves a flat JSON array of {type, setup, punchline}
	// jokes. English only.
	ProviderAURL string `yaml:"provider_a_url" env:"CURATOR_PROVIDER_A_URL" env-default:"https://raw.githubusercontent.com/15Dkatz/official_joke_api/master/jokes/index.json"`

	// ProviderBURLTemplate expands with a language code into a URL serving
	// {jokes: [{category, flags, setup, delivery}]} documents.
	ProviderBURLTemplate string `yaml:"provider_b_url_template" env:"CURATOR_PROVIDER_B_URL_TEMPLATE" env-default:"https://raw.githubusercontent.com/Sv443/JokeAPI/master/data/jokes/jokes-%s.json"`
}

func (c CuratorConfig) ProviderBURL(lang string) string {
	return fmt.Sprintf(c.ProviderBURLTemplate, lang)
}

type PresenterConfig struct {
	// DatasetDir is where curated dataset files are read from.
	DatasetDir string `yaml:"dataset_dir" env:"PRESENTER_DATASET_DIR" env-default:"data"`

	// DatasetBaseURL, when set, makes the presenter fetch dataset files
	// over HTTP instead of reading DatasetDir.
	DatasetBaseURL string `yaml:"dataset_base_url" env:"PRESENTER_DATASET_BASE_URL"`

	// WitzURL is the live one-liner joke endpoint (German).
	WitzURL string `yaml:"witz_url" env:"PRESENTER_WITZ_URL" env-default:"https://witzapi.de/api/joke"`

	// ASCIIOnly folds jokes to plain ASCII before rendering, for displays
	// that cannot draw the full character set.
	ASCIIOnly bool `yaml:"ascii_only" env:"PRESENTER_ASCII_ONLY" env-default:"false"`
}

type BotConfig struct {
	Token     string `yaml:"token" env:"BOT_TOKEN"`
	ParseMode string `yaml:"parse_mode" env:"BOT_PARSE_MODE" env-default:"Markdown"`
}

type HealthConfig struct {
	Port     int    `yaml:"port" env:"HEALTH_PORT" env-default:"8080"`
	Endpoint string `yaml:"endpoint" env:"HEALTH_ENDPOINT" env-default:"/healthz"`
}

// Load reads the YAML config pointed to by CONFIG_PATH and applies
// environment overrides. The bot token is only validated by RequireBot,
// so the curator binaries run without one.
func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	var cfg Config

	if _, err := os.Stat(configPath); err == nil {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from %s: %w", configPath, err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}

	return &cfg, nil
}

func (c *Config) RequireBot() error {
	if c.Bot.Token == "" {
		return ErrEmptyBotToken
	}
	return nil
}
