package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DefaultPath    = "pokedex.toml"
	DefaultBaseURL = "https://pokeapi.co/api/v2"

	// Discord caps an embed at 25 fields, one per pokemon on a page.
	MaxPageSize = 25
)

type API struct {
	BaseURL    string        `toml:"base_url"`
	ListLimit  int           `toml:"list_limit"`
	BatchSize  int           `toml:"batch_size"`
	BatchDelay time.Duration `toml:"batch_delay"`
	Timeout    time.Duration `toml:"timeout"`
}

type Config struct {
	Discord struct {
		Token string `toml:"token"`
	} `toml:"discord"`
	DB struct {
		Path string `toml:"path"`
	} `toml:"database"`
	API     API `toml:"api"`
	Catalog struct {
		PageSize          int `toml:"page_size"`
		AutocompleteLimit int `toml:"autocomplete_limit"`
	} `toml:"catalog"`
}

func Default() Config {
	var cfg Config
	cfg.DB.Path = "pokedex.db"
	cfg.API = API{
		BaseURL:    DefaultBaseURL,
		ListLimit:  10000,
		BatchSize:  100,
		BatchDelay: 50 * time.Millisecond,
		Timeout:    10 * time.Second,
	}
	cfg.Catalog.PageSize = 24
	cfg.Catalog.AutocompleteLimit = 25

	return cfg
}

var ErrInvalidConfig = errors.New("invalid config")

// Read loads the TOML file at path on top of the defaults, then applies
// environment overrides, reading a .env file first if there is one. A missing
// config file is not an error.
func Read(path string) (*Config, error) {
	cfg := Default()

	_, err := toml.DecodeFile(path, &cfg)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to decode config file %q: %w", path, err)
	}

	err = godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	cfg.applyEnv()

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (cfg *Config) applyEnv() {
	if token := os.Getenv("POKEDEX_DISCORD_TOKEN"); token != "" {
		cfg.Discord.Token = token
	}
	if path := os.Getenv("POKEDEX_DB_PATH"); path != "" {
		cfg.DB.Path = path
	}
	if url := os.Getenv("POKEDEX_API_URL"); url != "" {
		cfg.API.BaseURL = url
	}
}

func (cfg *Config) Validate() error {
	switch {
	case cfg.API.BaseURL == "":
		return fmt.Errorf("api base url is empty: %w", ErrInvalidConfig)
	case cfg.API.ListLimit <= 0:
		return fmt.Errorf("api list limit must be positive, got %d: %w", cfg.API.ListLimit, ErrInvalidConfig)
	case cfg.API.BatchSize <= 0:
		return fmt.Errorf("api batch size must be positive, got %d: %w", cfg.API.BatchSize, ErrInvalidConfig)
	case cfg.API.BatchDelay < 0:
		return fmt.Errorf("api batch delay must not be negative: %w", ErrInvalidConfig)
	case cfg.Catalog.PageSize <= 0 || cfg.Catalog.PageSize > MaxPageSize:
		return fmt.Errorf("page size must be between 1 and %d, got %d: %w", MaxPageSize, cfg.Catalog.PageSize, ErrInvalidConfig)
	case cfg.Catalog.AutocompleteLimit <= 0 || cfg.Catalog.AutocompleteLimit > 25:
		return fmt.Errorf("autocomplete limit must be between 1 and 25, got %d: %w", cfg.Catalog.AutocompleteLimit, ErrInvalidConfig)
	}

	return nil
}

var ErrMissingToken = errors.New("discord token is not set")

func (cfg *Config) RequireToken() error {
	if cfg.Discord.Token == "" {
		return fmt.Errorf("set [discord] token or POKEDEX_DISCORD_TOKEN: %w", ErrMissingToken)
	}

	return nil
}
