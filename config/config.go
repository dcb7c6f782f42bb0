package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/daniilsolovey/newsly/internal/domain"
	"github.com/daniilsolovey/newsly/internal/newsapi"
)

type Config struct {
	App struct {
		Host string
		Port int
	}
	NewsAPI struct {
		BaseURL string
		APIKey  string
		Country string
		Timeout time.Duration
	}
	Headlines struct {
		DiscardStale bool
	}
	Session struct {
		IdleTimeout  time.Duration
		ReapInterval time.Duration
		CookieName   string
		CookieSecure bool
	}
}

// Default returns the configuration used for keys missing from the file.
func Default() Config {
	var cfg Config
	cfg.App.Host = "0.0.0.0"
	cfg.App.Port = 3000
	cfg.NewsAPI.BaseURL = newsapi.DefaultBaseURL
	cfg.NewsAPI.Country = domain.DefaultCountry
	cfg.NewsAPI.Timeout = newsapi.DefaultTimeout
	cfg.Headlines.DiscardStale = true
	cfg.Session.IdleTimeout = 30 * time.Minute
	cfg.Session.ReapInterval = time.Minute
	cfg.Session.CookieName = "newsly_sid"
	return cfg
}

// Load decodes path over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.NewsAPI.APIKey == "" {
		errs = append(errs, errors.New("NewsAPI.APIKey is required"))
	}
	if len(c.NewsAPI.Country) != 2 {
		errs = append(errs, fmt.Errorf("NewsAPI.Country must be a two-letter code, got %q", c.NewsAPI.Country))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("App.Port out of range: %d", c.App.Port))
	}
	if c.Session.CookieName == "" {
		errs = append(errs, errors.New("Session.CookieName is required"))
	}
	return errors.Join(errs...)
}

func (c Config) NewsAPIConfig() newsapi.Config {
	return newsapi.Config{
		BaseURL: c.NewsAPI.BaseURL,
		APIKey:  c.NewsAPI.APIKey,
		Country: c.NewsAPI.Country,
		Timeout: c.NewsAPI.Timeout,
	}
}
