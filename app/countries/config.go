package countries

import (
	"time"

	"github.com/joefazee/atlas/internal/formatter"
	"github.com/joefazee/atlas/internal/validator"
	"github.com/joefazee/atlas/models"
)

const (
	DefaultPageSize  = 20
	DefaultSourceURL = "https://restcountries.com/v3.1/all?fields=name,flags,population,region,cca3,cca2"
)

// Config represents the configuration for the countries module
type Config struct {
	SourceURL     string        `yaml:"source_url" env:"COUNTRIES_SOURCE_URL" env-default:"https://restcountries.com/v3.1/all?fields=name,flags,population,region,cca3,cca2"`
	PageSize      int           `yaml:"page_size" env:"COUNTRIES_PAGE_SIZE" env-default:"20"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout" env:"COUNTRIES_FETCH_TIMEOUT" env-default:"15s"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" env:"COUNTRIES_MAX_BODY_BYTES" env-default:"8388608"`
	MaxQueryRunes int           `yaml:"max_query_runes" env:"COUNTRIES_MAX_QUERY_RUNES" env-default:"100"`
	SessionTTL    time.Duration `yaml:"session_ttl" env:"COUNTRIES_SESSION_TTL" env-default:"24h"`
	Locale        string        `yaml:"locale" env:"COUNTRIES_LOCALE" env-default:"en-US"`
}

func (c *Config) Validate() error {
	type validation struct {
		ok  bool
		err error
	}

	_, localeErr := formatter.ParseLocale(c.Locale)

	checks := []validation{
		{validator.IsHTTPURL(c.SourceURL), models.ErrInvalidSourceURL},
		{c.PageSize > 0 && c.PageSize <= 250, models.ErrInvalidPageSize},
		{c.FetchTimeout > 0 && c.FetchTimeout <= 2*time.Minute, models.ErrInvalidTimeout},
		{c.MaxBodyBytes > 0, models.ErrInvalidBodyLimit},
		{c.MaxQueryRunes > 0 && c.MaxQueryRunes <= 1000, models.ErrInvalidQueryLimit},
		{c.SessionTTL >= time.Minute, models.ErrInvalidSessionTTL},
		{validator.NotBlank(c.Locale) && localeErr == nil, models.ErrInvalidLocale},
	}

	for _, v := range checks {
		if !v.ok {
			return v.err
		}
	}
	return nil
}

// GetDefaultConfig returns the default countries configuration
func GetDefaultConfig() *Config {
	return &Config{
		SourceURL:     DefaultSourceURL,
		PageSize:      DefaultPageSize,
		FetchTimeout:  15 * time.Second,
		MaxBodyBytes:  8 << 20,
		MaxQueryRunes: 100,
		SessionTTL:    24 * time.Hour,
		Locale:        "en-US",
	}
}
