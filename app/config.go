package app

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net"
	"time"

	"github.com/joefazee/atlas/app/api"
	"github.com/joefazee/atlas/app/countries"
	"github.com/joefazee/atlas/internal/cache"
	"github.com/joefazee/atlas/internal/nexus"
)

const (
	sessionKeyLength = 32

	ConfigFileFlag    = "config"
	DefaultConfigFile = "atlas.yml"
)

// SessionConfig configures the signed session tokens
type SessionConfig struct {
	// SymmetricKey must be 32 characters. A random key is generated when
	// unset, so sessions do not survive a restart.
	SymmetricKey string `yaml:"symmetric_key" env:"SESSION_SYMMETRIC_KEY" validate:"omitempty,len=32"`
	CookieSecure bool   `yaml:"cookie_secure" env:"SESSION_COOKIE_SECURE" env-default:"false"`
}

type Config struct {
	Countries countries.Config    `yaml:"countries"`
	Cache     cache.Config        `yaml:"cache"`
	Session   SessionConfig       `yaml:"session"`
	RateLimit api.RateLimitConfig `yaml:"rate_limit"`

	AppHost         string        `yaml:"app_host" env:"APP_HOST" env-default:"localhost"`
	AppPort         string        `yaml:"app_port" env:"APP_PORT" env-default:"8080"`
	Env             string        `yaml:"env" env:"APP_ENV" env-default:"development" validate:"oneof=development staging production"`
	LogLevel        string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"15s"`
}

// LoadConfig loads the application configuration. Values come from the
// file named by -config (atlas.yml when present), then the environment and
// an optional .env file, which win over the file.
func LoadConfig() (*Config, error) {
	c := &Config{}
	loader := nexus.NewLoader(
		nexus.WithDotEnv(".env"),
		nexus.WithFileFlag(ConfigFileFlag),
		nexus.WithDefaultFileName(DefaultConfigFile),
	)
	if err := loader.Load(c); err != nil {
		return nil, err
	}

	if err := c.Countries.Validate(); err != nil {
		return nil, fmt.Errorf("countries config: %w", err)
	}

	if c.Session.SymmetricKey == "" {
		key, err := randomKey()
		if err != nil {
			return nil, err
		}
		c.Session.SymmetricKey = key
	}
	return c, nil
}

// Address is the listen address of the HTTP server
func (c *Config) Address() string {
	return net.JoinHostPort(c.AppHost, c.AppPort)
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func randomKey() (string, error) {
	buf := make([]byte, sessionKeyLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
