package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// durationSeconds parses env as time.Duration: "10s", "5m" or a bare number
// of seconds (e.g. "10" -> 10s).
type durationSeconds time.Duration

// SetValue implements cleanenv.Setter.
func (d *durationSeconds) SetValue(data string) error {
	v, err := parseDuration(data)
	if err != nil {
		return err
	}
	*d = durationSeconds(v)
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && ((s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')) {
		s = s[1 : len(s)-1]
	}
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("duration must be like 10s, 5m or a number of seconds: %w", err)
	}
	return d, nil
}

func (d durationSeconds) Duration() time.Duration { return time.Duration(d) }

// Config covers both binaries. The API ignores the Web section and the web
// frontend ignores PG/Migrations.
type Config struct {
	App        AppConfig
	HTTP       HTTPConfig
	PG         PGConfig
	OIDC       OIDCConfig
	Migrations MigrationsConfig
	Web        WebConfig
}

type AppConfig struct {
	Env     string `env:"APP_ENV" env-default:"dev"`
	Version string `env:"VERSION" env-default:"dev"`
}

type HTTPConfig struct {
	Port string `env:"HTTP_PORT" env-default:"8080"`

	// "10s", "5m" or a number of seconds without a suffix.
	ReadTimeout  durationSeconds `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout durationSeconds `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  durationSeconds `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type PGConfig struct {
	DSN string `env:"PG_DSN" env-required:"true"`
}

// OIDCConfig points both binaries at the identity provider. The API only
// needs the issuer; the web frontend also needs client credentials for the
// authorization-code flow.
type OIDCConfig struct {
	Issuer       string `env:"OIDC_ISSUER" env-required:"true"`
	ClientID     string `env:"OIDC_CLIENT_ID" env-default:""`
	ClientSecret string `env:"OIDC_CLIENT_SECRET" env-default:""`
	RedirectURL  string `env:"OIDC_REDIRECT_URL" env-default:"http://localhost:3000/auth/callback"`
}

// MigrationsConfig mirrors the deployment knobs for the one-shot migration
// step at boot.
type MigrationsConfig struct {
	Enabled       bool   `env:"MIGRATIONS_ENABLED" env-default:"true"`
	Dir           string `env:"MIGRATIONS_DIR" env-default:"./migrations"`
	HaltOnFailure bool   `env:"MIGRATIONS_HALT_ON_FAILURE" env-default:"true"`
}

type WebConfig struct {
	// APIBaseURL is where the notes backend lives, e.g. http://localhost:8080.
	APIBaseURL string `env:"API_BASE_URL" env-default:"http://localhost:8080"`

	RedisAddr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" env-default:""`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`

	// SessionTTL: "24h" or a number of seconds.
	SessionTTL durationSeconds `env:"SESSION_TTL" env-default:"24h"`
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}
