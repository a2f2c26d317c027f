package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	TokenModeTrustUpstream = "trust-upstream"
	TokenModeVerified      = "verified"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"gatehouse"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	PostgresDSN string `env:"POSTGRES_DSN"`

	// TokenMode selects the claim extractor: trust-upstream decodes the
	// bearer token without signature verification, verified checks an HMAC
	// signature with TokenSecret.
	TokenMode   string `env:"AUTH_TOKEN_MODE" envDefault:"trust-upstream"`
	TokenSecret string `env:"AUTH_TOKEN_SECRET"`

	// SponsorOverridePolicy is "trusted" or "revalidated".
	SponsorOverridePolicy string `env:"AUTH_SPONSOR_OVERRIDE" envDefault:"trusted"`

	VersionPrefix string `env:"API_VERSION_PREFIX" envDefault:"/api/v1"`

	// Extra unauthenticated paths appended to the built-in skip list.
	SkipPaths        []string `env:"AUTH_SKIP_PATHS" envSeparator:","`
	SkipPathPrefixes []string `env:"AUTH_SKIP_PREFIXES" envSeparator:","`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	switch cfg.TokenMode {
	case TokenModeTrustUpstream:
	case TokenModeVerified:
		if strings.TrimSpace(cfg.TokenSecret) == "" {
			return Config{}, fmt.Errorf("AUTH_TOKEN_SECRET is required when AUTH_TOKEN_MODE=%s", TokenModeVerified)
		}
	default:
		return Config{}, fmt.Errorf("unknown AUTH_TOKEN_MODE %q", cfg.TokenMode)
	}

	switch cfg.SponsorOverridePolicy {
	case "trusted", "revalidated":
	default:
		return Config{}, fmt.Errorf("unknown AUTH_SPONSOR_OVERRIDE %q", cfg.SponsorOverridePolicy)
	}

	return cfg, nil
}
