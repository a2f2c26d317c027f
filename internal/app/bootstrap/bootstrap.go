package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	attendeeservice "gatehouse/contexts/campaign-editorial/attendee-service"
	attendeepostgres "gatehouse/contexts/campaign-editorial/attendee-service/adapters/postgres"
	accessresolution "gatehouse/contexts/identity-access/access-resolution"
	accesshttp "gatehouse/contexts/identity-access/access-resolution/adapters/http"
	accesspostgres "gatehouse/contexts/identity-access/access-resolution/adapters/postgres"
	"gatehouse/contexts/identity-access/access-resolution/application/claims"
	"gatehouse/contexts/identity-access/access-resolution/application/queries"
	"gatehouse/internal/platform/config"
	"gatehouse/internal/platform/db"
	"gatehouse/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	authz := accessresolution.NewModule(accessresolution.Dependencies{
		Gateway:        accesspostgres.NewRepository(pg.DB, logger),
		Extractor:      extractorFor(cfg),
		Clock:          accesspostgres.SystemClock{},
		OverridePolicy: queries.SponsorOverridePolicy(cfg.SponsorOverridePolicy),
		VersionPrefix:  cfg.VersionPrefix,
		Skip:           skipListFor(cfg),
		Logger:         logger,
	})

	attendees := attendeeservice.NewModule(attendeeservice.Dependencies{
		Repository: attendeepostgres.NewRepository(pg.DB, logger),
		Clock:      attendeepostgres.SystemClock{},
		Logger:     logger,
	})

	server := httpserver.New(authz, attendees, logger, normalizeAddr(cfg.HTTPPort), cfg.Environment)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func extractorFor(cfg config.Config) claims.Extractor {
	if cfg.TokenMode == config.TokenModeVerified {
		return claims.VerifiedExtractor{Secret: []byte(cfg.TokenSecret)}
	}
	return claims.TrustUpstreamExtractor{}
}

func skipListFor(cfg config.Config) accesshttp.SkipList {
	skip := accessresolution.DefaultSkipList()
	skip.Exact = append(skip.Exact, cfg.SkipPaths...)
	skip.Prefixes = append(skip.Prefixes, cfg.SkipPathPrefixes...)
	return skip
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
