package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServiceName != "gatehouse" {
		t.Fatalf("unexpected service name %q", cfg.ServiceName)
	}
	if cfg.TokenMode != TokenModeTrustUpstream {
		t.Fatalf("unexpected token mode %q", cfg.TokenMode)
	}
	if cfg.SponsorOverridePolicy != "trusted" {
		t.Fatalf("unexpected override policy %q", cfg.SponsorOverridePolicy)
	}
	if cfg.VersionPrefix != "/api/v1" {
		t.Fatalf("unexpected version prefix %q", cfg.VersionPrefix)
	}
}

func TestVerifiedModeRequiresSecret(t *testing.T) {
	t.Setenv("AUTH_TOKEN_MODE", TokenModeVerified)
	if _, err := Load(); err == nil {
		t.Fatal("expected an error without AUTH_TOKEN_SECRET")
	}

	t.Setenv("AUTH_TOKEN_SECRET", "local-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TokenMode != TokenModeVerified {
		t.Fatalf("unexpected token mode %q", cfg.TokenMode)
	}
}

func TestLoadRejectsUnknownEnums(t *testing.T) {
	t.Setenv("AUTH_TOKEN_MODE", "none")
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for unknown token mode")
	}

	t.Setenv("AUTH_TOKEN_MODE", TokenModeTrustUpstream)
	t.Setenv("AUTH_SPONSOR_OVERRIDE", "sometimes")
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for unknown override policy")
	}
}

func TestSkipListsParseCommaSeparated(t *testing.T) {
	t.Setenv("AUTH_SKIP_PATHS", "/metrics,/ready")
	t.Setenv("AUTH_SKIP_PREFIXES", "/assets")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.SkipPaths) != 2 || cfg.SkipPaths[0] != "/metrics" || cfg.SkipPaths[1] != "/ready" {
		t.Fatalf("unexpected skip paths: %v", cfg.SkipPaths)
	}
	if len(cfg.SkipPathPrefixes) != 1 || cfg.SkipPathPrefixes[0] != "/assets" {
		t.Fatalf("unexpected skip prefixes: %v", cfg.SkipPathPrefixes)
	}
}
