package accessresolution

import (
	"log/slog"

	httpadapter "gatehouse/contexts/identity-access/access-resolution/adapters/http"
	"gatehouse/contexts/identity-access/access-resolution/adapters/memory"
	"gatehouse/contexts/identity-access/access-resolution/application/claims"
	"gatehouse/contexts/identity-access/access-resolution/application/queries"
	"gatehouse/contexts/identity-access/access-resolution/ports"
)

// DefaultSkipList is the fixed bypass set: health and docs endpoints are
// exact matches, static assets and the swagger UI are prefix matches.
func DefaultSkipList() httpadapter.SkipList {
	return httpadapter.SkipList{
		Exact:    []string{"/docs", "/redoc", "/openapi.json", "/api/v1/health", "/health"},
		Prefixes: []string{"/static", "/swagger"},
	}
}

// Module is the access-resolution composition root exposed to runtime
// wiring.
type Module struct {
	Middleware   httpadapter.Middleware
	Resolve      queries.ResolveAccessUseCase
	ClientScopes queries.ListClientScopesUseCase
	Store        *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Gateway        ports.Gateway
	Extractor      claims.Extractor
	Clock          ports.Clock
	OverridePolicy queries.SponsorOverridePolicy
	VersionPrefix  string
	Skip           httpadapter.SkipList
	Logger         *slog.Logger
}

// NewModule wires the resolver pipeline and its HTTP middleware using
// explicit ports. The gateway and extractor are injected; the module holds
// no mutable state of its own.
func NewModule(deps Dependencies) Module {
	resolve := queries.ResolveAccessUseCase{
		Gateway:        deps.Gateway,
		Clock:          deps.Clock,
		OverridePolicy: deps.OverridePolicy,
		VersionPrefix:  deps.VersionPrefix,
		Logger:         deps.Logger,
	}
	clientScopes := queries.ListClientScopesUseCase{
		Gateway: deps.Gateway,
		Logger:  deps.Logger,
	}
	middleware := httpadapter.Middleware{
		Extractor: deps.Extractor,
		Resolve:   resolve,
		Skip:      deps.Skip,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}

	return Module{
		Middleware:   middleware,
		Resolve:      resolve,
		ClientScopes: clientScopes,
	}
}

// NewInMemoryModule builds a development/testing module with the seeded
// in-memory gateway and the trust-upstream extractor.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewSeededStore()
	module := NewModule(Dependencies{
		Gateway:        store,
		Extractor:      claims.TrustUpstreamExtractor{},
		Clock:          store,
		OverridePolicy: queries.SponsorOverrideTrusted,
		VersionPrefix:  "/api/v1",
		Skip:           DefaultSkipList(),
		Logger:         logger,
	})
	module.Store = store
	return module
}
