package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	application "gatehouse/contexts/identity-access/access-resolution/application"
	"gatehouse/contexts/identity-access/access-resolution/application/claims"
	"gatehouse/contexts/identity-access/access-resolution/application/queries"
	domainerrors "gatehouse/contexts/identity-access/access-resolution/domain/errors"
	"gatehouse/contexts/identity-access/access-resolution/ports"
	httptransport "gatehouse/contexts/identity-access/access-resolution/transport/http"
)

const (
	tenantHeader  = "tenant_id"
	sponsorHeader = "sponsor_id"
)

// SkipList enumerates paths that bypass authorization entirely. Exact
// entries match the whole path; prefix entries match path prefixes (static
// assets, docs UI). This is configuration, not logic.
type SkipList struct {
	Exact    []string
	Prefixes []string
}

func (s SkipList) Skips(path string) bool {
	for _, exact := range s.Exact {
		if path == exact {
			return true
		}
	}
	for _, prefix := range s.Prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Middleware guards protected handlers: it extracts identity claims,
// resolves access, and either attaches an AuthorizationContext to the
// request or writes a structured denial. Lookup failures surface as 500s so
// callers can tell "not allowed" from "system failure".
type Middleware struct {
	Extractor claims.Extractor
	Resolve   queries.ResolveAccessUseCase
	Skip      SkipList
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (m Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.Skip.Skips(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		logger := application.ResolveLogger(m.Logger)

		identity, err := m.Extractor.Extract(r.Header.Get("Authorization"), r.Header.Get(tenantHeader))
		if err != nil {
			logger.Warn("token extraction failed",
				"event", "access_token_rejected",
				"module", "identity-access/access-resolution",
				"layer", "transport",
				"code", extractionCode(err),
				"path", r.URL.Path,
				"method", r.Method,
			)
			m.writeDenial(w, http.StatusUnauthorized, tokenMessage(err))
			return
		}

		auth, err := m.Resolve.Execute(r.Context(), queries.ResolveAccessQuery{
			Identity:        identity,
			Path:            r.URL.Path,
			Method:          r.Method,
			SponsorOverride: r.Header.Get(sponsorHeader),
		})
		if err != nil {
			if isDenial(err) {
				// All authorization denials share one message so the
				// response leaks nothing about ACL structure.
				m.writeDenial(w, http.StatusUnauthorized, "Access denied")
				return
			}
			logger.Error("authorization lookup failed",
				"event", "access_resolution_error",
				"module", "identity-access/access-resolution",
				"layer", "transport",
				"path", r.URL.Path,
				"method", r.Method,
				"error", err.Error(),
			)
			m.writeDenial(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithAuthorization(r.Context(), auth)))
	})
}

func (m Middleware) writeDenial(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(httptransport.NewDenial(message, m.timestamp()))
}

// ISO-8601 UTC ending in Z, matching the envelope contract.
func (m Middleware) timestamp() string {
	now := time.Now()
	if m.Clock != nil {
		now = m.Clock.Now()
	}
	return now.UTC().Format("2006-01-02T15:04:05.999999") + "Z"
}

func isDenial(err error) bool {
	return errors.Is(err, domainerrors.ErrUnknownMembership) ||
		errors.Is(err, domainerrors.ErrDomainAccessDenied) ||
		errors.Is(err, domainerrors.ErrNoCampaignsAccessible) ||
		errors.Is(err, domainerrors.ErrSponsorOverrideRejected)
}

func tokenMessage(err error) string {
	return "Token error: " + err.Error()
}

// extractionCode labels token failures for server-side diagnostics only;
// the response carries the generic AUTH_ERROR envelope.
func extractionCode(err error) string {
	switch {
	case errors.Is(err, domainerrors.ErrMissingAuthorization),
		errors.Is(err, domainerrors.ErrMalformedAuthorization):
		return "token_missing_or_malformed"
	case errors.Is(err, domainerrors.ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, domainerrors.ErrUndecodableToken):
		return "token_undecodable"
	case errors.Is(err, domainerrors.ErrIncompleteIdentity):
		return "identity_incomplete"
	default:
		return "token_rejected"
	}
}
