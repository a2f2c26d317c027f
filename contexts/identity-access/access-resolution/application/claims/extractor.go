package claims

import (
	"errors"
	"strings"
	"time"

	"gatehouse/contexts/identity-access/access-resolution/domain/entities"
	domainerrors "gatehouse/contexts/identity-access/access-resolution/domain/errors"

	"github.com/golang-jwt/jwt/v5"
)

// Extractor turns the inbound authorization and tenant headers into raw
// identity facts. Implementations differ only in how much trust they place
// in the token: TrustUpstreamExtractor decodes without checking the
// signature (trust is delegated to an upstream gateway), VerifiedExtractor
// checks an HMAC signature locally. The choice is process configuration,
// never silent behavior.
type Extractor interface {
	Extract(authorizationHeader string, tenantHeader string) (entities.IdentityClaims, error)
}

// TrustUpstreamExtractor decodes the bearer token payload without verifying
// its cryptographic signature.
type TrustUpstreamExtractor struct {
	Now func() time.Time
}

func (e TrustUpstreamExtractor) Extract(authorizationHeader string, tenantHeader string) (entities.IdentityClaims, error) {
	token, err := bearerToken(authorizationHeader)
	if err != nil {
		return entities.IdentityClaims{}, err
	}

	payload := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, payload); err != nil {
		return entities.IdentityClaims{}, domainerrors.ErrUndecodableToken
	}
	if expired(payload, e.now()) {
		return entities.IdentityClaims{}, domainerrors.ErrTokenExpired
	}
	return claimsFromPayload(payload, tenantHeader)
}

func (e TrustUpstreamExtractor) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// VerifiedExtractor parses the bearer token and verifies its HMAC signature
// before trusting any claim.
type VerifiedExtractor struct {
	Secret []byte
}

func (e VerifiedExtractor) Extract(authorizationHeader string, tenantHeader string) (entities.IdentityClaims, error) {
	token, err := bearerToken(authorizationHeader)
	if err != nil {
		return entities.IdentityClaims{}, err
	}

	payload := jwt.MapClaims{}
	_, err = jwt.NewParser(jwt.WithValidMethods([]string{"HS256"})).ParseWithClaims(token, payload, func(*jwt.Token) (any, error) {
		return e.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return entities.IdentityClaims{}, domainerrors.ErrTokenExpired
		}
		return entities.IdentityClaims{}, domainerrors.ErrUndecodableToken
	}
	return claimsFromPayload(payload, tenantHeader)
}

// bearerToken enforces the exact "Bearer <token>" scheme.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", domainerrors.ErrMissingAuthorization
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", domainerrors.ErrMalformedAuthorization
	}
	return parts[1], nil
}

// Subject comes from the username claim with the standard subject claim as
// fallback; tenant priority is header, then tenant_id claim, then client_id
// claim.
func claimsFromPayload(payload jwt.MapClaims, tenantHeader string) (entities.IdentityClaims, error) {
	subject := stringClaim(payload, "username")
	if subject == "" {
		subject = stringClaim(payload, "sub")
	}

	tenant := tenantHeader
	if tenant == "" {
		tenant = stringClaim(payload, "tenant_id")
	}
	if tenant == "" {
		tenant = stringClaim(payload, "client_id")
	}

	if subject == "" || tenant == "" {
		return entities.IdentityClaims{}, domainerrors.ErrIncompleteIdentity
	}
	return entities.IdentityClaims{SubjectID: subject, TenantID: tenant}, nil
}

func stringClaim(payload jwt.MapClaims, name string) string {
	value, ok := payload[name].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func expired(payload jwt.MapClaims, now time.Time) bool {
	exp, err := payload.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
