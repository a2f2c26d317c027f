package errors

import "errors"

var (
	// Token extraction failures. All map to 401 with distinct server-side codes.
	ErrMissingAuthorization   = errors.New("missing authorization header")
	ErrMalformedAuthorization = errors.New("invalid authorization header format")
	ErrUndecodableToken       = errors.New("token payload is not decodable")
	ErrTokenExpired           = errors.New("token expired")
	ErrIncompleteIdentity     = errors.New("missing required token fields")

	// Authorization denials. Deliberately indistinguishable in responses;
	// distinguished only in server-side diagnostics.
	ErrUnknownMembership       = errors.New("no accepted membership for tenant")
	ErrDomainAccessDenied      = errors.New("access denied to domain")
	ErrNoCampaignsAccessible   = errors.New("no campaigns accessible")
	ErrSponsorOverrideRejected = errors.New("sponsor override rejected")
)
