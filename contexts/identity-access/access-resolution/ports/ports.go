package ports

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
}

// MembershipRecord is the single-row result of the membership lookup:
// the accepted tenant/sponsor/user binding joined to the user row.
type MembershipRecord struct {
	UserID      int64
	SponsorID   string
	AccessLevel string
	FirstName   string
	LastName    string
}

// DomainGrant is one ACL row that matched the requested (domain, method)
// under an active license for the resolved sponsor.
type DomainGrant struct {
	Domain         string
	LicenseModelID string
}

// ClientScope is a per-user division/family/brand filter row. It is read
// for downstream business logic and never consulted by the resolver.
type ClientScope struct {
	Division string
	Family   string
	Brand    string
}

// Gateway is the read-only Data Access Gateway backing the resolver. Each
// method is a single round trip against the shared store; implementations
// must honor context cancellation and perform no writes.
type Gateway interface {
	// AcceptedMembership returns the accepted membership for (subject,
	// tenant), joined to the user row. found=false is not an error.
	AcceptedMembership(ctx context.Context, subjectID string, tenantID string) (MembershipRecord, bool, error)

	// SponsorMembershipExists reports whether the subject holds an accepted
	// membership for the given sponsor under the tenant. Used only by the
	// revalidated sponsor-override policy.
	SponsorMembershipExists(ctx context.Context, subjectID string, tenantID string, sponsorID string) (bool, error)

	// LicensedDomainGrants joins ACL rows to licenses on (license model,
	// application, tenant) and returns every row matching the normalized
	// domain and method where the sponsor's license is active and not
	// soft-deleted.
	LicensedDomainGrants(ctx context.Context, tenantID string, sponsorID string, domain string, method string) ([]DomainGrant, error)

	// EntitledCampaignIDs returns the distinct campaign ids from active,
	// non-deleted entitlement rows for (user, sponsor, tenant).
	EntitledCampaignIDs(ctx context.Context, userID int64, sponsorID string, tenantID string) ([]string, error)

	// ClientScopes returns the non-deleted division/family/brand filter
	// rows for (user, tenant).
	ClientScopes(ctx context.Context, userID int64, tenantID string) ([]ClientScope, error)
}
