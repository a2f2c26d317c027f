package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"gatehouse/contexts/identity-access/access-resolution/adapters/memory"
	"gatehouse/contexts/identity-access/access-resolution/domain/entities"
	domainerrors "gatehouse/contexts/identity-access/access-resolution/domain/errors"
	"gatehouse/contexts/identity-access/access-resolution/ports"
)

func seededResolver(store *memory.Store, policy SponsorOverridePolicy) ResolveAccessUseCase {
	return ResolveAccessUseCase{
		Gateway:        store,
		Clock:          store,
		OverridePolicy: policy,
		VersionPrefix:  "/api/v1",
	}
}

func adminQuery() ResolveAccessQuery {
	return ResolveAccessQuery{
		Identity: entities.IdentityClaims{SubjectID: "user_subject_001", TenantID: "tenant_001"},
		Path:     "/api/v1/campaigns/campaign_001/attendees",
		Method:   "GET",
	}
}

func TestResolveGrantsSeededAdmin(t *testing.T) {
	store := memory.NewSeededStore()
	resolver := seededResolver(store, SponsorOverrideTrusted)

	auth, err := resolver.Execute(context.Background(), adminQuery())
	if err != nil {
		t.Fatalf("unexpected denial: %v", err)
	}
	if auth.SubjectID != "user_subject_001" || auth.TenantID != "tenant_001" || auth.SponsorID != "sponsor_001" {
		t.Fatalf("unexpected identity fields: %+v", auth)
	}
	if auth.AccessLevel != "admin" || auth.FirstName != "John" || auth.LastName != "Admin" {
		t.Fatalf("unexpected membership fields: %+v", auth)
	}
	if len(auth.CampaignIDs) != 1 || auth.CampaignIDs[0] != "campaign_001" {
		t.Fatalf("unexpected campaigns: %v", auth.CampaignIDs)
	}
	if len(auth.LicenseModelIDs) != 1 || auth.LicenseModelIDs[0] != "license_model_001" {
		t.Fatalf("unexpected license models: %v", auth.LicenseModelIDs)
	}
	if auth.ResolvedAt.IsZero() {
		t.Fatal("expected a resolution timestamp")
	}
	if !auth.CanSeeCampaign("campaign_001") {
		t.Fatal("expected campaign_001 to be visible")
	}
	if auth.CanSeeCampaign("campaign_999") {
		t.Fatal("campaign_999 must not be visible")
	}
}

func TestResolveDeniesUnknownMembership(t *testing.T) {
	store := memory.NewSeededStore()
	resolver := seededResolver(store, SponsorOverrideTrusted)

	query := adminQuery()
	query.Identity.SubjectID = "user_subject_999"
	if _, err := resolver.Execute(context.Background(), query); !errors.Is(err, domainerrors.ErrUnknownMembership) {
		t.Fatalf("expected unknown membership, got %v", err)
	}
}

func TestResolveIsTenantScoped(t *testing.T) {
	store := memory.NewSeededStore()
	resolver := seededResolver(store, SponsorOverrideTrusted)

	// Same subject, different tenant: the membership lookup must not leak
	// across tenants.
	query := adminQuery()
	query.Identity.TenantID = "tenant_002"
	if _, err := resolver.Execute(context.Background(), query); !errors.Is(err, domainerrors.ErrUnknownMembership) {
		t.Fatalf("expected cross-tenant denial, got %v", err)
	}
}

func TestResolveDeniesUnlicensedDomain(t *testing.T) {
	store := memory.NewSeededStore()
	resolver := seededResolver(store, SponsorOverrideTrusted)

	query := adminQuery()
	query.Path = "/api/v1/invoices/42"
	if _, err := resolver.Execute(context.Background(), query); !errors.Is(err, domainerrors.ErrDomainAccessDenied) {
		t.Fatalf("expected domain denial, got %v", err)
	}

	query = adminQuery()
	query.Method = "POST"
	if _, err := resolver.Execute(context.Background(), query); !errors.Is(err, domainerrors.ErrDomainAccessDenied) {
		t.Fatalf("expected method denial, got %v", err)
	}
}

func TestResolveDeniesWithoutEntitlements(t *testing.T) {
	store := memory.NewSeededStore()
	resolver := seededResolver(store, SponsorOverrideTrusted)

	// The seeded viewer passes membership and ACL checks but holds no
	// entitlement rows.
	query := adminQuery()
	query.Identity.SubjectID = "user_subject_002"
	if _, err := resolver.Execute(context.Background(), query); !errors.Is(err, domainerrors.ErrNoCampaignsAccessible) {
		t.Fatalf("expected no-campaigns denial, got %v", err)
	}
}

func TestResolveIgnoresInactiveAndDeletedEntitlements(t *testing.T) {
	store := memory.NewSeededStore()
	resolver := seededResolver(store, SponsorOverrideTrusted)

	deleted := time.Now().UTC()
	store.AddEntitlement(1, "sponsor_001", "tenant_001", 1, "license_model_001", "campaign_inactive", "inactive", nil)
	store.AddEntitlement(1, "sponsor_001", "tenant_001", 1, "license_model_001", "campaign_deleted", "active", &deleted)
	store.AddEntitlement(1, "sponsor_001", "tenant_001", 1, "license_model_001", "campaign_001", "active", nil)

	auth, err := resolver.Execute(context.Background(), adminQuery())
	if err != nil {
		t.Fatalf("unexpected denial: %v", err)
	}
	if len(auth.CampaignIDs) != 1 || auth.CampaignIDs[0] != "campaign_001" {
		t.Fatalf("status and soft-delete filters leaked rows: %v", auth.CampaignIDs)
	}
}

func TestResolveUnionsMatchingGrants(t *testing.T) {
	store := memory.NewSeededStore()
	resolver := seededResolver(store, SponsorOverrideTrusted)

	store.AddFeatureDomain(1, "tenant_001", "license_model_002", "/campaigns/{id}/attendees", "GET", false)
	store.AddLicense("license_model_002", 1, "tenant_001", "sponsor_001", "active", nil)

	auth, err := resolver.Execute(context.Background(), adminQuery())
	if err != nil {
		t.Fatalf("unexpected denial: %v", err)
	}
	if len(auth.LicenseModelIDs) != 2 {
		t.Fatalf("expected both license models, got %v", auth.LicenseModelIDs)
	}
}

func TestResolveIgnoresDeletedLicense(t *testing.T) {
	store := memory.NewSeededStore()
	resolver := seededResolver(store, SponsorOverrideTrusted)

	deleted := time.Now().UTC()
	store.AddFeatureDomain(1, "tenant_001", "license_model_003", "/reports", "GET", false)
	store.AddLicense("license_model_003", 1, "tenant_001", "sponsor_001", "active", &deleted)

	query := adminQuery()
	query.Path = "/api/v1/reports"
	if _, err := resolver.Execute(context.Background(), query); !errors.Is(err, domainerrors.ErrDomainAccessDenied) {
		t.Fatalf("soft-deleted license must not grant access, got %v", err)
	}
}

func TestTrustedSponsorOverrideReplacesSponsor(t *testing.T) {
	store := memory.NewSeededStore()
	resolver := seededResolver(store, SponsorOverrideTrusted)

	store.AddFeatureDomain(1, "tenant_001", "license_model_010", "/campaigns/{id}/attendees", "GET", false)
	store.AddLicense("license_model_010", 1, "tenant_001", "sponsor_002", "active", nil)
	store.AddEntitlement(1, "sponsor_002", "tenant_001", 1, "license_model_010", "campaign_042", "active", nil)

	query := adminQuery()
	query.SponsorOverride = "sponsor_002"
	auth, err := resolver.Execute(context.Background(), query)
	if err != nil {
		t.Fatalf("unexpected denial: %v", err)
	}
	if auth.SponsorID != "sponsor_002" {
		t.Fatalf("expected override sponsor, got %q", auth.SponsorID)
	}
	if len(auth.CampaignIDs) != 1 || auth.CampaignIDs[0] != "campaign_042" {
		t.Fatalf("entitlements must follow the effective sponsor: %v", auth.CampaignIDs)
	}
}

func TestRevalidatedSponsorOverrideRequiresMembership(t *testing.T) {
	store := memory.NewSeededStore()
	resolver := seededResolver(store, SponsorOverrideRevalidated)

	query := adminQuery()
	query.SponsorOverride = "sponsor_002"
	if _, err := resolver.Execute(context.Background(), query); !errors.Is(err, domainerrors.ErrSponsorOverrideRejected) {
		t.Fatalf("expected override rejection, got %v", err)
	}

	// With an accepted membership for the override sponsor the request
	// proceeds past the override check.
	store.AddMembership("tenant_001", "sponsor_002", 1, "admin", "accepted")
	store.AddFeatureDomain(1, "tenant_001", "license_model_010", "/campaigns/{id}/attendees", "GET", false)
	store.AddLicense("license_model_010", 1, "tenant_001", "sponsor_002", "active", nil)
	store.AddEntitlement(1, "sponsor_002", "tenant_001", 1, "license_model_010", "campaign_042", "active", nil)

	auth, err := resolver.Execute(context.Background(), query)
	if err != nil {
		t.Fatalf("unexpected denial after membership added: %v", err)
	}
	if auth.SponsorID != "sponsor_002" {
		t.Fatalf("expected override sponsor, got %q", auth.SponsorID)
	}
}

func TestMatchingOverrideSkipsRevalidation(t *testing.T) {
	store := memory.NewSeededStore()
	resolver := seededResolver(store, SponsorOverrideRevalidated)

	query := adminQuery()
	query.SponsorOverride = "sponsor_001"
	if _, err := resolver.Execute(context.Background(), query); err != nil {
		t.Fatalf("override equal to membership sponsor must pass, got %v", err)
	}
}

// failingGateway returns a wrapped infrastructure error from every lookup.
type failingGateway struct {
	err error
}

func (g failingGateway) AcceptedMembership(context.Context, string, string) (ports.MembershipRecord, bool, error) {
	return ports.MembershipRecord{}, false, g.err
}

func (g failingGateway) SponsorMembershipExists(context.Context, string, string, string) (bool, error) {
	return false, g.err
}

func (g failingGateway) LicensedDomainGrants(context.Context, string, string, string, string) ([]ports.DomainGrant, error) {
	return nil, g.err
}

func (g failingGateway) EntitledCampaignIDs(context.Context, int64, string, string) ([]string, error) {
	return nil, g.err
}

func (g failingGateway) ClientScopes(context.Context, int64, string) ([]ports.ClientScope, error) {
	return nil, g.err
}

func TestLookupFailuresAreNotDenials(t *testing.T) {
	storeErr := errors.New("connection refused")
	resolver := ResolveAccessUseCase{Gateway: failingGateway{err: storeErr}}

	_, err := resolver.Execute(context.Background(), adminQuery())
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected the lookup error to pass through, got %v", err)
	}
	denials := []error{
		domainerrors.ErrUnknownMembership,
		domainerrors.ErrDomainAccessDenied,
		domainerrors.ErrNoCampaignsAccessible,
		domainerrors.ErrSponsorOverrideRejected,
	}
	for _, denial := range denials {
		if errors.Is(err, denial) {
			t.Fatalf("lookup failure must not map to denial %v", denial)
		}
	}
}

func TestListClientScopes(t *testing.T) {
	store := memory.NewSeededStore()
	scopes, err := ListClientScopesUseCase{Gateway: store}.Execute(context.Background(), 1, "tenant_001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scopes) != 1 {
		t.Fatalf("expected one scope row, got %d", len(scopes))
	}
	if scopes[0].Division != "division_001" || scopes[0].Family != "vertical_001" || scopes[0].Brand != "brand_001" {
		t.Fatalf("unexpected scope row: %+v", scopes[0])
	}
}
