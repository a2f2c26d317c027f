package memory

import (
	"context"
	"testing"
)

func TestAcceptedMembershipFiltersStatus(t *testing.T) {
	store := NewStore()
	pending := store.AddUser("subject_pending", "Pat", "Pending")
	store.AddMembership("tenant_001", "sponsor_001", pending, "viewer", "pending")

	_, found, err := store.AcceptedMembership(context.Background(), "subject_pending", "tenant_001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("pending membership must not resolve")
	}
}

func TestLicensedDomainGrantsAreSponsorScoped(t *testing.T) {
	store := NewSeededStore()

	grants, err := store.LicensedDomainGrants(context.Background(), "tenant_001", "sponsor_other", "/campaigns/{id}/attendees", "GET")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grants) != 0 {
		t.Fatalf("another sponsor's license must not match: %v", grants)
	}
}

func TestEntitledCampaignIDsAreDistinct(t *testing.T) {
	store := NewSeededStore()
	store.AddEntitlement(1, "sponsor_001", "tenant_001", 1, "license_model_001", "campaign_001", "active", nil)

	campaigns, err := store.EntitledCampaignIDs(context.Background(), 1, "sponsor_001", "tenant_001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(campaigns) != 1 {
		t.Fatalf("duplicate entitlement rows must collapse, got %v", campaigns)
	}
}

func TestClientScopesAreTenantScoped(t *testing.T) {
	store := NewSeededStore()

	scopes, err := store.ClientScopes(context.Background(), 1, "tenant_002")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scopes) != 0 {
		t.Fatalf("scopes must not leak across tenants: %v", scopes)
	}
}
