package memory

import (
	"context"
	"sync"
	"time"

	"gatehouse/contexts/identity-access/access-resolution/ports"
)

// Store is an in-memory Data Access Gateway for tests and local wiring. It
// mirrors the persisted row shapes closely enough that the join semantics
// match the postgres adapter.
type Store struct {
	mu sync.RWMutex

	nextUserID     int64
	users          map[int64]userRow
	memberships    []membershipRow
	featureDomains []featureDomainRow
	licenses       []licenseRow
	entitlements   []entitlementRow
	clientScopes   []clientScopeRow
}

type userRow struct {
	ID        int64
	SubjectID string
	FirstName string
	LastName  string
}

type membershipRow struct {
	TenantID    string
	SponsorID   string
	UserID      int64
	AccessLevel string
	Status      string
}

type featureDomainRow struct {
	ApplicationID  int64
	TenantID       string
	LicenseModelID string
	Domain         string
	Method         string
	Impersonation  bool
}

type licenseRow struct {
	LicenseModelID string
	ApplicationID  int64
	TenantID       string
	SponsorID      string
	Status         string
	DeletedOn      *time.Time
}

type entitlementRow struct {
	UserID         int64
	SponsorID      string
	TenantID       string
	ApplicationID  int64
	LicenseModelID string
	CampaignID     string
	Status         string
	DeletedOn      *time.Time
}

type clientScopeRow struct {
	UserID    int64
	TenantID  string
	Division  string
	Family    string
	Brand     string
	DeletedOn *time.Time
}

func NewStore() *Store {
	return &Store{
		nextUserID: 1,
		users:      make(map[int64]userRow),
	}
}

// NewSeededStore builds a store populated with the canonical local fixture:
// an accepted admin membership in tenant_001/sponsor_001, an active Premium
// license covering /campaigns/{id}/attendees GET, and one active
// entitlement to campaign_001.
func NewSeededStore() *Store {
	s := NewStore()

	admin := s.AddUser("user_subject_001", "John", "Admin")
	viewer := s.AddUser("user_subject_002", "Jane", "Viewer")

	s.AddMembership("tenant_001", "sponsor_001", admin, "admin", "accepted")
	s.AddMembership("tenant_001", "sponsor_001", viewer, "viewer", "accepted")

	const campaignsApp = int64(1)
	s.AddFeatureDomain(campaignsApp, "tenant_001", "license_model_001", "/campaigns", "GET", true)
	s.AddFeatureDomain(campaignsApp, "tenant_001", "license_model_001", "/campaigns/{id}/attendees", "GET", true)
	s.AddFeatureDomain(campaignsApp, "tenant_001", "license_model_001", "/campaigns/{id}/attendees/search", "GET", true)
	s.AddFeatureDomain(campaignsApp, "tenant_001", "license_model_001", "/campaigns/{id}/event-summary", "GET", true)
	s.AddLicense("license_model_001", campaignsApp, "tenant_001", "sponsor_001", "active", nil)

	s.AddEntitlement(admin, "sponsor_001", "tenant_001", campaignsApp, "license_model_001", "campaign_001", "active", nil)
	s.AddClientScope(admin, "tenant_001", "division_001", "vertical_001", "brand_001")

	return s
}

// AddUser registers a user row and returns its internal id.
func (s *Store) AddUser(subjectID string, firstName string, lastName string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextUserID
	s.nextUserID++
	s.users[id] = userRow{
		ID:        id,
		SubjectID: subjectID,
		FirstName: firstName,
		LastName:  lastName,
	}
	return id
}

func (s *Store) AddMembership(tenantID string, sponsorID string, userID int64, accessLevel string, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memberships = append(s.memberships, membershipRow{
		TenantID:    tenantID,
		SponsorID:   sponsorID,
		UserID:      userID,
		AccessLevel: accessLevel,
		Status:      status,
	})
}

func (s *Store) AddFeatureDomain(applicationID int64, tenantID string, licenseModelID string, domain string, method string, impersonation bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.featureDomains = append(s.featureDomains, featureDomainRow{
		ApplicationID:  applicationID,
		TenantID:       tenantID,
		LicenseModelID: licenseModelID,
		Domain:         domain,
		Method:         method,
		Impersonation:  impersonation,
	})
}

func (s *Store) AddLicense(licenseModelID string, applicationID int64, tenantID string, sponsorID string, status string, deletedOn *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.licenses = append(s.licenses, licenseRow{
		LicenseModelID: licenseModelID,
		ApplicationID:  applicationID,
		TenantID:       tenantID,
		SponsorID:      sponsorID,
		Status:         status,
		DeletedOn:      deletedOn,
	})
}

func (s *Store) AddEntitlement(userID int64, sponsorID string, tenantID string, applicationID int64, licenseModelID string, campaignID string, status string, deletedOn *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entitlements = append(s.entitlements, entitlementRow{
		UserID:         userID,
		SponsorID:      sponsorID,
		TenantID:       tenantID,
		ApplicationID:  applicationID,
		LicenseModelID: licenseModelID,
		CampaignID:     campaignID,
		Status:         status,
		DeletedOn:      deletedOn,
	})
}

func (s *Store) AddClientScope(userID int64, tenantID string, division string, family string, brand string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clientScopes = append(s.clientScopes, clientScopeRow{
		UserID:   userID,
		TenantID: tenantID,
		Division: division,
		Family:   family,
		Brand:    brand,
	})
}

func (s *Store) AcceptedMembership(_ context.Context, subjectID string, tenantID string) (ports.MembershipRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.memberships {
		if m.Status != "accepted" || m.TenantID != tenantID {
			continue
		}
		user, ok := s.users[m.UserID]
		if !ok || user.SubjectID != subjectID {
			continue
		}
		return ports.MembershipRecord{
			UserID:      user.ID,
			SponsorID:   m.SponsorID,
			AccessLevel: m.AccessLevel,
			FirstName:   user.FirstName,
			LastName:    user.LastName,
		}, true, nil
	}
	return ports.MembershipRecord{}, false, nil
}

func (s *Store) SponsorMembershipExists(_ context.Context, subjectID string, tenantID string, sponsorID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.memberships {
		if m.Status != "accepted" || m.TenantID != tenantID || m.SponsorID != sponsorID {
			continue
		}
		if user, ok := s.users[m.UserID]; ok && user.SubjectID == subjectID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) LicensedDomainGrants(_ context.Context, tenantID string, sponsorID string, domain string, method string) ([]ports.DomainGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var grants []ports.DomainGrant
	for _, fd := range s.featureDomains {
		if fd.TenantID != tenantID || fd.Domain != domain || fd.Method != method {
			continue
		}
		for _, lic := range s.licenses {
			if lic.LicenseModelID != fd.LicenseModelID ||
				lic.ApplicationID != fd.ApplicationID ||
				lic.TenantID != fd.TenantID {
				continue
			}
			if lic.SponsorID != sponsorID || lic.Status != "active" || lic.DeletedOn != nil {
				continue
			}
			grants = append(grants, ports.DomainGrant{
				Domain:         fd.Domain,
				LicenseModelID: lic.LicenseModelID,
			})
		}
	}
	return grants, nil
}

func (s *Store) EntitledCampaignIDs(_ context.Context, userID int64, sponsorID string, tenantID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	var campaigns []string
	for _, e := range s.entitlements {
		if e.UserID != userID || e.SponsorID != sponsorID || e.TenantID != tenantID {
			continue
		}
		if e.Status != "active" || e.DeletedOn != nil {
			continue
		}
		if !seen[e.CampaignID] {
			seen[e.CampaignID] = true
			campaigns = append(campaigns, e.CampaignID)
		}
	}
	return campaigns, nil
}

func (s *Store) ClientScopes(_ context.Context, userID int64, tenantID string) ([]ports.ClientScope, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var scopes []ports.ClientScope
	for _, c := range s.clientScopes {
		if c.UserID != userID || c.TenantID != tenantID || c.DeletedOn != nil {
			continue
		}
		scopes = append(scopes, ports.ClientScope{
			Division: c.Division,
			Family:   c.Family,
			Brand:    c.Brand,
		})
	}
	return scopes, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
