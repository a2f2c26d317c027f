package entities

import "time"

// AuthorizationContext is the immutable result of a successful resolution.
// Its campaign and license model id sets are the authoritative visibility
// scope for the rest of the request; it must not outlive the request.
type AuthorizationContext struct {
	UserID          int64
	SubjectID       string
	TenantID        string
	SponsorID       string
	AccessLevel     string
	FirstName       string
	LastName        string
	CampaignIDs     []string
	LicenseModelIDs []string
	ResolvedAt      time.Time
}

// CanSeeCampaign reports whether a campaign id is inside the resolved
// visibility scope.
func (a AuthorizationContext) CanSeeCampaign(campaignID string) bool {
	for _, id := range a.CampaignIDs {
		if id == campaignID {
			return true
		}
	}
	return false
}
