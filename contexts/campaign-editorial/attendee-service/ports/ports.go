package ports

import (
	"context"
	"time"

	"gatehouse/contexts/campaign-editorial/attendee-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

// AccessChecker answers whether the authenticated caller may see a
// campaign. The resolved authorization context satisfies it; handlers pass
// the request-scoped value through and never construct their own.
type AccessChecker interface {
	CanSeeCampaign(campaignID string) bool
}

// Repository is the read-only attendee store. Each method is one query;
// implementations must honor context cancellation.
type Repository interface {
	// ListByCampaign returns attendees for the campaign ordered by id,
	// windowed by offset/limit.
	ListByCampaign(ctx context.Context, campaignID string, offset int, limit int) ([]entities.Attendee, error)

	// CountByCampaign returns the total attendee count for the campaign.
	CountByCampaign(ctx context.Context, campaignID string) (int64, error)

	// FindByEmail returns the attendee registered under (campaign, email).
	// found=false is not an error.
	FindByEmail(ctx context.Context, campaignID string, email string) (entities.Attendee, bool, error)

	// DistinctCompanyCount counts distinct non-null company ids among the
	// campaign's attendees.
	DistinctCompanyCount(ctx context.Context, campaignID string) (int64, error)
}
