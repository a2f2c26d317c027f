package application

import (
	"context"
	"log/slog"
	"strings"

	"gatehouse/contexts/campaign-editorial/attendee-service/domain/entities"
	domainerrors "gatehouse/contexts/campaign-editorial/attendee-service/domain/errors"
	"gatehouse/contexts/campaign-editorial/attendee-service/ports"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 100
)

type Service struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

// ListAttendees returns one page of a campaign's attendees plus the total
// count. The campaign must be inside the caller's authorized scope.
func (s Service) ListAttendees(
	ctx context.Context,
	access ports.AccessChecker,
	campaignID string,
	offset int,
	limit int,
) ([]entities.Attendee, int64, error) {
	campaignID, err := s.requireVisibleCampaign(access, campaignID)
	if err != nil {
		return nil, 0, err
	}
	offset, limit = clampPage(offset, limit)

	attendees, err := s.Repo.ListByCampaign(ctx, campaignID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.CountByCampaign(ctx, campaignID)
	if err != nil {
		return nil, 0, err
	}

	resolveLogger(s.Logger).Debug("attendees listed",
		"event", "attendees_listed",
		"module", "campaign-editorial/attendee-service",
		"layer", "application",
		"campaign_id", campaignID,
		"returned", len(attendees),
		"total", total,
	)
	return attendees, total, nil
}

// FindAttendeeByEmail returns the single attendee registered under the
// campaign with the given email.
func (s Service) FindAttendeeByEmail(
	ctx context.Context,
	access ports.AccessChecker,
	campaignID string,
	email string,
) (entities.Attendee, error) {
	campaignID, err := s.requireVisibleCampaign(access, campaignID)
	if err != nil {
		return entities.Attendee{}, err
	}
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return entities.Attendee{}, domainerrors.ErrInvalidEmail
	}

	attendee, found, err := s.Repo.FindByEmail(ctx, campaignID, email)
	if err != nil {
		return entities.Attendee{}, err
	}
	if !found {
		return entities.Attendee{}, domainerrors.ErrAttendeeNotFound
	}
	return attendee, nil
}

// EventSummary aggregates the campaign's attendee count and distinct
// company count.
func (s Service) EventSummary(
	ctx context.Context,
	access ports.AccessChecker,
	campaignID string,
) (entities.EventSummary, error) {
	campaignID, err := s.requireVisibleCampaign(access, campaignID)
	if err != nil {
		return entities.EventSummary{}, err
	}

	attendees, err := s.Repo.CountByCampaign(ctx, campaignID)
	if err != nil {
		return entities.EventSummary{}, err
	}
	companies, err := s.Repo.DistinctCompanyCount(ctx, campaignID)
	if err != nil {
		return entities.EventSummary{}, err
	}
	return entities.EventSummary{
		CampaignID:     campaignID,
		TotalAttendees: attendees,
		TotalCompanies: companies,
	}, nil
}

// The authorization context's campaign set is the authoritative visibility
// scope; a campaign id outside it is denied before any data is touched.
func (s Service) requireVisibleCampaign(access ports.AccessChecker, campaignID string) (string, error) {
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return "", domainerrors.ErrInvalidCampaignID
	}
	if access == nil || !access.CanSeeCampaign(campaignID) {
		resolveLogger(s.Logger).Warn("campaign outside authorized scope",
			"event", "attendee_campaign_not_visible",
			"module", "campaign-editorial/attendee-service",
			"layer", "application",
			"campaign_id", campaignID,
		)
		return "", domainerrors.ErrCampaignNotVisible
	}
	return campaignID, nil
}

func clampPage(offset int, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return offset, limit
}
