package httpadapter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gatehouse/contexts/campaign-editorial/attendee-service/application"
	"gatehouse/contexts/campaign-editorial/attendee-service/domain/entities"
	"gatehouse/contexts/campaign-editorial/attendee-service/ports"
	httptransport "gatehouse/contexts/campaign-editorial/attendee-service/transport/http"
)

type Handler struct {
	Service application.Service
	Clock   ports.Clock
	Logger  *slog.Logger
}

func (h Handler) ListAttendeesHandler(
	ctx context.Context,
	access ports.AccessChecker,
	campaignID string,
	offset int,
	limit int,
) (httptransport.AttendeeListResponse, error) {
	attendees, total, err := h.Service.ListAttendees(ctx, access, campaignID, offset, limit)
	if err != nil {
		return httptransport.AttendeeListResponse{}, err
	}

	data := make([]httptransport.AttendeeDTO, 0, len(attendees))
	for _, attendee := range attendees {
		data = append(data, toDTO(attendee))
	}
	return httptransport.AttendeeListResponse{
		Success:   true,
		Message:   fmt.Sprintf("Retrieved %d attendees for campaign %s", len(data), campaignID),
		Data:      data,
		Total:     total,
		Timestamp: h.timestamp(),
	}, nil
}

func (h Handler) FindAttendeeByEmailHandler(
	ctx context.Context,
	access ports.AccessChecker,
	campaignID string,
	email string,
) (httptransport.AttendeeResponse, error) {
	attendee, err := h.Service.FindAttendeeByEmail(ctx, access, campaignID, email)
	if err != nil {
		return httptransport.AttendeeResponse{}, err
	}
	return httptransport.AttendeeResponse{
		Success:   true,
		Message:   fmt.Sprintf("Attendee found for campaign %s", campaignID),
		Data:      toDTO(attendee),
		Timestamp: h.timestamp(),
	}, nil
}

func (h Handler) EventSummaryHandler(
	ctx context.Context,
	access ports.AccessChecker,
	campaignID string,
) (httptransport.EventSummaryResponse, error) {
	summary, err := h.Service.EventSummary(ctx, access, campaignID)
	if err != nil {
		return httptransport.EventSummaryResponse{}, err
	}
	return httptransport.EventSummaryResponse{
		Success: true,
		Message: fmt.Sprintf("Event summary retrieved for campaign %s", campaignID),
		Data: httptransport.EventSummaryDTO{
			CampaignID:     summary.CampaignID,
			TotalAttendees: summary.TotalAttendees,
			TotalCompanies: summary.TotalCompanies,
		},
		Timestamp: h.timestamp(),
	}, nil
}

// ISO-8601 UTC ending in Z, matching the envelope contract.
func (h Handler) timestamp() string {
	now := time.Now()
	if h.Clock != nil {
		now = h.Clock.Now()
	}
	return now.UTC().Format("2006-01-02T15:04:05.999999") + "Z"
}

func toDTO(attendee entities.Attendee) httptransport.AttendeeDTO {
	return httptransport.AttendeeDTO{
		ID:             attendee.ID,
		CampaignID:     attendee.CampaignID,
		Email:          attendee.Email,
		FirstName:      attendee.FirstName,
		LastName:       attendee.LastName,
		CompanyName:    attendee.CompanyName,
		CompanyID:      attendee.CompanyID,
		JobTitle:       attendee.JobTitle,
		Industry:       attendee.Industry,
		CompanyRevenue: attendee.CompanyRevenue,
		CompanySize:    attendee.CompanySize,
		Country:        attendee.Country,
		City:           attendee.City,
		State:          attendee.State,
	}
}
