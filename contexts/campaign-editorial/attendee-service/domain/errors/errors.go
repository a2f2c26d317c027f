package errors

import "errors"

var (
	ErrInvalidCampaignID  = errors.New("campaign id cannot be empty")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrAttendeeNotFound   = errors.New("attendee not found for campaign")
	ErrCampaignNotVisible = errors.New("campaign outside authorized scope")
)
