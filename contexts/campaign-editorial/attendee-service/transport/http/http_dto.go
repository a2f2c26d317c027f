package http

// AttendeeDTO is the wire shape of one registration row. Optional fields
// marshal as null when absent, matching the historical payloads.
type AttendeeDTO struct {
	ID             int64    `json:"id"`
	CampaignID     string   `json:"campaign_id"`
	Email          string   `json:"email"`
	FirstName      string   `json:"first_name,omitempty"`
	LastName       string   `json:"last_name,omitempty"`
	CompanyName    string   `json:"company_name,omitempty"`
	CompanyID      *int64   `json:"company_id"`
	JobTitle       string   `json:"job_title,omitempty"`
	Industry       string   `json:"industry,omitempty"`
	CompanyRevenue *float64 `json:"company_revenue"`
	CompanySize    *int     `json:"company_size"`
	Country        string   `json:"country,omitempty"`
	City           string   `json:"city,omitempty"`
	State          string   `json:"state,omitempty"`
}

type EventSummaryDTO struct {
	CampaignID     string `json:"campaign_id"`
	TotalAttendees int64  `json:"total_attendees"`
	TotalCompanies int64  `json:"total_companies"`
}

// AttendeeListResponse is the success envelope for paginated lists.
type AttendeeListResponse struct {
	Success   bool          `json:"success"`
	Message   string        `json:"message"`
	Data      []AttendeeDTO `json:"data"`
	Total     int64         `json:"total"`
	Timestamp string        `json:"timestamp"`
}

// AttendeeResponse is the single-item success envelope.
type AttendeeResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      AttendeeDTO `json:"data"`
	Timestamp string      `json:"timestamp"`
}

type EventSummaryResponse struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      EventSummaryDTO `json:"data"`
	Timestamp string          `json:"timestamp"`
}
