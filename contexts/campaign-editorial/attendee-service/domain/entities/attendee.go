package entities

// Attendee is one registration row for a campaign. Optional profile fields
// are pointers so absent values survive round trips unchanged.
type Attendee struct {
	ID             int64
	CampaignID     string
	Email          string
	FirstName      string
	LastName       string
	CompanyName    string
	CompanyID      *int64
	JobTitle       string
	Industry       string
	CompanyRevenue *float64
	CompanySize    *int
	Country        string
	City           string
	State          string
}

// EventSummary aggregates a campaign's registrations: the attendee count
// and the number of distinct companies they represent.
type EventSummary struct {
	CampaignID     string
	TotalAttendees int64
	TotalCompanies int64
}
