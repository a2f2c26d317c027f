package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gatehouse/contexts/campaign-editorial/attendee-service/domain/entities"
)

// Store is an in-memory attendee repository for tests and local wiring.
type Store struct {
	mu        sync.RWMutex
	nextID    int64
	attendees []entities.Attendee
}

func NewStore() *Store {
	return &Store{nextID: 1}
}

// NewSeededStore populates registrations for campaign_001 so local wiring
// shares one world with the seeded authorization fixture.
func NewSeededStore() *Store {
	s := NewStore()
	acme := int64(10)
	globex := int64(11)
	s.AddAttendee(entities.Attendee{
		CampaignID:  "campaign_001",
		Email:       "maria.keller@acme.example",
		FirstName:   "Maria",
		LastName:    "Keller",
		CompanyName: "Acme Corp",
		CompanyID:   &acme,
		JobTitle:    "Marketing Lead",
		Country:     "DE",
		City:        "Berlin",
	})
	s.AddAttendee(entities.Attendee{
		CampaignID:  "campaign_001",
		Email:       "tom.ortiz@acme.example",
		FirstName:   "Tom",
		LastName:    "Ortiz",
		CompanyName: "Acme Corp",
		CompanyID:   &acme,
		JobTitle:    "Sales Engineer",
		Country:     "ES",
		City:        "Madrid",
	})
	s.AddAttendee(entities.Attendee{
		CampaignID:  "campaign_001",
		Email:       "li.wen@globex.example",
		FirstName:   "Li",
		LastName:    "Wen",
		CompanyName: "Globex",
		CompanyID:   &globex,
		JobTitle:    "Product Manager",
		Country:     "SG",
	})
	return s
}

// AddAttendee assigns the next id and stores the row.
func (s *Store) AddAttendee(attendee entities.Attendee) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	attendee.ID = s.nextID
	s.nextID++
	s.attendees = append(s.attendees, attendee)
	return attendee.ID
}

func (s *Store) ListByCampaign(_ context.Context, campaignID string, offset int, limit int) ([]entities.Attendee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []entities.Attendee
	for _, a := range s.attendees {
		if a.CampaignID == campaignID {
			matched = append(matched, a)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return append([]entities.Attendee(nil), matched...), nil
}

func (s *Store) CountByCampaign(_ context.Context, campaignID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, a := range s.attendees {
		if a.CampaignID == campaignID {
			count++
		}
	}
	return count, nil
}

func (s *Store) FindByEmail(_ context.Context, campaignID string, email string) (entities.Attendee, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.attendees {
		if a.CampaignID == campaignID && strings.EqualFold(a.Email, email) {
			return a, true, nil
		}
	}
	return entities.Attendee{}, false, nil
}

func (s *Store) DistinctCompanyCount(_ context.Context, campaignID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[int64]bool)
	for _, a := range s.attendees {
		if a.CampaignID != campaignID || a.CompanyID == nil {
			continue
		}
		seen[*a.CompanyID] = true
	}
	return int64(len(seen)), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
