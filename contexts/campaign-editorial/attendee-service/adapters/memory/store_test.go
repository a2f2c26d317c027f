package memory

import (
	"context"
	"testing"

	"gatehouse/contexts/campaign-editorial/attendee-service/domain/entities"
)

func TestListByCampaignWindowsAndOrders(t *testing.T) {
	store := NewStore()
	for _, email := range []string{"a@x.test", "b@x.test", "c@x.test"} {
		store.AddAttendee(entities.Attendee{CampaignID: "campaign_a", Email: email})
	}
	store.AddAttendee(entities.Attendee{CampaignID: "campaign_b", Email: "other@x.test"})

	page, err := store.ListByCampaign(context.Background(), "campaign_a", 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != 2 || page[0].Email != "b@x.test" || page[1].Email != "c@x.test" {
		t.Fatalf("unexpected page: %+v", page)
	}

	empty, err := store.ListByCampaign(context.Background(), "campaign_a", 10, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("offset beyond range must be empty, got %+v", empty)
	}
}

func TestFindByEmailIsCaseInsensitive(t *testing.T) {
	store := NewSeededStore()

	attendee, found, err := store.FindByEmail(context.Background(), "campaign_001", "MARIA.KELLER@ACME.EXAMPLE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected a match regardless of case")
	}
	if attendee.FirstName != "Maria" {
		t.Fatalf("unexpected attendee: %+v", attendee)
	}

	_, found, err = store.FindByEmail(context.Background(), "campaign_other", "maria.keller@acme.example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("email lookup must be campaign-scoped")
	}
}

func TestDistinctCompanyCountSkipsMissingCompanyIDs(t *testing.T) {
	store := NewSeededStore()
	store.AddAttendee(entities.Attendee{CampaignID: "campaign_001", Email: "solo@x.test"})

	count, err := store.DistinctCompanyCount(context.Background(), "campaign_001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Fatalf("rows without a company id must not count, got %d", count)
	}
}
