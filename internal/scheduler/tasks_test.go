package scheduler

import (
	"testing"

	"github.com/hibiken/asynq"

	"creekside_backend/internal/leads"
)

func TestLeadDeliverTask_CarriesLead(t *testing.T) {
	lead := leads.BookingLead{
		BookingRef:        "CTE-1767225600000-a1b2c3",
		EventType:         leads.EventCheckoutClicked,
		GuestEmail:        "guest@example.com",
		Total:             1059.30,
		SquareCheckoutURL: "https://square.link/u/abc123",
	}

	task, err := NewLeadDeliverTask(lead)
	if err != nil {
		t.Fatalf("NewLeadDeliverTask: %v", err)
	}
	if task.Type() != TaskLeadDeliver {
		t.Errorf("task type = %q", task.Type())
	}

	parsed, err := ParseLeadDeliverPayload(task)
	if err != nil {
		t.Fatalf("ParseLeadDeliverPayload: %v", err)
	}
	if parsed.BookingRef != lead.BookingRef || parsed.SquareCheckoutURL != lead.SquareCheckoutURL {
		t.Errorf("parsed lead %+v does not match original", parsed)
	}
}

func TestParseLeadDeliverPayload_RejectsGarbage(t *testing.T) {
	task := asynq.NewTask(TaskLeadDeliver, []byte("not json"))
	if _, err := ParseLeadDeliverPayload(task); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
