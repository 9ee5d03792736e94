package scheduler

import (
	"encoding/json"

	"creekside_backend/internal/leads"

	"github.com/hibiken/asynq"
)

const TaskLeadDeliver = "leads.deliver"

func NewLeadDeliverTask(lead leads.BookingLead) (*asynq.Task, error) {
	data, err := json.Marshal(lead)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadDeliver, data), nil
}

func ParseLeadDeliverPayload(task *asynq.Task) (leads.BookingLead, error) {
	var lead leads.BookingLead
	if err := json.Unmarshal(task.Payload(), &lead); err != nil {
		return leads.BookingLead{}, err
	}
	return lead, nil
}
