package leads

import (
	"context"

	"creekside_backend/platform/logger"
)

// DispatchOutcome describes what happened to a lead after checkout: either it
// was delivered (or not) in-request, or it was handed to the queue for the
// worker to deliver. It is never silently dropped.
type DispatchOutcome struct {
	Queued    bool `json:"queued"`
	Delivered bool `json:"delivered"`
	Status    int  `json:"status,omitempty"`
}

// Dispatcher routes a lead toward the external log. A dispatch failure must
// never fail the checkout it rides along with; callers read the outcome and
// move on.
type Dispatcher interface {
	Dispatch(ctx context.Context, lead BookingLead) DispatchOutcome
}

// SyncDispatcher delivers in-request and surfaces the result, for
// deployments that prioritize visibility over checkout latency.
type SyncDispatcher struct {
	rec Recorder
	log *logger.Logger
}

func NewSyncDispatcher(rec Recorder, log *logger.Logger) *SyncDispatcher {
	return &SyncDispatcher{rec: rec, log: log}
}

func (d *SyncDispatcher) Dispatch(ctx context.Context, lead BookingLead) DispatchOutcome {
	result, err := d.rec.Record(ctx, lead)
	if err != nil {
		d.log.Warn("lead dispatch failed", "booking_ref", lead.BookingRef, "error", err)
	}
	return DispatchOutcome{Delivered: result.Succeeded, Status: result.Status}
}

// Enqueuer hands a lead to the delivery queue. Implemented by the scheduler
// client; an interface here keeps this package free of queue dependencies.
type Enqueuer interface {
	EnqueueLeadDelivery(ctx context.Context, lead BookingLead) error
}

// QueueDispatcher enqueues delivery for the worker, for deployments that
// prioritize checkout latency. The worker logs the terminal outcome.
type QueueDispatcher struct {
	enq Enqueuer
	log *logger.Logger
}

func NewQueueDispatcher(enq Enqueuer, log *logger.Logger) *QueueDispatcher {
	return &QueueDispatcher{enq: enq, log: log}
}

func (d *QueueDispatcher) Dispatch(ctx context.Context, lead BookingLead) DispatchOutcome {
	if err := d.enq.EnqueueLeadDelivery(ctx, lead); err != nil {
		d.log.Error("lead enqueue failed", "booking_ref", lead.BookingRef, "error", err)
		return DispatchOutcome{}
	}
	return DispatchOutcome{Queued: true}
}
