package core

import (
	"context"

	"campreserv/pkg/client"
	"campreserv/pkg/model"
	"campreserv/pkg/session"
)

// FlowContext carries one submission attempt through a flow. Steps read the
// state earlier steps produced and write the state later steps need; the
// Output map is what the handler returns to the caller.
type FlowContext struct {
	Ctx       context.Context
	RequestID string

	Draft          *model.BookingDraft
	Session        *session.Session
	OverrideReason string

	// Populated by steps as the flow advances.
	Guest        *model.Guest
	Site         *model.Site
	Breakdown    model.PriceBreakdown
	Nights       int
	DepositCents int64
	TotalCents   *int64
	PaidCents    int64
	Status       string
	Reservation  *model.Reservation
	Hold         *model.Hold

	Output map[string]any
}

func NewFlowContext(ctx context.Context, draft *model.BookingDraft) *FlowContext {
	return &FlowContext{
		Ctx:     ctx,
		Draft:   draft,
		Session: session.FromContext(ctx),
		Output:  map[string]any{},
	}
}

// Headers returns the headers every mutating backend call made on behalf of
// this flow must carry, so the whole submission correlates under one id.
func (f *FlowContext) Headers() map[string]string {
	if f.RequestID == "" {
		return nil
	}
	return map[string]string{client.RequestIDHeader: f.RequestID}
}
