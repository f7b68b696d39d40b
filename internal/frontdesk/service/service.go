package service

import (
	"context"

	draftservice "campreserv/internal/drafts/service"
	draftvalidator "campreserv/internal/drafts/validator"
	"campreserv/internal/frontdesk/core"
	"campreserv/internal/frontdesk/flows"
	"campreserv/internal/pricing"
	"campreserv/pkg/config"
	"campreserv/pkg/model"
)

// FlowInput is the per-request state a flow runs against.
type FlowInput struct {
	Draft          *model.BookingDraft
	RequestID      string
	OverrideReason string
}

type FlowService interface {
	Execute(ctx context.Context, flowName string, input FlowInput) (map[string]any, error)
	Flows() []string
}

type flowService struct {
	engine *core.Engine
	cfg    *config.Config
}

func NewFlowService(
	validator *draftvalidator.DraftValidator,
	pricingService pricing.Service,
	drafts draftservice.DraftService,
	cfg *config.Config,
) FlowService {
	engine := core.NewEngine(
		flows.NewSubmitReservation(validator, pricingService, drafts, cfg),
		flows.NewPlaceHold(drafts, cfg),
	)
	return &flowService{engine: engine, cfg: cfg}
}

func (s *flowService) Execute(ctx context.Context, flowName string, input FlowInput) (map[string]any, error) {
	fctx := core.NewFlowContext(ctx, input.Draft)
	fctx.RequestID = input.RequestID
	fctx.OverrideReason = input.OverrideReason

	if err := s.engine.Run(flowName, fctx); err != nil {
		return nil, err
	}
	return fctx.Output, nil
}

func (s *flowService) Flows() []string {
	return s.engine.Flows()
}
