package flows

import (
	draftservice "campreserv/internal/drafts/service"
	"campreserv/internal/frontdesk/core"
	"campreserv/pkg/client"
	"campreserv/pkg/config"
	"campreserv/pkg/dates"
	apperrors "campreserv/pkg/errors"
	"campreserv/pkg/model"
)

// PlaceHold locks the drafted site for a bounded window so it cannot be
// booked out from under the operator while the rest of the draft is being
// completed. Locking marks the draft, which makes the lock fee apply at
// submission.
type PlaceHold struct {
	drafts draftservice.DraftService
	cfg    *config.Config
}

func NewPlaceHold(drafts draftservice.DraftService, cfg *config.Config) *PlaceHold {
	return &PlaceHold{drafts: drafts, cfg: cfg}
}

func (f *PlaceHold) Name() string {
	return FlowPlaceHold
}

func (f *PlaceHold) Steps() []*core.Step {
	return []*core.Step{
		{Name: "validate-hold", Execute: f.validateHold},
		{Name: "place-hold", Execute: f.placeHold},
		{Name: "lock-draft", Execute: f.lockDraft},
	}
}

func (f *PlaceHold) validateHold(fctx *core.FlowContext) error {
	draft := fctx.Draft
	if draft.SiteID == "" {
		return apperrors.InvalidInput("Select a site before placing a hold")
	}
	if !dates.RangeValid(draft.ArrivalDate, draft.DepartureDate) {
		return apperrors.InvalidInput("Hold requires a valid arrival and departure date")
	}
	return nil
}

func (f *PlaceHold) placeHold(fctx *core.FlowContext) error {
	draft := fctx.Draft

	create := &model.HoldCreate{
		CampgroundID:  draft.CampgroundID,
		SiteID:        draft.SiteID,
		ArrivalDate:   draft.ArrivalDate,
		DepartureDate: draft.DepartureDate,
		HoldMinutes:   f.cfg.HoldMinutes,
	}
	resp, err := f.cfg.Client.HoldClient.Create(create, fctx.Headers())
	if err != nil {
		return apperrors.Unavailable("holds service")
	}
	if !resp.OK() {
		return apperrors.Upstream("holds", client.GetErrorMessage(resp))
	}

	hold, err := f.cfg.Client.HoldClient.DecodeHold(resp)
	if err != nil {
		return apperrors.Decode("hold", err)
	}

	fctx.Hold = hold
	fctx.Output[OutputHold] = hold

	return nil
}

func (f *PlaceHold) lockDraft(fctx *core.FlowContext) error {
	fctx.Draft.SiteLocked = true
	if err := f.drafts.SaveNow(fctx.Ctx, fctx.Draft); err != nil {
		f.cfg.Log.Warn("Failed to persist draft after placing hold",
			"key", fctx.Draft.Key,
			"error", err,
		)
	}
	return nil
}
