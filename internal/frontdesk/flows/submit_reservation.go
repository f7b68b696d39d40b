package flows

import (
	"encoding/base64"

	draftservice "campreserv/internal/drafts/service"
	draftvalidator "campreserv/internal/drafts/validator"
	"campreserv/internal/frontdesk/core"
	"campreserv/internal/pricing"
	"campreserv/internal/receipt"
	"campreserv/pkg/client"
	"campreserv/pkg/config"
	apperrors "campreserv/pkg/errors"
	"campreserv/pkg/model"
)

// SubmitReservation turns a completed draft into a reservation. Steps run
// strictly in order; a failure before reservation creation leaves the draft
// untouched so the operator can fix and resubmit.
type SubmitReservation struct {
	validator *draftvalidator.DraftValidator
	pricing   pricing.Service
	drafts    draftservice.DraftService
	cfg       *config.Config
}

func NewSubmitReservation(
	validator *draftvalidator.DraftValidator,
	pricingService pricing.Service,
	drafts draftservice.DraftService,
	cfg *config.Config,
) *SubmitReservation {
	return &SubmitReservation{
		validator: validator,
		pricing:   pricingService,
		drafts:    drafts,
		cfg:       cfg,
	}
}

func (f *SubmitReservation) Name() string {
	return FlowSubmitReservation
}

func (f *SubmitReservation) Steps() []*core.Step {
	return []*core.Step{
		{Name: "validate-draft", Execute: f.validateDraft},
		{Name: "sync-guest-address", Execute: f.syncGuestAddress},
		{Name: "price-stay", Execute: f.priceStay},
		{Name: "require-override-approval", Execute: f.requireOverrideApproval},
		{Name: "compute-payment", Execute: f.computePayment},
		{Name: "create-reservation", Execute: f.createReservation},
		{Name: "finalize-submission", Execute: f.finalizeSubmission},
	}
}

func (f *SubmitReservation) validateDraft(fctx *core.FlowContext) error {
	result := f.validator.ValidateSubmission(fctx.Draft)
	if result.IsValid {
		return nil
	}
	details := make(map[string]any, len(result.Errors))
	for group, msg := range result.Errors {
		details[group] = msg
	}
	return apperrors.Validation("Draft is not ready for submission", details)
}

// syncGuestAddress writes locally edited address fields back to the guest
// record before the reservation exists. A failed write-back aborts the
// submission; a reservation must never point at a guest whose address the
// operator believes was updated but was not.
func (f *SubmitReservation) syncGuestAddress(fctx *core.FlowContext) error {
	draft := fctx.Draft

	resp, err := f.cfg.Client.GuestClient.GetByID(draft.GuestID)
	if err != nil {
		return apperrors.Unavailable("guests service")
	}
	if !resp.OK() {
		return apperrors.Upstream("guests", client.GetErrorMessage(resp))
	}
	guest, err := f.cfg.Client.GuestClient.DecodeGuest(resp)
	if err != nil {
		return apperrors.Decode("guest", err)
	}
	fctx.Guest = guest

	if draft.GuestAddress.IsEmpty() || draft.GuestAddress == guest.Address {
		return nil
	}

	addr := draft.GuestAddress
	resp, err = f.cfg.Client.GuestClient.Update(draft.GuestID, &model.GuestUpdate{Address: &addr}, fctx.Headers())
	if err != nil {
		return apperrors.Unavailable("guests service")
	}
	if !resp.OK() {
		return apperrors.Upstream("guests", client.GetErrorMessage(resp))
	}
	guest.Address = addr

	return nil
}

func (f *SubmitReservation) priceStay(fctx *core.FlowContext) error {
	draft := fctx.Draft

	est, err := f.pricing.Estimate(fctx.Ctx, draft.CampgroundID, draft.SiteID, draft.ArrivalDate, draft.DepartureDate, draft.SiteLocked)
	if err != nil {
		return err
	}

	fctx.Breakdown = est.Breakdown
	fctx.Nights = est.Nights
	fctx.DepositCents = est.DepositCents
	fctx.Site = est.Site

	// The server-side reprice is authoritative: a default payment amount
	// the operator never touched follows the fresh total.
	draftservice.SyncPaymentAmount(draft, est.Breakdown.TotalCents)
	fctx.TotalCents = pricing.GateTotal(est.Breakdown, draft.PaymentAmountCents)
	fctx.Output[OutputBreakdown] = est.Breakdown

	return nil
}

// requireOverrideApproval is the hard stop: a lock fee or an estimated
// total needs a staff identity allowed to approve overrides. Without one
// the submission fails with OVERRIDE_REQUIRED and nothing downstream runs.
func (f *SubmitReservation) requireOverrideApproval(fctx *core.FlowContext) error {
	var reason string
	switch {
	case fctx.Breakdown.LockFeeCents > 0:
		reason = "site lock fee applies"
	case fctx.Breakdown.IsEstimate:
		reason = "total is an estimated price"
	default:
		return nil
	}

	if fctx.Session == nil || !fctx.Session.CanApproveOverrides {
		return apperrors.OverrideRequired(reason)
	}
	if fctx.OverrideReason == "" {
		fctx.OverrideReason = reason
	}
	return nil
}

func (f *SubmitReservation) computePayment(fctx *core.FlowContext) error {
	draft := fctx.Draft

	// Card payments settle asynchronously through the processor, so the
	// reservation starts pending with nothing paid. Immediate collection
	// confirms at creation time.
	if draft.CollectPayment && draft.PaymentMethod != model.PaymentMethodCard {
		fctx.PaidCents = draft.PaymentAmountCents
		fctx.Status = model.ReservationStatusConfirmed
		return nil
	}
	fctx.PaidCents = 0
	fctx.Status = model.ReservationStatusPending
	return nil
}

func (f *SubmitReservation) createReservation(fctx *core.FlowContext) error {
	draft := fctx.Draft

	var total int64
	if fctx.TotalCents != nil {
		total = *fctx.TotalCents
	}
	balance := total - fctx.PaidCents
	if balance < 0 {
		balance = 0
	}

	var approvedBy string
	if fctx.OverrideReason != "" && fctx.Session != nil {
		approvedBy = fctx.Session.StaffID
	}

	create := &model.ReservationCreate{
		CampgroundID:  draft.CampgroundID,
		GuestID:       draft.GuestID,
		SiteID:        draft.SiteID,
		ArrivalDate:   draft.ArrivalDate,
		DepartureDate: draft.DepartureDate,

		Adults:   draft.Adults,
		Children: draft.Children,
		Pets:     draft.Pets,

		RigType:     draft.RigType,
		RigLengthFt: draft.RigLengthFt,

		Notes:          draft.Notes,
		ReferralSource: draft.ReferralSource,
		StayReason:     draft.StayReason,

		TotalAmountCents:   total,
		PaidAmountCents:    fctx.PaidCents,
		BalanceAmountCents: balance,
		Status:             fctx.Status,
		PaymentMethod:      draft.PaymentMethod,
		PaymentNotes:       draft.PaymentNotes,

		SiteLocked:         draft.SiteLocked,
		OverrideReason:     fctx.OverrideReason,
		OverrideApprovedBy: approvedBy,
	}

	resp, err := f.cfg.Client.ReservationClient.Create(create, fctx.Headers())
	if err != nil {
		return apperrors.Unavailable("reservations service")
	}
	if !resp.OK() {
		// Surfaced verbatim; the draft stays intact for resubmission.
		return apperrors.Upstream("reservations", client.GetErrorMessage(resp))
	}

	reservation, err := f.cfg.Client.ReservationClient.DecodeReservation(resp)
	if err != nil {
		return apperrors.Decode("reservation", err)
	}

	fctx.Reservation = reservation
	fctx.Output[OutputReservation] = reservation

	return nil
}

// finalizeSubmission runs only after the reservation exists. Nothing in
// here may fail the flow in a way that suggests the reservation was not
// created.
func (f *SubmitReservation) finalizeSubmission(fctx *core.FlowContext) error {
	draft := fctx.Draft

	if err := f.drafts.Clear(fctx.Ctx, draft.Key); err != nil {
		f.cfg.Log.Warn("Failed to clear draft after reservation create",
			"key", draft.Key,
			"reservation_id", fctx.Reservation.ID,
			"error", err,
		)
	}

	switch {
	case draft.CollectPayment && draft.PaymentMethod == model.PaymentMethodCard:
		f.createPaymentIntent(fctx)
	case draft.CollectPayment:
		return f.renderReceipt(fctx)
	default:
		fctx.Output[OutputNotice] = NoticeInvoiceSent
	}
	return nil
}

// createPaymentIntent opens a card payment scoped to the reservation
// balance. The reservation is already created, so a processor failure is
// reported as a notice rather than failing the flow.
func (f *SubmitReservation) createPaymentIntent(fctx *core.FlowContext) {
	reservation := fctx.Reservation

	amount := fctx.Draft.PaymentAmountCents
	if amount <= 0 || amount > reservation.BalanceAmountCents {
		amount = reservation.BalanceAmountCents
	}
	if amount <= 0 {
		fctx.Output[OutputNotice] = NoticeInvoiceSent
		return
	}

	create := &model.PaymentIntentCreate{
		ReservationID: reservation.ID,
		AmountCents:   amount,
	}
	resp, err := f.cfg.Client.PaymentClient.CreateIntent(create, fctx.Headers())
	if err == nil && resp.OK() {
		if intent, decodeErr := f.cfg.Client.PaymentClient.DecodeIntent(resp); decodeErr == nil {
			fctx.Output[OutputPaymentIntent] = intent
			return
		}
	}
	f.cfg.Log.Error("Failed to create payment intent",
		"reservation_id", reservation.ID,
		"amount_cents", amount,
		"error", err,
	)
	fctx.Output[OutputNotice] = "payment-intent-failed"
}

// receiptData assembles the guest-facing receipt contents. Names come from
// the fetched guest and site records; the raw draft ids never reach paper.
func (f *SubmitReservation) receiptData(fctx *core.FlowContext) receipt.Data {
	draft := fctx.Draft

	var change int64
	if draft.PaymentMethod == model.PaymentMethodCash {
		change = draft.CashReceivedCents - fctx.PaidCents
		if change < 0 {
			change = 0
		}
	}

	var guestName, collectedBy string
	if fctx.Guest != nil {
		guestName = fctx.Guest.FullName()
	}
	if fctx.Session != nil {
		collectedBy = fctx.Session.Name
	}

	siteName := ""
	if fctx.Site != nil {
		siteName = fctx.Site.Name
	}

	return receipt.Data{
		ReservationID:     fctx.Reservation.ID,
		CampgroundName:    f.cfg.CampgroundName,
		GuestName:         guestName,
		SiteName:          siteName,
		ArrivalDate:       draft.ArrivalDate,
		DepartureDate:     draft.DepartureDate,
		Nights:            fctx.Nights,
		PaymentMethod:     draft.PaymentMethod,
		AmountCents:       fctx.PaidCents,
		CashReceivedCents: draft.CashReceivedCents,
		ChangeDueCents:    change,
		CollectedBy:       collectedBy,
	}
}

func (f *SubmitReservation) renderReceipt(fctx *core.FlowContext) error {
	data := f.receiptData(fctx)

	pdf, filename, err := receipt.Render(data)
	if err != nil {
		return apperrors.Internal("Failed to render receipt", err)
	}

	fctx.Output[OutputReceiptPDF] = base64.StdEncoding.EncodeToString(pdf)
	fctx.Output[OutputReceiptFilename] = filename
	fctx.Output[OutputChangeDueCents] = data.ChangeDueCents

	return nil
}
