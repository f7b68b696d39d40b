package validator

import (
	"strings"
	"testing"

	apperrors "campreserv/pkg/errors"
	"campreserv/pkg/logger"
	"campreserv/pkg/model"
)

func completeDraft() *model.BookingDraft {
	return &model.BookingDraft{
		Key:           "fd-1",
		CampgroundID:  "cg-1",
		GuestID:       "g-1",
		SiteID:        "s-1",
		ArrivalDate:   "2025-06-01",
		DepartureDate: "2025-06-03",
		Adults:        2,
	}
}

func TestValidateSubmissionComplete(t *testing.T) {
	v := NewDraftValidator(logger.Discard())

	result := v.ValidateSubmission(completeDraft())
	if !result.IsValid {
		t.Fatalf("complete draft should pass, got errors: %v", result.Errors)
	}
}

func TestValidateSubmissionGroups(t *testing.T) {
	v := NewDraftValidator(logger.Discard())

	tests := []struct {
		name      string
		mutate    func(*model.BookingDraft)
		wantGroup string
	}{
		{"missing guest", func(d *model.BookingDraft) { d.GuestID = "" }, GroupGuest},
		{"no adults", func(d *model.BookingDraft) { d.Adults = 0 }, GroupGuest},
		{"missing dates", func(d *model.BookingDraft) { d.ArrivalDate, d.DepartureDate = "", "" }, GroupDates},
		{"inverted dates", func(d *model.BookingDraft) { d.DepartureDate = "2025-05-30" }, GroupDates},
		{"missing site", func(d *model.BookingDraft) { d.SiteID = "" }, GroupSite},
		{"zero payment amount", func(d *model.BookingDraft) {
			d.CollectPayment = true
			d.PaymentMethod = model.PaymentMethodCash
		}, GroupPayment},
		{"missing payment method", func(d *model.BookingDraft) {
			d.CollectPayment = true
			d.PaymentAmountCents = 10000
		}, GroupPayment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := completeDraft()
			tt.mutate(draft)

			result := v.ValidateSubmission(draft)
			if result.IsValid {
				t.Fatalf("expected %s group error", tt.wantGroup)
			}
			if _, ok := result.Errors[tt.wantGroup]; !ok {
				t.Errorf("errors = %v, want entry for group %q", result.Errors, tt.wantGroup)
			}
		})
	}
}

func TestValidateSubmissionCashShortfall(t *testing.T) {
	v := NewDraftValidator(logger.Discard())

	draft := completeDraft()
	draft.CollectPayment = true
	draft.PaymentMethod = model.PaymentMethodCash
	draft.PaymentAmountCents = 12000
	draft.CashReceivedCents = 10000

	result := v.ValidateSubmission(draft)
	if result.IsValid {
		t.Fatalf("cash shortfall should fail the payment group")
	}
	msg := result.Errors[GroupPayment]
	if !strings.Contains(msg, "10000") || !strings.Contains(msg, "12000") {
		t.Errorf("shortfall message should carry both amounts, got %q", msg)
	}

	// Exact cash is fine.
	draft.CashReceivedCents = 12000
	if result := v.ValidateSubmission(draft); !result.IsValid {
		t.Errorf("exact cash should pass, got %v", result.Errors)
	}
}

func TestValidateSubmissionPaymentSkippedWhenNotCollecting(t *testing.T) {
	v := NewDraftValidator(logger.Discard())

	draft := completeDraft()
	draft.CollectPayment = false
	draft.PaymentAmountCents = 0

	if result := v.ValidateSubmission(draft); !result.IsValid {
		t.Errorf("payment checks should not run when not collecting, got %v", result.Errors)
	}
}

func TestValidateSubmissionReportsAllGroups(t *testing.T) {
	v := NewDraftValidator(logger.Discard())

	result := v.ValidateSubmission(&model.BookingDraft{Key: "fd-1", CampgroundID: "cg-1"})
	if result.IsValid {
		t.Fatalf("empty draft should fail")
	}
	for _, group := range []string{GroupGuest, GroupDates, GroupSite} {
		if _, ok := result.Errors[group]; !ok {
			t.Errorf("missing error for group %q: %v", group, result.Errors)
		}
	}
}

func TestValidateFields(t *testing.T) {
	v := NewDraftValidator(logger.Discard())

	draft := completeDraft()
	draft.ArrivalDate = "06/01/2025"
	draft.PaymentMethod = "barter"

	err := v.ValidateFields(draft)
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}

	appErr := apperrors.AsAppError(err)
	if _, ok := appErr.Details["ArrivalDate"]; !ok {
		t.Errorf("details should flag ArrivalDate: %v", appErr.Details)
	}
	if _, ok := appErr.Details["PaymentMethod"]; !ok {
		t.Errorf("details should flag PaymentMethod: %v", appErr.Details)
	}

	if err := v.ValidateFields(completeDraft()); err != nil {
		t.Errorf("valid draft should pass field validation, got %v", err)
	}
}
