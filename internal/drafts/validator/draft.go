package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"campreserv/pkg/dates"
	apperrors "campreserv/pkg/errors"
	"campreserv/pkg/logger"
	"campreserv/pkg/model"
)

// Field groups reported by submission validation. Each group maps to one
// section of the booking form.
const (
	GroupGuest   = "guest"
	GroupDates   = "dates"
	GroupSite    = "site"
	GroupPayment = "payment"
)

// Result is the outcome of submission validation: one message per failing
// field group. All groups are evaluated independently; none short-circuits
// another.
type Result struct {
	Errors  map[string]string `json:"errors"`
	IsValid bool              `json:"is_valid"`
}

type DraftValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewDraftValidator(log *logger.Logger) *DraftValidator {
	return &DraftValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// ValidateFields checks the draft's struct constraints (formats, ranges,
// enums). These guard every save, not just submission.
func (v *DraftValidator) ValidateFields(draft *model.BookingDraft) error {
	if err := v.validate.Struct(draft); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			details := make(map[string]any, len(validationErrs))
			for _, fe := range validationErrs {
				details[fe.Field()] = translate(fe)
			}
			return apperrors.Validation("Draft has invalid fields", details)
		}
		return err
	}
	return nil
}

// ValidateSubmission runs the four field-group checks that gate
// submission.
func (v *DraftValidator) ValidateSubmission(draft *model.BookingDraft) Result {
	errs := make(map[string]string)

	if draft.GuestID == "" {
		errs[GroupGuest] = "Select or create a guest"
	} else if draft.Adults < 1 {
		errs[GroupGuest] = "At least one adult is required"
	}

	if draft.ArrivalDate == "" || draft.DepartureDate == "" {
		errs[GroupDates] = "Arrival and departure dates are required"
	} else if !dates.RangeValid(draft.ArrivalDate, draft.DepartureDate) {
		errs[GroupDates] = "Departure date must be after arrival date"
	}

	if draft.SiteID == "" {
		errs[GroupSite] = "Select a site"
	}

	if draft.CollectPayment {
		switch {
		case draft.PaymentAmountCents <= 0:
			errs[GroupPayment] = "Payment amount must be a positive number"
		case draft.PaymentMethod == "":
			errs[GroupPayment] = "Select a payment method"
		case draft.PaymentMethod == model.PaymentMethodCash && draft.CashReceivedCents < draft.PaymentAmountCents:
			errs[GroupPayment] = fmt.Sprintf(
				"Cash received (%d) is less than the payment amount (%d)",
				draft.CashReceivedCents, draft.PaymentAmountCents,
			)
		}
	}

	return Result{
		Errors:  errs,
		IsValid: len(errs) == 0,
	}
}

func translate(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD form", fe.Field())
	}
	return fe.Error()
}
