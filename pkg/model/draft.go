package model

import (
	"time"
)

// DraftSchemaVersion is stamped on every persisted draft so the shape can be
// migrated later without guessing what a stored document contains.
const DraftSchemaVersion = 1

// Payment methods accepted at the front desk. Card payments settle through
// the payment processor; the rest are collected immediately.
const (
	PaymentMethodCard  = "card"
	PaymentMethodCash  = "cash"
	PaymentMethodCheck = "check"
	PaymentMethodFolio = "folio"
)

// Rig types a guest can arrive with. The RV sub-types all resolve to the
// same site compatibility set.
const (
	RigTypeMotorhome  = "motorhome"
	RigTypeTravelTrlr = "travel-trailer"
	RigTypeFifthWheel = "fifth-wheel"
	RigTypeCamperVan  = "camper-van"
	RigTypeTent       = "tent"
	RigTypeCabin      = "cabin"
	RigTypeGroup      = "group"
)

// Address is the guest mailing address staged on the draft. It is written
// back to the guest record at submission time only if it changed.
type Address struct {
	Line1      string `json:"line1,omitempty" bson:"line1,omitempty" validate:"omitempty,max=200"`
	City       string `json:"city,omitempty" bson:"city,omitempty" validate:"omitempty,max=100"`
	State      string `json:"state,omitempty" bson:"state,omitempty" validate:"omitempty,max=100"`
	PostalCode string `json:"postal_code,omitempty" bson:"postal_code,omitempty" validate:"omitempty,max=20"`
}

func (a Address) IsEmpty() bool {
	return a.Line1 == "" && a.City == "" && a.State == "" && a.PostalCode == ""
}

// BookingDraft is the single mutable record edited by the booking flow. It
// is owned by one front-desk session, persisted on a debounce while being
// edited, and cleared on successful reservation creation or explicit
// discard. Dates are calendar dates in YYYY-MM-DD form.
type BookingDraft struct {
	SchemaVersion int    `json:"schema_version" bson:"schema_version"`
	Key           string `json:"key,omitempty" bson:"_id,omitempty"`
	CampgroundID  string `json:"campground_id" bson:"campground_id" validate:"required"`

	GuestID       string `json:"guest_id,omitempty" bson:"guest_id,omitempty"`
	ArrivalDate   string `json:"arrival_date,omitempty" bson:"arrival_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DepartureDate string `json:"departure_date,omitempty" bson:"departure_date,omitempty" validate:"omitempty,datetime=2006-01-02"`

	Adults   int `json:"adults" bson:"adults" validate:"min=0"`
	Children int `json:"children" bson:"children" validate:"min=0"`
	Pets     int `json:"pets" bson:"pets" validate:"min=0"`

	RigType     string `json:"rig_type,omitempty" bson:"rig_type,omitempty"`
	RigLengthFt int    `json:"rig_length_ft,omitempty" bson:"rig_length_ft,omitempty" validate:"min=0,max=200"`

	SiteID      string `json:"site_id,omitempty" bson:"site_id,omitempty"`
	SiteClassID string `json:"site_class_id,omitempty" bson:"site_class_id,omitempty"`
	SiteLocked  bool   `json:"site_locked" bson:"site_locked"`

	Notes          string `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=2000"`
	ReferralSource string `json:"referral_source,omitempty" bson:"referral_source,omitempty" validate:"omitempty,max=100"`
	StayReason     string `json:"stay_reason,omitempty" bson:"stay_reason,omitempty" validate:"omitempty,max=100"`

	CollectPayment     bool   `json:"collect_payment" bson:"collect_payment"`
	PaymentMethod      string `json:"payment_method,omitempty" bson:"payment_method,omitempty" validate:"omitempty,oneof=card cash check folio"`
	PaymentAmountCents int64  `json:"payment_amount_cents,omitempty" bson:"payment_amount_cents,omitempty" validate:"min=0"`
	CashReceivedCents  int64  `json:"cash_received_cents,omitempty" bson:"cash_received_cents,omitempty" validate:"min=0"`
	PaymentNotes       string `json:"payment_notes,omitempty" bson:"payment_notes,omitempty" validate:"omitempty,max=500"`

	GuestAddress Address `json:"guest_address" bson:"guest_address"`

	// SyncedAmountCents remembers the last total that was auto-filled into
	// PaymentAmountCents, so a value the operator edited away from the
	// synced default is never clobbered.
	SyncedAmountCents int64 `json:"synced_amount_cents,omitempty" bson:"synced_amount_cents,omitempty"`

	// Transient UI filter state, persisted alongside the draft so a
	// restored session picks up where it left off.
	GuestSearch         string `json:"guest_search,omitempty" bson:"guest_search,omitempty"`
	FilterAvailableOnly bool   `json:"filter_available_only" bson:"filter_available_only"`
	FilterSiteType      string `json:"filter_site_type,omitempty" bson:"filter_site_type,omitempty"`
	FilterSiteClassID   string `json:"filter_site_class_id,omitempty" bson:"filter_site_class_id,omitempty"`

	UpdatedAt time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// HasMeaningfulInput reports whether the draft carries anything worth
// persisting or prompting about. Empty drafts are never saved.
func (d *BookingDraft) HasMeaningfulInput() bool {
	return d.GuestID != "" ||
		d.SiteID != "" ||
		d.ArrivalDate != "" ||
		d.Notes != "" ||
		d.GuestSearch != ""
}

// IsPristine reports whether the in-memory draft is still untouched enough
// for a saved draft to be offered for restore: no guest and no site chosen.
func (d *BookingDraft) IsPristine() bool {
	return d.GuestID == "" && d.SiteID == ""
}
