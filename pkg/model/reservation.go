package model

// Reservation statuses. Card and invoice reservations start pending and are
// advanced to confirmed by a payment-completion event; immediate
// cash/check/folio collection confirms at creation time.
const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
)

// ReservationCreate is the payload sent to the reservations backend. Amounts
// are integer cents.
type ReservationCreate struct {
	CampgroundID  string `json:"campground_id" validate:"required"`
	GuestID       string `json:"guest_id" validate:"required"`
	SiteID        string `json:"site_id" validate:"required"`
	ArrivalDate   string `json:"arrival_date" validate:"required,datetime=2006-01-02"`
	DepartureDate string `json:"departure_date" validate:"required,datetime=2006-01-02"`

	Adults   int `json:"adults" validate:"min=1"`
	Children int `json:"children" validate:"min=0"`
	Pets     int `json:"pets" validate:"min=0"`

	RigType     string `json:"rig_type,omitempty"`
	RigLengthFt int    `json:"rig_length_ft,omitempty"`

	Notes          string `json:"notes,omitempty"`
	ReferralSource string `json:"referral_source,omitempty"`
	StayReason     string `json:"stay_reason,omitempty"`

	TotalAmountCents   int64  `json:"total_amount_cents"`
	PaidAmountCents    int64  `json:"paid_amount_cents"`
	BalanceAmountCents int64  `json:"balance_amount_cents"`
	Status             string `json:"status" validate:"required,oneof=pending confirmed"`
	PaymentMethod      string `json:"payment_method,omitempty"`
	PaymentNotes       string `json:"payment_notes,omitempty"`

	SiteLocked         bool   `json:"site_locked"`
	OverrideReason     string `json:"override_reason,omitempty"`
	OverrideApprovedBy string `json:"override_approved_by,omitempty"`
}

// Reservation is the entity returned by the reservations backend. Not
// locally mutable before creation.
type Reservation struct {
	ID                 string `json:"id"`
	CampgroundID       string `json:"campground_id"`
	GuestID            string `json:"guest_id"`
	SiteID             string `json:"site_id"`
	ArrivalDate        string `json:"arrival_date"`
	DepartureDate      string `json:"departure_date"`
	TotalAmountCents   int64  `json:"total_amount_cents"`
	PaidAmountCents    int64  `json:"paid_amount_cents"`
	BalanceAmountCents int64  `json:"balance_amount_cents"`
	Status             string `json:"status"`
	PaymentMethod      string `json:"payment_method,omitempty"`
}

// ReservationStatusUpdate advances a reservation's status.
type ReservationStatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}
