package model

import "time"

const (
	PaymentIntentStatusRequiresPayment = "requires_payment"
	PaymentIntentStatusCompleted       = "completed"
	PaymentIntentStatusAbandoned       = "abandoned"
)

// PaymentIntent tracks a card payment initiated for a reservation. The
// payment processor reports its terminal state back over the event stream.
type PaymentIntent struct {
	ID            string    `json:"id"`
	ReservationID string    `json:"reservation_id"`
	AmountCents   int64     `json:"amount_cents"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// PaymentIntentCreate opens an intent for the outstanding balance of a
// reservation. The amount may not exceed that balance.
type PaymentIntentCreate struct {
	ReservationID string `json:"reservation_id" validate:"required"`
	AmountCents   int64  `json:"amount_cents" validate:"required,min=1"`
}

// PaymentEvent is the processor's notification that an intent reached a
// terminal state.
type PaymentEvent struct {
	IntentID      string `json:"intent_id"`
	ReservationID string `json:"reservation_id"`
	AmountCents   int64  `json:"amount_cents"`
	Status        string `json:"status"`
}
