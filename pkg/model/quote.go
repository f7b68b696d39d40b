package model

// Quote is the server-computed price breakdown for a site and date range.
// Ephemeral: recomputed whenever site or dates change.
type Quote struct {
	BaseSubtotalCents int64 `json:"base_subtotal_cents"`
	RulesDeltaCents   int64 `json:"rules_delta_cents"`
	TotalCents        int64 `json:"total_cents"`
}

// PriceBreakdown is what the flow displays and gates on: either a confirmed
// quote or a locally derived estimate. TotalCents is nil when no rate is
// derivable at all. RulesDeltaCents is nil in estimate mode; rules are only
// evaluated server-side.
type PriceBreakdown struct {
	SubtotalCents   int64  `json:"subtotal_cents"`
	RulesDeltaCents *int64 `json:"rules_delta_cents,omitempty"`
	TotalCents      *int64 `json:"total_cents,omitempty"`
	LockFeeCents    int64  `json:"lock_fee_cents,omitempty"`
	IsEstimate      bool   `json:"is_estimate"`
}
