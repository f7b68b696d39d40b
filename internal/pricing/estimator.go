package pricing

import (
	"strings"

	"campreserv/pkg/model"
)

// ResolveRate finds the nightly rate for a site, in priority order: the
// site's own default rate, its class's default rate by id, then its class's
// default rate by name (case-insensitive). Returns nil when no rate is
// derivable.
func ResolveRate(site *model.Site, classes []*model.SiteClass) *int64 {
	if site == nil {
		return nil
	}

	if site.DefaultRateCents != nil {
		return site.DefaultRateCents
	}

	for _, class := range classes {
		if class.ID != "" && class.ID == site.SiteClassID {
			if class.DefaultRateCents != nil {
				return class.DefaultRateCents
			}
			break
		}
	}

	if site.SiteClassName != "" {
		for _, class := range classes {
			if strings.EqualFold(class.Name, site.SiteClassName) && class.DefaultRateCents != nil {
				return class.DefaultRateCents
			}
		}
	}

	return nil
}

// Estimate derives a price breakdown for a stay. A present quote is
// authoritative: the total is the quoted total plus the lock fee. Without a
// quote the estimate falls back to rate * nights; the rules delta is not
// computed in fallback mode, and when no rate is derivable the breakdown
// carries no total at all.
func Estimate(site *model.Site, classes []*model.SiteClass, nights int, quote *model.Quote, lockFeeCents int64) model.PriceBreakdown {
	if quote != nil {
		total := quote.TotalCents + lockFeeCents
		rulesDelta := quote.RulesDeltaCents
		return model.PriceBreakdown{
			SubtotalCents:   quote.BaseSubtotalCents,
			RulesDeltaCents: &rulesDelta,
			TotalCents:      &total,
			LockFeeCents:    lockFeeCents,
			IsEstimate:      false,
		}
	}

	breakdown := model.PriceBreakdown{
		LockFeeCents: lockFeeCents,
		IsEstimate:   true,
	}

	rate := ResolveRate(site, classes)
	if rate == nil || nights <= 0 {
		return breakdown
	}

	subtotal := *rate * int64(nights)
	total := subtotal + lockFeeCents
	breakdown.SubtotalCents = subtotal
	breakdown.TotalCents = &total

	return breakdown
}

// GateTotal returns the amount submission gating should use: the derived
// total when one exists, otherwise a manually entered payment amount. The
// manual amount never replaces the displayed breakdown; it exists only so
// an operator can submit when no price is derivable.
func GateTotal(breakdown model.PriceBreakdown, manualAmountCents int64) *int64 {
	if breakdown.TotalCents != nil {
		return breakdown.TotalCents
	}
	if manualAmountCents > 0 {
		return &manualAmountCents
	}
	return nil
}
