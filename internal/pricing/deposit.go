package pricing

// Deposit policies configured per campground.
const (
	DepositPolicyPercentage = "percentage"
	DepositPolicyFixed      = "fixed"
	DepositPolicyFirstNight = "first_night"
)

// DepositPolicy holds the campground's deposit rule and its clamps. A
// MaxCents of 0 means no cap.
type DepositPolicy struct {
	Policy     string
	Percent    int
	FixedCents int64
	MinCents   int64
	MaxCents   int64
}

// ComputeDeposit derives the required deposit for a stay total. The result
// is clamped to the policy bounds and never exceeds the total itself.
func ComputeDeposit(p DepositPolicy, totalCents int64, nights int) int64 {
	if totalCents <= 0 {
		return 0
	}

	var deposit int64
	switch p.Policy {
	case DepositPolicyPercentage:
		deposit = totalCents * int64(p.Percent) / 100
	case DepositPolicyFixed:
		deposit = p.FixedCents
	case DepositPolicyFirstNight:
		if nights > 0 {
			deposit = totalCents / int64(nights)
		} else {
			deposit = totalCents
		}
	default:
		return 0
	}

	if deposit < p.MinCents {
		deposit = p.MinCents
	}
	if p.MaxCents > 0 && deposit > p.MaxCents {
		deposit = p.MaxCents
	}
	if deposit > totalCents {
		deposit = totalCents
	}
	if deposit < 0 {
		deposit = 0
	}

	return deposit
}
