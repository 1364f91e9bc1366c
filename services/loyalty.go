package services

// Loyalty tier names, ordered by points thresholds.
const (
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
)

const (
	silverThreshold   = 1000
	goldThreshold     = 2500
	platinumThreshold = 5000
)

// LoyaltyTier derives the tier name from a points balance.
func LoyaltyTier(points int) string {
	switch {
	case points >= platinumThreshold:
		return TierPlatinum
	case points >= goldThreshold:
		return TierGold
	case points >= silverThreshold:
		return TierSilver
	default:
		return TierBronze
	}
}

// LoyaltyDiscountPercent maps a tier to its discount percentage. The
// discount is exposed to customers but not folded into order pricing.
func LoyaltyDiscountPercent(tier string) int {
	switch tier {
	case TierSilver:
		return 5
	case TierGold:
		return 10
	case TierPlatinum:
		return 15
	default:
		return 0
	}
}

// PointsToNextTier returns how many points are still needed to reach the
// next tier, or 0 once platinum is reached.
func PointsToNextTier(points int) int {
	switch {
	case points >= platinumThreshold:
		return 0
	case points >= goldThreshold:
		return platinumThreshold - points
	case points >= silverThreshold:
		return goldThreshold - points
	default:
		return silverThreshold - points
	}
}
