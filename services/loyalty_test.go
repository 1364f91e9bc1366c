package services

import "testing"

func TestLoyaltyTier(t *testing.T) {
	tests := []struct {
		name   string
		points int
		want   string
	}{
		{"zero points", 0, TierBronze},
		{"just under silver", 999, TierBronze},
		{"silver boundary", 1000, TierSilver},
		{"just under gold", 2499, TierSilver},
		{"gold boundary", 2500, TierGold},
		{"just under platinum", 4999, TierGold},
		{"platinum boundary", 5000, TierPlatinum},
		{"well past platinum", 12000, TierPlatinum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LoyaltyTier(tt.points); got != tt.want {
				t.Errorf("LoyaltyTier(%d) = %q, want %q", tt.points, got, tt.want)
			}
		})
	}
}

func TestLoyaltyDiscountPercent(t *testing.T) {
	tests := []struct {
		tier string
		want int
	}{
		{TierBronze, 0},
		{TierSilver, 5},
		{TierGold, 10},
		{TierPlatinum, 15},
		{"unknown", 0},
	}

	for _, tt := range tests {
		if got := LoyaltyDiscountPercent(tt.tier); got != tt.want {
			t.Errorf("LoyaltyDiscountPercent(%q) = %d, want %d", tt.tier, got, tt.want)
		}
	}
}

func TestPointsToNextTier(t *testing.T) {
	tests := []struct {
		name   string
		points int
		want   int
	}{
		{"fresh account", 0, 1000},
		{"bronze partway", 400, 600},
		{"silver floor", 1000, 1500},
		{"gold floor", 2500, 2500},
		{"platinum has no next tier", 5000, 0},
		{"past platinum", 9000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointsToNextTier(tt.points); got != tt.want {
				t.Errorf("PointsToNextTier(%d) = %d, want %d", tt.points, got, tt.want)
			}
		})
	}
}
