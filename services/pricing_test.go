package services

import (
	"math"
	"testing"
)

func TestCalcOrderTotals(t *testing.T) {
	tests := []struct {
		name         string
		in           OrderPricingInput
		wantSubtotal float64
		wantVAT      float64
		wantTotal    float64
	}{
		{
			"base plus standard shipping",
			OrderPricingInput{BasePrice: 699, ShippingPrice: 60, OptionModifiers: []float64{50}},
			809, 121.35, 930.35,
		},
		{
			"discounted order",
			OrderPricingInput{BasePrice: 699, ShippingPrice: 60, OptionModifiers: []float64{50}, DiscountAmount: 80.90},
			728.10, 109.215, 837.315,
		},
		{
			"base only",
			OrderPricingInput{BasePrice: 299},
			299, 44.85, 343.85,
		},
		{
			"services included",
			OrderPricingInput{BasePrice: 500, ServicePrices: []float64{200, 99}, ShippingPrice: 120},
			919, 137.85, 1056.85,
		},
		{
			"free pickup",
			OrderPricingInput{BasePrice: 1499, ShippingPrice: 0},
			1499, 224.85, 1723.85,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcOrderTotals(tt.in)
			if math.Abs(got.Subtotal-tt.wantSubtotal) > 0.001 {
				t.Errorf("Subtotal = %v, want %v", got.Subtotal, tt.wantSubtotal)
			}
			if math.Abs(got.VAT-tt.wantVAT) > 0.001 {
				t.Errorf("VAT = %v, want %v", got.VAT, tt.wantVAT)
			}
			if math.Abs(got.Total-tt.wantTotal) > 0.001 {
				t.Errorf("Total = %v, want %v", got.Total, tt.wantTotal)
			}
		})
	}
}

func TestVATBackCalculation(t *testing.T) {
	// 930.35 is a VAT-inclusive total built from an 809 subtotal.
	total := 930.35

	vat := VATFromTotal(total)
	if math.Abs(vat-121.35) > 0.001 {
		t.Errorf("VATFromTotal(%v) = %v, want 121.35", total, vat)
	}

	preVAT := PreVATFromTotal(total)
	if math.Abs(preVAT-809) > 0.001 {
		t.Errorf("PreVATFromTotal(%v) = %v, want 809", total, preVAT)
	}
}

func TestProductSubtotalFromTotal(t *testing.T) {
	tests := []struct {
		name     string
		total    float64
		shipping float64
		discount float64
		want     float64
	}{
		{"shipping only", 930.35, 60, 0, 749},
		{"shipping and discount", 837.315, 60, 80.90, 749},
		{"no adjustments", 343.85, 0, 0, 299},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProductSubtotalFromTotal(tt.total, tt.shipping, tt.discount)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("ProductSubtotalFromTotal(%v, %v, %v) = %v, want %v",
					tt.total, tt.shipping, tt.discount, got, tt.want)
			}
		})
	}
}
