package services

// RushFeeRate is the surcharge applied to a design request subtotal when
// the rush timeline is selected.
const RushFeeRate = 0.50

// Timeline preference values for design requests.
const (
	TimelineRush     = "rush"
	TimelineStandard = "standard"
	TimelineFlexible = "flexible"
)

// DesignTotals is the priced breakdown of a design request.
type DesignTotals struct {
	Subtotal         float64
	RushFee          float64
	SubtotalWithRush float64
	VAT              float64
	Total            float64
}

// CalcDesignTotals prices a design request from its selected package prices
// and timeline preference. The rush fee is 50% of the package subtotal and
// applies only to the rush timeline; VAT is charged on the subtotal
// including the rush fee.
func CalcDesignTotals(packagePrices []float64, timeline string) DesignTotals {
	var subtotal float64
	for _, p := range packagePrices {
		subtotal += p
	}

	var rushFee float64
	if timeline == TimelineRush {
		rushFee = subtotal * RushFeeRate
	}

	withRush := subtotal + rushFee
	vat := withRush * VATRate
	return DesignTotals{
		Subtotal:         subtotal,
		RushFee:          rushFee,
		SubtotalWithRush: withRush,
		VAT:              vat,
		Total:            withRush + vat,
	}
}

// EstimatedTurnaroundDays estimates business days until delivery of a
// design request. The base depends on the timeline preference (rush 2,
// standard 4, flexible 10, unspecified 5) and grows with the number of
// selected packages: +2 days for more than three packages, +1 for two or
// three.
func EstimatedTurnaroundDays(timeline string, packageCount int) int {
	var days int
	switch timeline {
	case TimelineRush:
		days = 2
	case TimelineStandard:
		days = 4
	case TimelineFlexible:
		days = 10
	default:
		days = 5
	}

	switch {
	case packageCount > 3:
		days += 2
	case packageCount >= 2:
		days++
	}
	return days
}
