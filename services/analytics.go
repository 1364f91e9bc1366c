package services

import "sort"

// OrderStat is the slice of an order that feeds the analytics aggregates.
type OrderStat struct {
	ProductName    string
	Status         string
	PaymentStatus  string
	TotalPrice     float64
	DiscountAmount float64
}

// UserAnalytics summarises a customer's order history. Spend figures only
// count orders that are both paid and fulfilled (completed or shipped).
type UserAnalytics struct {
	TotalOrders     int
	TotalSpent      float64
	AvgOrderValue   float64
	StatusBreakdown map[string]int
	TotalDiscounts  float64
}

// counted reports whether an order contributes to spend totals.
func counted(o OrderStat) bool {
	if o.PaymentStatus != PaymentPaid {
		return false
	}
	return o.Status == OrderCompleted || o.Status == OrderShipped
}

// CalcUserAnalytics aggregates a user's orders into spend and status
// figures.
func CalcUserAnalytics(orders []OrderStat) UserAnalytics {
	a := UserAnalytics{
		TotalOrders:     len(orders),
		StatusBreakdown: make(map[string]int),
	}

	var countedOrders int
	for _, o := range orders {
		a.StatusBreakdown[o.Status]++
		if counted(o) {
			a.TotalSpent += o.TotalPrice
			a.TotalDiscounts += o.DiscountAmount
			countedOrders++
		}
	}
	if countedOrders > 0 {
		a.AvgOrderValue = a.TotalSpent / float64(countedOrders)
	}
	return a
}

// PlatformAnalytics summarises storewide activity for the admin surface.
type PlatformAnalytics struct {
	TotalOrders           int
	TotalRevenue          float64
	TopProducts           []ProductCount
	NewsletterSubscribers int
}

// ProductCount pairs a product name with how many orders it appears in.
type ProductCount struct {
	Name   string
	Orders int
}

// CalcPlatformAnalytics aggregates all orders into platform totals.
// Revenue counts every paid order regardless of fulfilment status.
func CalcPlatformAnalytics(orders []OrderStat, subscriberCount int) PlatformAnalytics {
	p := PlatformAnalytics{
		TotalOrders:           len(orders),
		NewsletterSubscribers: subscriberCount,
	}

	byProduct := make(map[string]int)
	for _, o := range orders {
		if o.PaymentStatus == PaymentPaid {
			p.TotalRevenue += o.TotalPrice
		}
		byProduct[o.ProductName]++
	}

	for name, n := range byProduct {
		p.TopProducts = append(p.TopProducts, ProductCount{Name: name, Orders: n})
	}
	// Highest order count first; ties broken by name for stable output.
	sort.Slice(p.TopProducts, func(i, j int) bool {
		a, b := p.TopProducts[i], p.TopProducts[j]
		if a.Orders != b.Orders {
			return a.Orders > b.Orders
		}
		return a.Name < b.Name
	})
	return p
}
