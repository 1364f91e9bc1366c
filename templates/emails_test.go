package templates

import (
	"strings"
	"testing"

	"github.com/Katlego909/bizprint/services"
)

func TestDesignEmailQuoteReady(t *testing.T) {
	data := DesignEmailData{
		Reference:      "9F83A21C",
		ClientName:     "Thabo",
		Packages:       []string{"Logo Design - Premium", "Business Card Design"},
		Totals:         services.CalcDesignTotals([]float64{1200, 350}, services.TimelineRush),
		TurnaroundDays: 3,
	}

	html, err := Render(DesignEmail(services.DesignEmailQuoteReady, data))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for _, frag := range []string{"Hi Thabo,", "#9F83A21C", "Rush Fee (50%)", "R775.00", "R2,673.75", "3 business days"} {
		if !strings.Contains(html, frag) {
			t.Errorf("quote email missing %q", frag)
		}
	}
}

func TestDesignEmailStandardHidesRushFee(t *testing.T) {
	data := DesignEmailData{
		Reference:  "AB12CD34",
		ClientName: "Lerato",
		Totals:     services.CalcDesignTotals([]float64{550}, services.TimelineStandard),
	}

	html, err := Render(DesignEmail(services.DesignEmailPaymentConfirmed, data))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(html, "Rush Fee") {
		t.Error("standard timeline email should not show a rush fee row")
	}
}

func TestOrderConfirmation(t *testing.T) {
	html, err := Render(OrderConfirmation(OrderConfirmationData{
		Reference:   "9F83A21C",
		ClientName:  "Thabo",
		ProductName: "A5 Full Colour Flyers",
		Quantity:    1000,
		Shipping:    60,
		Subtotal:    749,
		VAT:         121.35,
		Total:       930.35,
	}))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for _, frag := range []string{"#9F83A21C", "1000", "A5 Full Colour Flyers", "R930.35", "proof of payment"} {
		if !strings.Contains(html, frag) {
			t.Errorf("order confirmation missing %q", frag)
		}
	}
	if strings.Contains(html, "Discount") {
		t.Error("discount row shown for a full-price order")
	}
}

func TestOrderConfirmationDiscountRow(t *testing.T) {
	// 749 − 80.90 + 60 + 109.215 = 837.315: the rows must sum to the total.
	html, err := Render(OrderConfirmation(OrderConfirmationData{
		Reference:   "9F83A21C",
		ClientName:  "Thabo",
		ProductName: "A5 Full Colour Flyers",
		Quantity:    1000,
		Shipping:    60,
		Discount:    80.90,
		Subtotal:    749,
		VAT:         109.215,
		Total:       837.315,
	}))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for _, frag := range []string{"Discount", "-R80.90", "R749.00", "R837.32"} {
		if !strings.Contains(html, frag) {
			t.Errorf("discounted confirmation missing %q", frag)
		}
	}
}

func TestNewsletterDiscountEscapesInput(t *testing.T) {
	html, err := Render(NewsletterDiscount("sub@example.com", "BIZ-<SCRIPT>"))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(html, "<SCRIPT>") {
		t.Error("discount code was not escaped")
	}
	if !strings.Contains(html, "sub@example.com") {
		t.Error("subscriber email missing from body")
	}
}

func TestContactMessage(t *testing.T) {
	html, err := Render(ContactMessage("Thabo", "thabo@example.com", "Bulk pricing", "Do you offer bulk rates?"))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	for _, frag := range []string{"Thabo", "thabo@example.com", "Bulk pricing", "Do you offer bulk rates?"} {
		if !strings.Contains(html, frag) {
			t.Errorf("contact email missing %q", frag)
		}
	}
}
